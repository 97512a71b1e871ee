package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"Chirp/internal/api/middleware"
	"Chirp/internal/core/engagement"
	"Chirp/internal/core/posts"
	"Chirp/internal/core/users"
)

// Services are the collaborators the HTTP surface is built on
type Services struct {
	Posts      posts.Service
	Engagement engagement.Service
	Users      users.UserService
}

// NewRouter builds the full router. rateLimiter may be nil.
func NewRouter(services Services, rateLimiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if rateLimiter != nil {
			r.Use(rateLimiter.Middleware)
		}
		RegisterAuthRoutes(r, services.Users)
		RegisterPostRoutes(r, services.Posts)
		RegisterEngagementRoutes(r, services.Engagement)
	})

	return r
}
