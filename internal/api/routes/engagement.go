package routes

import (
	"Chirp/internal/api/handlers/engagement"
	core "Chirp/internal/core/engagement"

	"github.com/go-chi/chi/v5"
)

// RegisterEngagementRoutes registers like and repost endpoints on the router
func RegisterEngagementRoutes(r chi.Router, service core.Service) {
	likeHandler := engagement.NewLikeHandler(service)
	repostHandler := engagement.NewRepostHandler(service)

	r.Post("/posts/{postId}/likes", likeHandler.HandleCreate)
	r.Delete("/posts/{postId}/likes", likeHandler.HandleDelete)

	r.Post("/posts/{postId}/reposts", repostHandler.HandleCreate)
	r.Delete("/posts/{postId}/reposts", repostHandler.HandleDelete)
}
