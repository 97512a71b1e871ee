package routes

import (
	"Chirp/internal/api/handlers/auth"
	"Chirp/internal/core/users"

	"github.com/go-chi/chi/v5"
)

// RegisterAuthRoutes registers the login endpoint on the router
func RegisterAuthRoutes(r chi.Router, service users.UserService) {
	loginHandler := auth.NewLoginHandler(service)

	r.Post("/auth/login", loginHandler.HandleLogin)
}
