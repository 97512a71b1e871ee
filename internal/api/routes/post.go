package routes

import (
	"Chirp/internal/api/handlers/post"
	"Chirp/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers post and reply endpoints on the router
func RegisterPostRoutes(r chi.Router, service posts.Service) {
	createHandler := post.NewCreateHandler(service)
	deleteHandler := post.NewDeleteHandler(service)
	getHandler := post.NewGetHandler(service)
	replyHandler := post.NewReplyHandler(service)

	r.Post("/posts", createHandler.HandleCreate)
	r.Get("/posts/{postId}", getHandler.HandleGet)

	// Only the author can delete a post
	r.Delete("/posts/{postId}", deleteHandler.HandleDelete)

	r.Post("/posts/{postId}/replies", replyHandler.HandleCreate)
	r.Get("/posts/{postId}/replies", replyHandler.HandleList)
}
