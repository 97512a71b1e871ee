package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Chirp/internal/api/handlers"
	"Chirp/internal/core/posts"
)

// DeleteHandler handles post deletion requests
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new handler for deleting posts
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{
		service: service,
	}
}

// HandleDelete handles DELETE /posts/{postId}
//
// Request body: { "userId": "did:plc:..." }
// Response: 204 on success, 403 when the requester is not the author
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	requesterID, ok := handlers.DecodeUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePost(r.Context(), postID, requesterID); err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
