package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Chirp/internal/api/handlers"
	"Chirp/internal/core/posts"
)

// GetHandler serves a single post with its counts
type GetHandler struct {
	service posts.Service
}

// NewGetHandler creates a new get handler
func NewGetHandler(service posts.Service) *GetHandler {
	return &GetHandler{service: service}
}

// HandleGet handles GET /posts/{postId}?userId=
// The optional userId selects the viewer for isLikedByCurrentUser and
// isRepostedByCurrentUser; both are null without it.
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	var viewerID *string
	if v := r.URL.Query().Get("userId"); v != "" {
		viewerID = &v
	}

	view, err := h.service.GetPost(r.Context(), postID, viewerID)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, view)
}
