package engagement

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Chirp/internal/api/handlers"
	core "Chirp/internal/core/engagement"
)

// Handler serves one engagement kind (likes or reposts)
type Handler struct {
	engage    func(ctx context.Context, postID, userID string) (*core.Engagement, error)
	disengage func(ctx context.Context, postID, userID string) error
	timeField string
}

// NewLikeHandler creates the handler for /posts/{postId}/likes
func NewLikeHandler(service core.Service) *Handler {
	return &Handler{
		engage:    service.LikePost,
		disengage: service.UnlikePost,
		timeField: "likedAt",
	}
}

// NewRepostHandler creates the handler for /posts/{postId}/reposts
func NewRepostHandler(service core.Service) *Handler {
	return &Handler{
		engage:    service.RepostPost,
		disengage: service.UnrepostPost,
		timeField: "repostedAt",
	}
}

// HandleCreate handles POST /posts/{postId}/likes and /reposts
//
// Request body: { "userId": "did:plc:..." }
// Response: 201 { "postId", "userId", "likedAt" | "repostedAt" }
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	userID, ok := handlers.DecodeUserID(w, r)
	if !ok {
		return
	}

	result, err := h.engage(r.Context(), postID, userID)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"postId":    result.PostID,
		"userId":    result.UserID,
		h.timeField: result.At,
	})
}

// HandleDelete handles DELETE /posts/{postId}/likes and /reposts.
// Undoing something that was never done still succeeds.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	userID, ok := handlers.DecodeUserID(w, r)
	if !ok {
		return
	}

	if err := h.disengage(r.Context(), postID, userID); err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
