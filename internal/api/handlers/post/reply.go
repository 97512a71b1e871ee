package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Chirp/internal/api/handlers"
	"Chirp/internal/core/posts"
)

// ReplyHandler handles reply creation and enumeration
type ReplyHandler struct {
	service posts.Service
}

// NewReplyHandler creates a new reply handler
func NewReplyHandler(service posts.Service) *ReplyHandler {
	return &ReplyHandler{service: service}
}

// ListRepliesOutput is the response of GET /posts/{postId}/replies
type ListRepliesOutput struct {
	Replies []*posts.Post `json:"replies"`
}

// HandleCreate handles POST /posts/{postId}/replies
//
// Request body: { "userId": "did:plc:...", "content": "..." }
// Response: 201 { "replyPostId", "replyToPostId", "userId", "content", "createdAt" }
func (h *ReplyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	parentID := chi.URLParam(r, "postId")

	var req CreatePostInput
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.WriteDecodeError(w, err)
		return
	}
	if req.UserID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "userId is required")
		return
	}

	reply, err := h.service.ReplyToPost(r.Context(), parentID, req.UserID, req.Content)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, reply)
}

// HandleList handles GET /posts/{postId}/replies?limit=&offset=
func (h *ReplyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	parentID := chi.URLParam(r, "postId")

	limit, err := handlers.QueryInt(r, "limit", 0)
	if err != nil || limit < 0 {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "limit must be a non-negative integer")
		return
	}
	offset, err := handlers.QueryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "offset must be a non-negative integer")
		return
	}

	replies, err := h.service.ListReplies(r.Context(), parentID, limit, offset)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	if replies == nil {
		replies = []*posts.Post{}
	}
	handlers.WriteJSON(w, http.StatusOK, ListRepliesOutput{Replies: replies})
}
