package post

import (
	"net/http"

	"Chirp/internal/api/handlers"
	"Chirp/internal/core/posts"
)

// CreateHandler handles post creation requests
type CreateHandler struct {
	service posts.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service) *CreateHandler {
	return &CreateHandler{
		service: service,
	}
}

// CreatePostInput is the body of POST /posts and POST /posts/{postId}/replies
type CreatePostInput struct {
	UserID  string `json:"userId"`
	Content string `json:"content"`
}

// HandleCreate handles POST /posts
//
// Request body: { "userId": "did:plc:...", "content": "..." }
// Response: 201 { "postId", "userId", "content", "createdAt" }
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreatePostInput
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.WriteDecodeError(w, err)
		return
	}
	if req.UserID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "userId is required")
		return
	}

	post, err := h.service.CreatePost(r.Context(), req.UserID, req.Content)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, post)
}
