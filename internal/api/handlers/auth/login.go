package auth

import (
	"net/http"

	"Chirp/internal/api/handlers"
	"Chirp/internal/core/users"
)

// LoginHandler issues user ids
type LoginHandler struct {
	service users.UserService
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(service users.UserService) *LoginHandler {
	return &LoginHandler{service: service}
}

// LoginOutput is the response of POST /auth/login
type LoginOutput struct {
	UserID string `json:"userId"`
}

// HandleLogin handles POST /auth/login
// There are no credentials: every call registers a fresh user and returns its id.
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Register(r.Context())
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, LoginOutput{UserID: user.ID})
}
