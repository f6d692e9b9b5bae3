package handler

import (
	"net/http"

	"github.com/iho/goexpense/internal/adapter/http/middleware"
)

// AuthHandler handles identity endpoints. Tokens are issued out of band by
// the CLI; the service only verifies them.
type AuthHandler struct{}

// NewAuthHandler creates a new auth handler
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// UserInfo represents user information
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// GetCurrentUser returns the owner the request is acting for.
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	writeJSON(w, http.StatusOK, UserInfo{
		ID:    user.ID,
		Email: user.Email,
	})
}
