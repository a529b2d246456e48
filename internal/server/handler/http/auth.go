package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lampochky/tasktracker/internal/models"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a user and returns it with a fresh token.
	Register(ctx context.Context, username, email, password string) (*models.User, string, error)
	// Login verifies the password for email and returns the user with a
	// fresh token.
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

// AuthHandler handles HTTP requests for user registration and login.
type AuthHandler struct {
	AuthService AuthService
}

// RegisterRequest represents the JSON payload for user registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the issued token together with the user it
// identifies.
type TokenResponse struct {
	Token    string `json:"token"`
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register handles POST /auth/register. It expects a JSON body with
// non-empty username, email and password; a taken username or email
// produces 422.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	u, token, err := h.AuthService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, TokenResponse{Token: token, ID: u.ID, Username: u.Username, Email: u.Email})
}

// Login handles POST /auth/login. Every credential failure, unknown email
// or wrong password alike, produces the same 401 response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	u, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		fail(w, err)
		return
	}

	writeJSON(w, TokenResponse{Token: token, ID: u.ID, Username: u.Username, Email: u.Email})
}
