package api

import (
	"context"
	"net/http"
	"time"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// Authenticator is the part of auth.Service the HTTP layer needs for
// registration and login.
type Authenticator interface {
	Register(ctx context.Context, reg auth.Registration) (*auth.Result, error)
	Login(ctx context.Context, email, password string) (*auth.Result, error)
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService Authenticator
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService Authenticator) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.authService.Register(r.Context(), auth.Registration{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create account")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, authResponse(result))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, authResponse(result))
}

func authResponse(result *auth.Result) AuthResponse {
	return AuthResponse{
		AccessToken: result.Token,
		ExpiresAt:   result.ExpiresAt.UTC().Format(time.RFC3339),
		User:        result.Profile,
	}
}
