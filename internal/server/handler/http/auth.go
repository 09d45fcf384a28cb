// Package http provides HTTP handlers for account signup and login and for
// the authenticated workout endpoints.
package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/WorkoutTracker/internal/models"
	"github.com/atinyakov/WorkoutTracker/internal/server/respond"
	"go.uber.org/zap"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Signup registers a new account and returns it with a bearer token.
	Signup(ctx context.Context, email, password string) (*models.User, string, error)
	// Login verifies credentials and returns the account with a bearer token.
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

// AuthHandler handles HTTP requests for user signup and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	Logger      *zap.Logger
}

// Signup handles POST /api/user/signup.
// It expects a JSON body with "email" and "password" and responds with
// 201 and {"email", "token"} once the account is created.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	h.issue(w, r, h.AuthService.Signup, http.StatusCreated)
}

// Login handles POST /api/user/login and responds with 200 and
// {"email", "token"} for valid credentials.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.issue(w, r, h.AuthService.Login, http.StatusOK)
}

type credentialsFunc func(ctx context.Context, email, password string) (*models.User, string, error)

func (h *AuthHandler) issue(w http.ResponseWriter, r *http.Request, fn credentialsFunc, status int) {
	var req models.Credentials
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := fn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	respond.JSON(w, status, models.AuthResponse{Email: user.Email, Token: token})
}
