// Package middleware provides HTTP middlewares for authentication, logging
// and request limiting.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/atinyakov/WorkoutTracker/internal/server/respond"
)

type ctxKey string

const userKey ctxKey = "user"

// TokenParser resolves a bearer token to the id of the user it was issued to.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// BearerAuth is a middleware that requires a valid bearer token.
//
// The Authorization header must have the form "<scheme> <token>" where the
// scheme is "bearer" in any letter case. Requests without a usable token are
// rejected with 401. On success the token's user id is stored in the request
// context, so it can be used downstream as the authenticated user ID.
func BearerAuth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respond.Error(w, http.StatusUnauthorized, "authorization token required")
				return
			}

			scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				respond.Error(w, http.StatusUnauthorized, "malformed authorization header")
				return
			}

			userID, err := parser.ParseToken(token)
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "request is not authorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// GetUserIDFromContext extracts the authenticated user ID from the request
// context. Returns an empty string if not found.
func GetUserIDFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
