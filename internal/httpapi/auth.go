// Package httpapi — auth.go validates the bearer token and carries the
// authenticated identity through the request context.
package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"studyflow.app/server/internal/auth"
	"studyflow.app/server/internal/common"
)

// contextKey is an unexported type so context keys cannot collide.
type contextKey string

const userContextKey contextKey = "user_claims"

// RequireAuth rejects requests without a valid "Bearer <token>" header and
// stores the token claims in the request context for handlers.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				DomainError(w, common.ErrNotAuthenticated)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				Error(w, http.StatusUnauthorized, "invalid authorization header, expected: Bearer <token>")
				return
			}

			claims, err := tokens.ValidateAccessToken(parts[1])
			if err != nil {
				Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID extracts the authenticated user's ID from the request context.
// Returns common.ErrNotAuthenticated outside a RequireAuth route.
func UserID(r *http.Request) (uuid.UUID, error) {
	claims, ok := r.Context().Value(userContextKey).(*auth.Claims)
	if !ok {
		return uuid.Nil, common.ErrNotAuthenticated
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, common.ErrNotAuthenticated
	}
	return id, nil
}
