package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/iho/goexpense/internal/domain"
	"github.com/iho/goexpense/internal/infrastructure/auth"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// UserContextKey is the context key for the authenticated user
	UserContextKey ContextKey = "user"

	// UserIDHeader selects the ledger owner when authentication is disabled.
	UserIDHeader = "X-User-ID"
)

// TokenVerifier verifies bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthFailureCounter is told why a request was rejected.
type AuthFailureCounter interface {
	AuthFailed(reason string)
}

// AuthMiddleware requires a valid bearer token and stores its user in the context.
func AuthMiddleware(verifier TokenVerifier, failures AuthFailureCounter) func(http.Handler) http.Handler {
	reject := func(w http.ResponseWriter, reason, message string) {
		if failures != nil {
			failures.AuthFailed(reason)
		}
		writeError(w, http.StatusUnauthorized, "unauthorized", message)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				reject(w, "missing", "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				reject(w, "malformed", "invalid authorization header format")
				return
			}

			claims, err := verifier.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				reject(w, "invalid", err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims.User())))
		})
	}
}

// LocalUser is used when authentication is disabled. The X-User-ID header
// picks the owner; without it every request belongs to domain.LocalUserID.
func LocalUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if id == "" {
			id = domain.LocalUserID
		}
		if err := domain.ValidateUserID(id); err != nil {
			writeError(w, http.StatusBadRequest, "invalid user id", err.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), &domain.User{ID: id})))
	})
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// GetUserFromContext extracts the authenticated user from context
func GetUserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*domain.User)
	return user, ok
}

// UserIDFromContext returns the ID of the user in ctx, or "" when there is none.
func UserIDFromContext(ctx context.Context) string {
	if user, ok := GetUserFromContext(ctx); ok {
		return user.ID
	}
	return ""
}
