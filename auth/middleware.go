package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/user/arcanum-go/apperror"
	"github.com/user/arcanum-go/config"
)

// ContextKey is the type for context keys set by this package.
type ContextKey string

// UserIDKey is the context key under which the authenticated user's ID is
// stored.
const UserIDKey ContextKey = "userID"

// Middleware authenticates requests. The session cookie is the primary
// transport; an Authorization: Bearer header is accepted as a fallback for
// non-browser clients. On success the user ID is placed in the request
// context.
func Middleware(cfg *config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				tokenString = cookie.Value
			}
			if tokenString == "" {
				if header := r.Header.Get("Authorization"); header != "" {
					parts := strings.SplitN(header, " ", 2)
					if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
						WriteError(w, r, apperror.NewAuthError("authorization header format must be Bearer {token}", nil))
						return
					}
					tokenString = parts[1]
				}
			}
			if tokenString == "" {
				WriteError(w, r, apperror.NewAuthError("authentication required", nil))
				return
			}

			userID, err := verifyToken(cfg.JWTSecret, tokenString)
			if err != nil {
				WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext retrieves the authenticated user ID set by the
// middleware.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
