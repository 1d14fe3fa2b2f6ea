package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/promo-quoter/internal/auth"
)

type contextKey string

const userIDKey = contextKey("user_id")

// Auth rejects requests without a valid bearer token and stores the token
// subject in the request context.
func Auth(jwt *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeDetail(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			userID, err := jwt.ParseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the authenticated user id, or "" outside Auth.
func UserID(ctx context.Context) string {
	if val, ok := ctx.Value(userIDKey).(string); ok {
		return val
	}
	return ""
}
