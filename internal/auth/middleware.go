package auth

import (
	"context"
	"net/http"
	"strconv"
)

type contextKey string

const (
	subjectKey contextKey = "subject"
	roleKey    contextKey = "role"
)

// Middleware verifies the bearer token on every request and rejects
// tokens whose role does not match requiredRole.
func Middleware(secret []byte, requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := ExtractTokenFromRequest(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			subject, role, err := VerifyToken(secret, tokenString)
			if err != nil {
				http.Error(w, "invalid token: "+err.Error(), http.StatusUnauthorized)
				return
			}
			if role != requiredRole {
				http.Error(w, "insufficient role", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, subject)
			ctx = context.WithValue(ctx, roleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountID extracts the authenticated account ID from a request
// context. Returns zero when the subject is missing or not numeric,
// which only happens outside the middleware.
func AccountID(ctx context.Context) int64 {
	sub, ok := ctx.Value(subjectKey).(string)
	if !ok {
		return 0
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Role extracts the authenticated role from a request context.
func Role(ctx context.Context) string {
	if r, ok := ctx.Value(roleKey).(string); ok {
		return r
	}
	return ""
}
