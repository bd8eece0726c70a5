package middleware

import (
	"context"
	"net/http"
	"strings"

	"floramia-be/internal/admin"
	"floramia-be/internal/httpx"
)

type contextKey string

const (
	OperatorIDKey    contextKey = "operatorID"
	OperatorEmailKey contextKey = "operatorEmail"
)

func extractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// RequireAdmin gates dashboard write operations behind a valid operator token.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := extractBearer(r)
		if tokenStr == "" {
			httpx.Error(w, http.StatusUnauthorized, httpx.CodeForbidden, "missing access token")
			return
		}

		claims, err := admin.ParseJWT(tokenStr)
		if err != nil || claims.Role != "admin" {
			httpx.Error(w, http.StatusUnauthorized, httpx.CodeForbidden, "invalid access token")
			return
		}

		ctx := context.WithValue(r.Context(), OperatorIDKey, claims.OperatorID)
		ctx = context.WithValue(ctx, OperatorEmailKey, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OperatorEmailFromContext returns the authenticated operator email, if any.
func OperatorEmailFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(OperatorEmailKey).(string)
	return v, ok
}
