package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"fnp-marketplace/app/response"
	"fnp-marketplace/logger"
	"fnp-marketplace/service"
)

type contextKey string

const claimsCtxKey = contextKey("claims")

// TokenParser verifies a bearer token against the current state of its user
type TokenParser interface {
	Authenticate(ctx context.Context, token string) (*service.Claims, error)
}

// RequireAuth rejects requests without a valid, unexpired bearer token and requests from banned users
func RequireAuth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				response.Error(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := parser.Authenticate(r.Context(), strings.TrimSpace(token))
			if errors.Is(err, service.ErrInvalidToken) {
				logger.Log.Debugf("🔒 RequireAuth: rejected token on %s: %v", r.URL.Path, err)
				response.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			if err != nil {
				logger.Log.Errorf("❌ RequireAuth: %v", err)
				response.Error(w, http.StatusInternalServerError, "failed to verify token")
				return
			}
			if claims.Banned {
				response.Error(w, http.StatusForbidden, "user is banned")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsCtxKey, claims)))
		})
	}
}

// RequireAdmin must run after RequireAuth
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || !claims.Admin {
			response.Error(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFromContext returns the claims RequireAuth stored on the request
func ClaimsFromContext(ctx context.Context) (*service.Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey).(*service.Claims)
	return claims, ok
}
