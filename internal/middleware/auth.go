package middleware

import (
	"context"
	"net/http"

	"github.com/DarboeDev/UTGSSA-HUB/internal/auth"
	"github.com/DarboeDev/UTGSSA-HUB/internal/transport"
)

// SessionCookie is the cookie carrying the admin session token.
const SessionCookie = "token"

type claimsKey struct{}

// RequireAuth guards mutating routes. It knows nothing about the
// resource behind it; it only verifies the session cookie and stores
// the decoded claims in the request context.
func RequireAuth(manager *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if manager == nil {
				transport.WriteError(w, http.StatusServiceUnavailable, "auth not configured", nil)
				return
			}

			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				transport.WriteError(w, http.StatusUnauthorized, "authentication required", nil)
				return
			}

			claims, err := manager.Parse(cookie.Value)
			if err != nil {
				transport.WriteError(w, http.StatusUnauthorized, "invalid token", nil)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClaimsFromContext(ctx context.Context) *auth.Claims {
	if v := ctx.Value(claimsKey{}); v != nil {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
