// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/lampochky/tasktracker/internal/auth"
	"github.com/lampochky/tasktracker/internal/models"
)

type ctxKey string

const principalKey ctxKey = "principal"

// TokenAuth is a middleware that enforces token authentication.
//
// It reads the Authorization header, expects a "Bearer_<token>" credential,
// validates it, and resolves the token subject to a stored user. On success
// the resulting principal is stored in the request context for downstream
// handlers.
//
// Every authentication failure, missing header, malformed credential,
// expired token, or unknown subject, produces the same 401 response.
// Storage failures during subject resolution produce 500.
func TokenAuth(resolver *auth.CredentialResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := auth.ExtractToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			principal, err := resolver.ResolveIdentity(r.Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrAuthentication) {
					http.Error(w, "authentication required", http.StatusUnauthorized)
					return
				}
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithPrincipal returns a context carrying p as the authenticated
// principal, the way TokenAuth stores it.
func WithPrincipal(ctx context.Context, p *models.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipalFromContext extracts the authenticated principal from the
// request context. Returns nil if the request did not pass TokenAuth.
func GetPrincipalFromContext(ctx context.Context) *models.Principal {
	val := ctx.Value(principalKey)
	if p, ok := val.(*models.Principal); ok {
		return p
	}
	return nil
}
