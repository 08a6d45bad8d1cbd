package jwt

import (
	"context"
	"net/http"
	"strings"

	"doodlepair/internal/pkg/errs"
	"doodlepair/internal/pkg/logx"
	"doodlepair/internal/pkg/resp"
)

// contextKey is a private type for context keys, preventing collisions with
// values stored by other packages.
type contextKey string

const (
	// contextIdentityKey is the key under which the verified Identity is
	// stored in the request context.
	contextIdentityKey contextKey = "auth_identity"
)

// RequireIdentity returns a middleware that extracts and validates the bearer
// token from the Authorization header. Requests without a valid token are
// rejected with 401; on success the Identity is injected into the context.
func RequireIdentity(secretKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
				return
			}

			// Expected format: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
				return
			}

			identity, err := ParseToken(parts[1], secretKey)
			if err != nil {
				logx.Warn("Rejected request with invalid or expired token", "error", err)
				resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
				return
			}

			ctx := context.WithValue(r.Context(), contextIdentityKey, identity)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentityFromContext extracts the verified Identity from the request
// context. It returns nil when the request passed through no RequireIdentity
// middleware, which handlers must treat as unauthorized.
func GetIdentityFromContext(r *http.Request) *Identity {
	identity, ok := r.Context().Value(contextIdentityKey).(*Identity)

	if !ok {
		return nil
	}

	return identity
}
