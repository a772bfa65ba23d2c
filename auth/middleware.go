package auth

import (
	"context"
	"net/http"
	"slices"

	"tnkr-backend/errors"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenHeader is the request header carrying the session token, kept
// compatible with the existing clients.
const TokenHeader = "access-token"

// Identity is the authenticated subject of a request or connection.
type Identity struct {
	UserID   string
	Username string
	Role     string
	Email    string
}

// IdentityFromContext returns the identity injected by RequireAuth.
// The boolean is false on routes that skipped authentication.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	claims, ok := ctx.Value(claimsKey).(*CustomClaims)
	if !ok {
		return Identity{}, false
	}
	return Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
		Email:    claims.Email,
	}, true
}

// RequireAuth validates the session token and injects the caller's claims
// into the request context. Missing or invalid tokens are refused before
// the handler runs.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr := r.Header.Get(TokenHeader)
		if tokenStr == "" {
			http.Error(w, errors.ErrNoToken.Error(), http.StatusForbidden)
			return
		}

		claims, err := ValidateToken(tokenStr)
		if err != nil {
			http.Error(w, errors.ErrInvalidToken.Error(), http.StatusUnauthorized)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	}
}

// RequireRoles is the single authorization policy: a handler declares the
// role set allowed to call it and the check happens once per request, rather
// than ad hoc role string comparisons inside each handler.
func RequireRoles(next http.HandlerFunc, roles ...string) http.HandlerFunc {
	return RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		identity, _ := IdentityFromContext(r.Context())
		if !slices.Contains(roles, identity.Role) {
			http.Error(w, errors.ErrForbidden.Error(), http.StatusForbidden)
			return
		}
		next(w, r)
	})
}
