package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"campusparties/internal/delivery/http/helpers"
	"campusparties/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// SetIdentity returns a context with the verified identity set. Used by auth middleware.
func SetIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the verified caller identity from the context, if present.
func IdentityFromContext(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*domain.Identity)
	return identity, ok
}

// bearerToken extracts the token from the Authorization header. Returns ""
// when the header is missing or not a Bearer credential.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

// OptionalAuth resolves the bearer token when one is present and valid and sets
// the identity in the request context. Missing, malformed, or rejected tokens
// degrade to an anonymous request; next is always called.
func OptionalAuth(verifier domain.IdentityVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if identity, err := verifier.Verify(token); err == nil {
					r = r.WithContext(SetIdentity(r.Context(), identity))
				}
			}
			next(w, r)
		}
	}
}

// RequireAuth validates the bearer token and sets the identity in the request
// context. If the token is missing or invalid, it responds with 401 and does
// not call next.
func RequireAuth(verifier domain.IdentityVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "not authenticated")
				return
			}
			identity, err := verifier.Verify(token)
			if err != nil {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetIdentity(r.Context(), identity))
			next(w, r)
		}
	}
}

// RequireAdmin composes RequireAuth with a profile lookup: the caller must
// have a profile with the admin flag set. Identities without a profile get
// 403, not 500.
func RequireAdmin(verifier domain.IdentityVerifier, profiles domain.ProfileService, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	requireAuth := RequireAuth(verifier)
	return func(next http.HandlerFunc) http.HandlerFunc {
		return requireAuth(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "not authenticated")
				return
			}
			isAdmin, err := profiles.IsAdmin(r.Context(), identity.ID)
			if err != nil {
				logger.ErrorContext(r.Context(), "admin check failed", "path", r.URL.Path, "err", err)
				helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "admin check failed")
				return
			}
			if !isAdmin {
				helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "admin access required")
				return
			}
			next(w, r)
		})
	}
}
