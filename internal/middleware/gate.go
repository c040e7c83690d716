package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"terrano-storefront/internal/domain"
	"terrano-storefront/internal/observability"
)

type contextKey string

// IdentityKey holds the verified admin identity in the request context.
const IdentityKey contextKey = "admin_identity"

const (
	// AdminCookieName is the session cookie carrying the signed token.
	AdminCookieName = "admin-token"
	// IdentityHeader carries the serialized identity to downstream
	// handlers once the gate has verified the token.
	IdentityHeader = "X-Admin-Identity"

	adminPrefix    = "/admin"
	adminLoginPath = "/admin/login"
)

// TokenVerifier resolves a token string to a verified identity.
type TokenVerifier interface {
	Verify(tokenString string) (*domain.Identity, error)
}

// Gate enforces access to the /admin namespace. Per request:
// protected path without a valid cookie redirects to the login surface;
// a valid cookie forwards with the identity attached; a valid cookie on
// the login surface itself redirects to the admin landing page; all
// other requests pass through unchanged. The decision is stateless, so
// it holds on any instance without shared session storage.
func Gate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if !isAdminPath(path) {
				next.ServeHTTP(w, r)
				return
			}

			identity := verifiedIdentity(r, verifier)

			if isLoginPath(path) {
				if identity != nil {
					// Already authenticated; keep the session out of
					// the login surface.
					http.Redirect(w, r, adminPrefix, http.StatusSeeOther)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			if identity == nil {
				http.Redirect(w, r, adminLoginPath, http.StatusSeeOther)
				return
			}

			serialized, err := json.Marshal(identity)
			if err != nil {
				slog.Error("failed to serialize identity",
					slog.String("error", err.Error()))
				http.Redirect(w, r, adminLoginPath, http.StatusSeeOther)
				return
			}
			r.Header.Set(IdentityHeader, string(serialized))

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// verifiedIdentity extracts and verifies the session cookie, returning
// nil for any failure. Verification failures are diagnostics, never
// errors: an invalid token is just an unauthenticated request.
func verifiedIdentity(r *http.Request, verifier TokenVerifier) *domain.Identity {
	cookie, err := r.Cookie(AdminCookieName)
	if err != nil {
		return nil
	}

	identity, err := verifier.Verify(cookie.Value)
	if err != nil {
		observability.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
		slog.Debug("session token rejected",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		return nil
	}
	observability.TokenVerificationsTotal.WithLabelValues("verified").Inc()
	return identity
}

// RequirePermission guards an already-gated route with a permission
// check. It assumes Gate ran earlier in the chain.
func RequirePermission(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				http.Error(w, `{"error":"Not authenticated"}`, http.StatusUnauthorized)
				return
			}
			if !identity.HasPermission(perm) {
				http.Error(w, `{"error":"Permission denied"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetIdentity returns the verified identity from the request context.
func GetIdentity(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*domain.Identity)
	return identity, ok
}

// WithIdentity attaches an identity to a context (used by tests and by
// handlers that bypass the gate).
func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

func isAdminPath(path string) bool {
	return path == adminPrefix || strings.HasPrefix(path, adminPrefix+"/")
}

func isLoginPath(path string) bool {
	return path == adminLoginPath || strings.HasPrefix(path, adminLoginPath+"/")
}
