package middleware

import (
	"context"
	"net/http"

	"secure-store-hub/internal/application/usecases"
	"secure-store-hub/internal/domain/entities"
	"secure-store-hub/internal/logger"
)

// HeaderName is the inbound credential header.
const HeaderName = "x-api-key"

// Principal is the authenticated identity attached to the request context.
// Key is the raw presented key; it doubles as a stable identifier to
// re-derive the acting user when a handler needs one.
type Principal struct {
	Role entities.Role
	Key  string
}

type principalKeyType struct{}

var principalKey principalKeyType

// PrincipalFrom extracts the authenticated principal, if any.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok
}

// WithPrincipal returns a context carrying the principal. Exposed for
// handler tests.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// APIKeyAuthMiddleware authenticates every request from the x-api-key
// header. Exactly one header value is required; a missing, empty or
// repeated header and an unknown key all produce the same generic 401 so
// the boundary leaks nothing about why a credential was refused. No session
// state is kept; every request re-resolves.
func APIKeyAuthMiddleware(keys *usecases.KeyUseCase, isPublic func(r *http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || isPublic(r) {
				next.ServeHTTP(w, r)
				return
			}

			values := r.Header.Values(HeaderName)
			if len(values) != 1 || values[0] == "" {
				if l := logger.GetLogger(); l != nil {
					l.LogAuthRejected("missing or repeated x-api-key header", r.RemoteAddr)
				}
				writeAuthError(w)
				return
			}

			role, err := keys.ResolveRole(values[0])
			if err != nil {
				if l := logger.GetLogger(); l != nil {
					l.LogError("failed to resolve API key role", err, nil)
				}
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if role == entities.RoleNone {
				if l := logger.GetLogger(); l != nil {
					l.LogAuthRejected("presented key does not match any valid key", r.RemoteAddr)
				}
				writeAuthError(w)
				return
			}

			ctx := WithPrincipal(r.Context(), &Principal{Role: role, Key: values[0]})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeAuthError writes the uniform rejection. Deliberately detail-free:
// wrong, revoked and malformed keys are indistinguishable to the caller.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"error":"Invalid parameters"}`))
}
