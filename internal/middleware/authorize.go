package middleware

import (
	"net/http"

	"secure-store-hub/internal/authz"
)

// Authorize enforces the endpoint role policy with Casbin: subject is the
// resolved role, object the path, action the method. The policy table
// itself lives outside the credential core, in configs/.
func Authorize(isPublic func(r *http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || isPublic(r) {
				next.ServeHTTP(w, r)
				return
			}

			principal, ok := PrincipalFrom(r.Context())
			if !ok {
				http.Error(w, "UNAUTHORIZED", http.StatusUnauthorized)
				return
			}

			e := authz.GetEnforcer()
			if e == nil {
				// Fail-closed
				http.Error(w, "FORBIDDEN", http.StatusForbidden)
				return
			}
			allowed, err := e.Enforce(principal.Role.String(), r.URL.Path, r.Method)
			if err != nil || !allowed {
				http.Error(w, "FORBIDDEN", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
