package httpx

import (
	"net/http"
	"slices"
)

// RequireRole lets the request through only when the authenticated
// principal holds one of roles. It must run after AuthnMiddleware.
func RequireRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			if !slices.Contains(roles, p.Role) {
				WriteJSON(w, http.StatusForbidden, map[string]string{
					"error":  "forbidden",
					"detail": "insufficient role",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
