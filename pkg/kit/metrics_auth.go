package kit

import (
	"net/http"
	"strings"
)

// BearerAuth guards a route with a static bearer token. An empty
// configured token locks the route entirely. Used for the metrics and
// admin surfaces; the public catalog API is unauthenticated.
func BearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				forbidden(w, r)
				return
			}

			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				forbidden(w, r)
				return
			}
			if strings.TrimPrefix(authz, "Bearer ") != token {
				forbidden(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func forbidden(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusForbidden, "forbidden", "FORBIDDEN", nil)
}
