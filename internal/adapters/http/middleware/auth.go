package middleware

import (
	"net/http"
	"strings"

	"github.com/mirzaakhena/cug-prompt-instructions/internal/platform/auth"
)

const bearerPrefix = "Bearer "

// BearerToken returns middleware that extracts the Authorization bearer
// token into the request context. Extraction only; verification happens in
// the operation stack's Authorize layer, so unauthenticated requests still
// reach the handler and fail with a 403 carrying the usual problem body.
//
// Requests without an Authorization header pass through with no token in
// context.
func BearerToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if strings.HasPrefix(header, bearerPrefix) {
				token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
				if token != "" {
					r = r.WithContext(auth.WithToken(r.Context(), token))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
