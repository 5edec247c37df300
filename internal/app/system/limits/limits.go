// internal/app/system/limits/limits.go
package limits

import "net/http"

// Request body size limits.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBody is the maximum size for JSON API request bodies.
	// Registration forms and admin payloads are tiny; anything near
	// this limit is garbage or abuse.
	MaxJSONBody = 1 << 20 // 1 MB
)

// JSONBody is middleware that caps request bodies at MaxJSONBody.
// Reads past the cap fail, which surfaces as a decode error in handlers.
func JSONBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBody)
		}
		next.ServeHTTP(w, r)
	})
}
