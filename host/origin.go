package host

import (
	"net/http"
)

// originValidationMiddleware rejects browser requests whose Origin is not
// allowed. A wildcard "*" allows any origin.
func originValidationMiddleware(allowed []string) Middleware {
	return func(next http.Handler) http.Handler {
		allowedMap := make(map[string]bool, len(allowed))
		for _, v := range allowed {
			allowedMap[v] = true
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				// non-browser clients omit Origin
				next.ServeHTTP(w, r)
				return
			}
			if allowedMap["*"] || allowedMap[origin] {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, "origin not allowed", http.StatusForbidden)
		})
	}
}
