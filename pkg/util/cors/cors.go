package cors

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Middleware returns the custom CORS middleware allowing allowOrigin.
// Preflight requests are answered without reaching the handler.
func Middleware(allowOrigin string) mux.MiddlewareFunc {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			w.Header().Set("Access-Control-Allow-Headers", "*")
			if allowOrigin != "*" {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}
			if r.Method == http.MethodOptions {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
