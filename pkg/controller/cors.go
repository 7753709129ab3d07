package controller

import "net/http"

// WithCORS returns a middleware that allows cross-origin reads of the site's
// assets from origin and short-circuits OPTIONS preflight requests with
// 204 No Content.
func WithCORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Accept-Encoding, Cache-Control, Range")
		w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
		if origin != "*" {
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)

			return
		}

		next.ServeHTTP(w, r)
	})
}
