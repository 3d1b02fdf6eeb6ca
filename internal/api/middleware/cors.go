// internal/api/middleware/cors.go
package middleware

import (
	"net/http"
	"strings"
)

// CORSConfig lists the values sent in the CORS response headers.
type CORSConfig struct {
	AllowOrigin  string
	AllowMethods []string
	AllowHeaders []string
}

// DefaultCORS allows any origin to POST JSON.
func DefaultCORS() CORSConfig {
	return CORSConfig{
		AllowOrigin:  "*",
		AllowMethods: []string{http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
	}
}

// CORS returns middleware that sets the CORS headers on every response,
// errors included. Preflight requests still reach the next handler.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", cfg.AllowOrigin)
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)

			next.ServeHTTP(w, r)
		})
	}
}
