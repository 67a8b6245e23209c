package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/roivest/return-calculator-backend/internal/api/response"
)

// APIKeyMiddleware guards mutating maintenance endpoints (recompute) with
// a shared API key. The expected key comes from the INTERNAL_API_KEY
// environment variable; requests present theirs in the X-API-Key header.
// Returns 401 for missing or wrong keys and 503 when no key is configured.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("INTERNAL_API_KEY")
		if expected == "" {
			response.RespondError(w, http.StatusServiceUnavailable, "internal API not available", "API key not configured")
			return
		}

		provided := r.Header.Get("X-API-Key")
		if provided == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
