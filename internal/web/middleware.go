package web

import "net/http"

// apiKeyMiddleware validates the X-API-Key header on every request routed
// through it. Validation is skipped entirely in the test environment or when
// no key is configured.
func apiKeyMiddleware(config *Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.AppEnv == "test" || config.APIKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("X-API-Key")
			if key == "" {
				writeJSON(w, http.StatusUnauthorized, errorResponse{
					Error:   "Unauthorized",
					Message: "API key is required. Please provide X-API-Key header.",
				})
				return
			}
			if key != config.APIKey {
				writeJSON(w, http.StatusForbidden, errorResponse{
					Error:   "Forbidden",
					Message: "Invalid API key provided.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
