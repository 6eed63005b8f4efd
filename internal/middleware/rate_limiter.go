package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimiter creates a middleware that limits requests based on IP address
// It allows 100 requests per minute per IP address for regular endpoints
func RateLimiter() func(http.Handler) http.Handler {
	return newLimiter(100)
}

// StrictRateLimiter creates a more restrictive rate limiter for sensitive endpoints
// like login and registration (10 requests per minute per IP)
func StrictRateLimiter() func(http.Handler) http.Handler {
	return newLimiter(10)
}

func newLimiter(perMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeJSONError(w, http.StatusTooManyRequests, "Too many requests")
		}),
	)
}
