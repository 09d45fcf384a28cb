package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/atinyakov/WorkoutTracker/internal/server/respond"
	"golang.org/x/time/rate"
)

// RateLimit limits requests per second across all clients.
// If requestsPerSecond <= 0, rate limiting is disabled.
func RateLimit(requestsPerSecond, burst int) func(http.Handler) http.Handler {
	if requestsPerSecond <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				respond.Error(w, http.StatusTooManyRequests, "too many requests, try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimit rejects requests whose declared Content-Length exceeds
// maxBytes and caps the body reader for the rest. maxBytes <= 0 disables it.
func RequestSizeLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if maxBytes <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Max-Request-Size", strconv.FormatInt(maxBytes, 10))

			if r.ContentLength > maxBytes {
				respond.Error(w, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("request body of %d bytes exceeds the %d byte limit", r.ContentLength, maxBytes))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
