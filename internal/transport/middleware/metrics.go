package middleware

import (
	"net/http"
	"time"
)

type requestObserver interface {
	ObserveRequest(method, path string, status int, d time.Duration)
}

// Metrics records the status and latency of each request. Paths are the
// fixed ops routes, so they are safe as a label.
func Metrics(obs requestObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			path := r.Pattern
			if path == "" {
				path = "unmatched"
			}
			obs.ObserveRequest(r.Method, path, sw.status, time.Since(start))
		})
	}
}
