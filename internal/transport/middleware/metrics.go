package middleware

import (
	"net/http"
	"time"
)

// HTTPRecorder receives one observation per served request.
type HTTPRecorder interface {
	RecordHTTPRequest(route, method string, status int, d time.Duration)
}

// Instrument records count and latency of requests served by one route.
// The route label is the registered pattern, never the raw path.
func Instrument(recorder HTTPRecorder, route string) Middleware {
	return func(next http.Handler) http.Handler {
		if recorder == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			recorder.RecordHTTPRequest(route, r.Method, sw.status, time.Since(start))
		})
	}
}
