package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// responseWriter captures the status code written by a handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware adds CORS headers and answers preflight requests.
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.config.CORSOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// metricsMiddleware records request counts and latency per endpoint.
func (s *Server) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next(rw, r)

		httpRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(rw.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
}

// rateLimitMiddleware rejects requests over the per-client budget. It is a
// no-op when rate limiting is disabled.
func (s *Server) rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.rateLimiter != nil {
			if err := s.rateLimiter.Allow(clientID(r)); err != nil {
				rateLimitRejections.Inc()
				var rlErr *RateLimitError
				if errors.As(err, &rlErr) {
					w.Header().Set("Retry-After", strconv.Itoa(int(rlErr.RetryAfter.Seconds())))
				}
				writeErrorResponse(w, http.StatusTooManyRequests, err.Error())
				return
			}
		}

		next(w, r)
	}
}

// clientID identifies the caller for rate limiting purposes.
func clientID(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}

// requireMethod writes a 405 response unless the request uses the given method.
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		writeErrorResponse(w, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", r.Method))
		return false
	}
	return true
}
