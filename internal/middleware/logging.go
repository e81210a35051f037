package middleware

import (
	"net/http"
	"strings"
	"time"

	"secure-store-hub/internal/logger"
)

// LoggingMiddleware records a structured request/response pair per call.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWrapper{
			ResponseWriter: w,
			statusCode:     200,
		}

		l := logger.GetLogger()
		if l != nil {
			l.LogAPIRequest(r.Method, r.URL.Path, r.UserAgent(), getClientIP(r))
		}

		next.ServeHTTP(wrapper, r)

		if l != nil {
			l.LogAPIResponse(r.Method, r.URL.Path, wrapper.statusCode, time.Since(start))
		}
	})
}

// responseWrapper captures the status code written by a handler.
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// getClientIP resolves the client address behind proxies.
func getClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip := r.RemoteAddr
	if colonIndex := strings.LastIndex(ip, ":"); colonIndex != -1 {
		ip = ip[:colonIndex]
	}
	return ip
}
