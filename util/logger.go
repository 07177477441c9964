package util

import (
	"log/slog"
	"net/http"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func NewLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.Header.Get("X-Forwarded-For")
		if ip == "" {
			ip = r.RemoteAddr
		}

		rec := &statusRecorder{
			ResponseWriter: w,
			status:         200, // default status to 200
		}

		next.ServeHTTP(rec, r)
		slog.Info("HTTP", "method", r.Method, "status", rec.status, "path", r.URL.Path, "ip", ip)
	})
}
