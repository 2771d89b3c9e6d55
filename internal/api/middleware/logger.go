package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Logger emits one structured log line per request.
func Logger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lw := &logResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(lw, r)

			evt := logger.Info()
			if lw.statusCode >= 500 {
				evt = logger.Error()
			}
			evt.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", lw.statusCode).
				Dur("latency", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Msg("request")
		})
	}
}

type logResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lw *logResponseWriter) WriteHeader(code int) {
	lw.statusCode = code
	lw.ResponseWriter.WriteHeader(code)
}
