package middleware

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts an OpenTelemetry span for each HTTP request and propagates
// the context to downstream handlers and services, so the schedule engine's
// generation span nests under the request span.
func Tracing(next http.Handler) http.Handler {
	tracer := otel.Tracer("med-scheduler/http")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		spanName := r.Method + " " + r.URL.Path
		ctx, span := tracer.Start(ctx, spanName,
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			),
		)

		// Wrap ResponseWriter to capture status code
		tw := &traceResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(tw, r.WithContext(ctx))

		span.SetAttributes(
			attribute.Int("http.status_code", tw.statusCode),
			attribute.Int64("http.duration_ms", time.Since(start).Milliseconds()),
		)
		span.End()
	})
}

type traceResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (tw *traceResponseWriter) WriteHeader(code int) {
	tw.statusCode = code
	tw.ResponseWriter.WriteHeader(code)
}
