package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/pillpal/med-scheduler/pkg/problem"
	"github.com/rs/zerolog"
)

// Recovery recovers from panics and returns a 500 error
func Recovery(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error().
						Interface("panic", err).
						Bytes("stack", debug.Stack()).
						Msg("panic recovered")
					problem.InternalError("An unexpected error occurred").Write(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
