package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// panicBody is written when a handler panics. It matches the shape of
// pkg/errors.Internal so clients see one error format everywhere.
const panicBody = `{"code":"INTERNAL_ERROR","message":"an internal error occurred"}`

// Recovery turns handler panics into 500 responses. The panic value and
// stack are logged, never sent to the client.
func Recovery(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					l.ErrorContext(r.Context(), "panic recovered",
						slog.Any("panic", rec),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					if _, err := w.Write([]byte(panicBody)); err != nil {
						l.Error("failed to write response", slog.String("error", err.Error()))
					}
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
