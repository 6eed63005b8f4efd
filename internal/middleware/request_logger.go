package middleware

import (
	"net/http"
	"time"

	"github.com/Stewz00/doc-analysis-api/internal/logging"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger logs one line per request once the response is written.
// 5xx responses are logged at error level, 4xx at warn.
func RequestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				args := []any{
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"bytes", ww.BytesWritten(),
					"duration_ms", time.Since(start).Milliseconds(),
					"remote_ip", r.RemoteAddr,
				}
				if id := chimiddleware.GetReqID(r.Context()); id != "" {
					args = append(args, "request_id", id)
				}

				switch {
				case status >= http.StatusInternalServerError:
					logger.Error(r.Context(), "request completed", args...)
				case status >= http.StatusBadRequest:
					logger.Warn(r.Context(), "request completed", args...)
				default:
					logger.Info(r.Context(), "request completed", args...)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
