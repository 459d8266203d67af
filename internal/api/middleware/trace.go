package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/promptchain/internal/api/shared"
	"github.com/phrazzld/promptchain/internal/platform/logger"
)

// TraceMiddleware assigns each request a trace ID, honoring an incoming
// X-Trace-ID header, echoes it in the response and attaches a request-scoped
// logger carrying trace_id to the context.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context(), sanitizeTraceID(r.Header.Get(shared.TraceIDHeader)))
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(shared.TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sanitizeTraceID accepts short alphanumeric IDs (plus '-' and '_') and
// drops anything else.
func sanitizeTraceID(id string) string {
	if id == "" || len(id) > 64 {
		return ""
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return ""
		}
	}
	return id
}
