package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceHeader carries the correlation ID for a request. An inbound value is
// reused so callers can stitch their own logs to ours; requests arriving
// without one get a fresh UUID.
const traceHeader = "X-Trace-ID"

// withTraceID attaches a trace-tagged child logger to the request context and
// echoes the trace ID back in the response headers. Every log line emitted
// further down the chain (access log, handler errors, mint-loop warnings)
// carries the same trace_id field.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		log := h.logger.GetChildLogger()
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceHeader, traceID)
		next.ServeHTTP(w, r.WithContext(log.WithContext(r.Context())))
	})
}
