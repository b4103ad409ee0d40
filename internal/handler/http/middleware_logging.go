package http

import (
	"net/http"
	"time"

	"github.com/ablecorp/abuelo/internal/logger"
)

// withLogging emits one access-log line per request. Because the API answers
// handled outcomes with a uniform HTTP 200, the recorded status only
// distinguishes transport-level failures; the envelope outcome itself is
// logged by the handlers.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rec := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		logger.FromRequest(r).Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", rec.status).
			Int("bytes", rec.size).
			Dur("elapsed", time.Since(start)).
			Msg("request served")
	})
}
