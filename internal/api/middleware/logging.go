package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/hbnb-web/internal/infrastructure/observability"
)

// RequestIDHeader echoes the id every log line of a request carries
const RequestIDHeader = "X-Request-ID"

// LoggingMiddleware gives each request a logger tagged with its id and logs
// the outcome
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := uuid.NewString()
		w.Header().Set(RequestIDHeader, requestID)
		logger := log.Logger.With().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()
		r = r.WithContext(observability.WithLogger(r.Context(), logger))

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		reqLog := observability.LoggerFromContext(r.Context())
		event := reqLog.Info()
		if rw.statusCode >= http.StatusInternalServerError {
			event = reqLog.Error()
		}
		event.
			Int("status", rw.statusCode).
			Dur("duration", time.Since(start)).
			Str("remote_ip", peerIP(r)).
			Str("forwarded_for", r.Header.Get("X-Forwarded-For")).
			Msg("request")
	})
}
