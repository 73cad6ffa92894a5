package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/odpi/itinfra/internal/logging"
)

// TracingMiddleware assigns each request a trace ID and logs its outcome.
type TracingMiddleware struct {
	logger *logging.Logger
}

// NewTracingMiddleware creates a new tracing middleware.
func NewTracingMiddleware(logger *logging.Logger) *TracingMiddleware {
	return &TracingMiddleware{logger: logging.New("http", loggerOf(logger))}
}

// Handler returns the tracing middleware handler. An incoming X-Trace-ID is
// kept.
func (m *TracingMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = logging.NewTraceID()
		}
		ctx := logging.WithTraceID(r.Context(), traceID)
		ctx = logging.WithServerName(ctx, mux.Vars(r)["serverName"])
		w.Header().Set("X-Trace-ID", traceID)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		start := time.Now()
		r = r.WithContext(ctx)
		next.ServeHTTP(rw, r)

		// The auth middleware runs later in the chain, so the caller comes
		// from the route.
		ctx = logging.WithUserID(ctx, mux.Vars(r)["userId"])
		m.logger.LogRequest(ctx, r.Method, r.URL.Path, rw.statusCode, time.Since(start))
	})
}
