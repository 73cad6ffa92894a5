// Package logging adds request-scoped context (trace IDs, callers) on top of
// the shared logger.
package logging

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/odpi/itinfra/pkg/logger"
)

type contextKey string

const (
	// TraceIDKey holds the request trace identifier.
	TraceIDKey contextKey = "trace_id"
	// UserIDKey holds the authenticated caller.
	UserIDKey contextKey = "user_id"
	// ServerNameKey holds the server (tenant) a request addresses.
	ServerNameKey contextKey = "server_name"
)

// Logger decorates the shared logger with request-aware helpers.
type Logger struct {
	*logger.Logger
}

// New wraps a logger. A nil logger gets a default one for the component.
func New(component string, log *logger.Logger) *Logger {
	if log == nil {
		log = logger.NewDefault(component)
	}
	return &Logger{Logger: log}
}

// NewTraceID returns a fresh trace identifier.
func NewTraceID() string {
	return uuid.NewString()
}

// WithTraceID stores the trace ID in the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		return ctx
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID returns the trace ID stored in the context, if any.
func GetTraceID(ctx context.Context) string {
	v, _ := ctx.Value(TraceIDKey).(string)
	return v
}

// WithUserID stores the authenticated caller in the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID returns the authenticated caller, if any.
func GetUserID(ctx context.Context) string {
	v, _ := ctx.Value(UserIDKey).(string)
	return v
}

// WithServerName stores the addressed server name in the context.
func WithServerName(ctx context.Context, serverName string) context.Context {
	if serverName == "" {
		return ctx
	}
	return context.WithValue(ctx, ServerNameKey, serverName)
}

// GetServerName returns the addressed server name, if any.
func GetServerName(ctx context.Context) string {
	v, _ := ctx.Value(ServerNameKey).(string)
	return v
}

// WithContext returns an entry carrying the request-scoped fields present in ctx.
func (l *Logger) WithContext(ctx context.Context) *logrus.Entry {
	fields := logrus.Fields{}
	if traceID := GetTraceID(ctx); traceID != "" {
		fields["trace_id"] = traceID
	}
	if userID := GetUserID(ctx); userID != "" {
		fields["user_id"] = userID
	}
	if server := GetServerName(ctx); server != "" {
		fields["server"] = server
	}
	return l.Entry.WithFields(fields)
}

// LogRequest records a completed HTTP request.
func (l *Logger) LogRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	entry := l.WithContext(ctx).WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"status":      status,
		"duration_ms": duration.Milliseconds(),
	})
	switch {
	case status >= 500:
		entry.Error("request failed")
	case status >= 400:
		entry.Warn("request rejected")
	default:
		entry.Info("request completed")
	}
}

// LogSecurityEvent records an authentication or throttling decision.
func (l *Logger) LogSecurityEvent(ctx context.Context, event string, details map[string]interface{}) {
	l.WithContext(ctx).WithField("security_event", event).WithFields(details).Warn("security event")
}
