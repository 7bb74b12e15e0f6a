package log

import (
	"context"
	"log/slog"
	"time"
)

// StructuredLogger provides structured logging methods with context awareness
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogAPICall logs the completion of an outgoing API request.
// Client errors log at warn, server errors at error, the rest at debug.
func (sl *StructuredLogger) LogAPICall(ctx context.Context, method, path, query, requestID string, statusCode int, elapsed time.Duration) {
	level := slog.LevelDebug
	if statusCode >= 400 && statusCode < 500 {
		level = slog.LevelWarn
	} else if statusCode >= 500 {
		level = slog.LevelError
	}

	fields := NewFields().
		WithHTTPRequest(method, path, query).
		WithHTTPResponse(statusCode, elapsed.Milliseconds(), statusCode < 400).
		WithRequestID(requestID).
		WithComponent(ComponentAPI)

	sl.logger.Logger.Log(ctx, level, "API request completed", fields.ToSlice()...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithOperation(operation).
		WithComponent(component)

	sl.logger.Logger.ErrorContext(ctx, msg, allFields.ToSlice()...)
}
