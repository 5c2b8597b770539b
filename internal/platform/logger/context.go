package logger

import (
	"context"
	"log/slog"
)

// loggerContextKey is a private type for the logger context key to avoid
// collisions with keys from other packages.
type loggerContextKey struct{}

// WithLogger returns a new context that carries the provided logger.
// Middleware stores a request-scoped logger here so downstream layers
// keep request attributes such as the trace ID in their log records.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// FromContext returns the logger stored in the context.
// If no logger is present, it returns slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// FromContextOrDefault returns the logger stored in the context, falling
// back to the provided logger when the context carries none.
// A nil fallback resolves to slog.Default().
func FromContextOrDefault(ctx context.Context, defaultLogger *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	if defaultLogger != nil {
		return defaultLogger
	}
	return slog.Default()
}
