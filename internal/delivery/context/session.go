package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeySessionID is the key for storing the menu session ID in context.
	KeySessionID ContextKey = "session_id"

	// KeyLogger is the key for storing the session-scoped logger in context.
	KeyLogger ContextKey = "logger"
)

// NewSessionID returns a fresh session ID.
func NewSessionID() string {
	return uuid.New().String()
}

// GetSessionIDFromContext extracts the session ID from ctx.
// If not found, returns empty string.
func GetSessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeySessionID).(string); ok {
		return id
	}

	return ""
}

// WithSessionID returns a new context with the session ID.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, KeySessionID, sessionID)
}

// GetLogger extracts the session-scoped logger from ctx.
// If not found, returns nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault extracts the session-scoped logger from ctx.
// If not found, returns the provided fallback logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// StartSession tags ctx with a new session ID and a logger carrying it.
func StartSession(ctx context.Context, logger *slog.Logger) (context.Context, *slog.Logger) {
	sessionID := NewSessionID()
	sessionLogger := logger.With(slog.String("session_id", sessionID))

	ctx = WithSessionID(ctx, sessionID)
	ctx = WithLogger(ctx, sessionLogger)

	return ctx, sessionLogger
}
