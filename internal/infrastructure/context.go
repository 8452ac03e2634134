package infrastructure

import (
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/google/uuid"

	apperrors "wqcli/internal/errors"
)

// GenerateRunID creates a new unique run ID using UUID v4
func GenerateRunID() string {
	return uuid.New().String()
}

// EnsureRunID returns ctx with a run ID, generating one if none is set
func EnsureRunID(ctx context.Context) context.Context {
	if GetRunID(ctx) == "" {
		return WithRunID(ctx, GenerateRunID())
	}
	return ctx
}

// WithComponent creates a logger with a component field
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}

// ErrorAttrs returns log attributes for err. Application errors contribute
// their type and context.
func ErrorAttrs(err error) []any {
	if err == nil {
		return nil
	}
	args := []any{"error", err.Error()}
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		args = append(args, appErr.LogAttrs()...)
	}
	return args
}
