package logging

import (
	"context"
	"log/slog"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for lint run IDs.
	RunIDKey contextKey = "run_id"

	// FileKey is the context key for the document being linted.
	FileKey contextKey = "file"
)

// WithRunID adds a lint run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the lint run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithFile adds the path of the document being linted to the context.
func WithFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, FileKey, path)
}

// GetFile retrieves the document path from the context.
func GetFile(ctx context.Context) string {
	if path, ok := ctx.Value(FileKey).(string); ok {
		return path
	}
	return ""
}

// contextHandler adds context fields to every record logged with a context.
type contextHandler struct {
	slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if runID := GetRunID(ctx); runID != "" {
		r.AddAttrs(slog.String(string(RunIDKey), runID))
	}
	if path := GetFile(ctx); path != "" {
		r.AddAttrs(slog.String(string(FileKey), path))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name)}
}
