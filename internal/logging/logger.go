// Package logging provides structured logging configuration using log/slog.
//
// Request handlers get the chi request ID attached automatically through
// FromContext. Background load cycles have no request; they carry a load ID
// instead (see WithLoadID), so every log line of one fetch-and-parse cycle can
// be correlated.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const ctxKeyLoadID contextKey = "load_id"

// Setup configures the global slog logger based on level and format.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string) {
	slog.SetDefault(New(os.Stdout, level, format))
}

// New builds a logger writing to w. Exposed for tests and the CLI, which logs to stderr.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithLoadID returns a context carrying the ID of a load cycle.
func WithLoadID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyLoadID, id)
}

// LoadID returns the load cycle ID stored in ctx, or "".
func LoadID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyLoadID).(string); ok {
		return v
	}
	return ""
}

// FromContext returns the default logger enriched with the request ID
// (set by chi's RequestID middleware) and load ID found in ctx.
//
// Usage:
//
//	func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
//	    logger := logging.FromContext(r.Context())
//	    logger.Info("listing projects", "stack", stack)
//	}
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if reqID := middleware.GetReqID(ctx); reqID != "" {
		logger = logger.With("request_id", reqID)
	}
	if loadID := LoadID(ctx); loadID != "" {
		logger = logger.With("load_id", loadID)
	}

	return logger
}

// WithFields returns a logger with additional structured fields.
//
//	logger := logging.WithFields(ctx, "source", src.Location())
//	logger.Info("load started")
//	// ... later ...
//	logger.Info("load completed", "records", n)
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
