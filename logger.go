package ucdchart

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/ucdchart/ucd"
)

// Logger wraps slog.Logger with ucdchart-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithChunk adds a chunk index field to the logger.
func (l *Logger) WithChunk(i int) *Logger {
	return &Logger{
		Logger: l.Logger.With("chunk", i),
	}
}

// WithCodePoint adds a code point field, formatted as U+XXXX.
func (l *Logger) WithCodePoint(cp uint32) *Logger {
	s, err := ucd.FormatCodePointName(cp)
	if err != nil {
		return &Logger{Logger: l.Logger.With("code_point", cp)}
	}
	return &Logger{
		Logger: l.Logger.With("code_point", s),
	}
}

// WithComponent adds a component field to the logger.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", name),
	}
}

// LogLookup logs a code point lookup.
func (l *Logger) LogLookup(ctx context.Context, cp uint32, err error) {
	if err != nil {
		l.ErrorContext(ctx, "lookup failed",
			"code_point", cp,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "lookup completed",
			"code_point", cp,
		)
	}
}

// LogList logs a filtered listing.
func (l *Logger) LogList(ctx context.Context, filter string, found int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "list failed",
			"filter", filter,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "list completed",
			"filter", filter,
			"found", found,
		)
	}
}

// LogIndex logs loading of the category index.
func (l *Logger) LogIndex(ctx context.Context, name string, loaded bool, err error) {
	switch {
	case err != nil:
		l.WarnContext(ctx, "category index unavailable",
			"name", name,
			"error", err,
		)
	case loaded:
		l.InfoContext(ctx, "category index loaded",
			"name", name,
		)
	default:
		l.InfoContext(ctx, "category index not found",
			"name", name,
		)
	}
}
