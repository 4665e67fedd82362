// Package logger provides the structured logger shared by all formatgate commands.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

type contextKey struct{}

var loggerKey = contextKey{}

// Options configures a logger created with New.
type Options struct {
	// Verbose lowers the level to Debug.
	Verbose bool
	// JSON switches to the JSON handler.
	JSON bool
	// NoColor disables ANSI colors in the text handler.
	NoColor bool
}

// New creates a new structured logger writing to w.
//
// The default level is Warn: the hook runs inside `git commit` and anything
// below a warning would clutter the prompt. Text output is colored only when
// w is a terminal.
func New(w io.Writer, opts Options) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
			NoColor:    opts.NoColor || !IsTerminal(w),
		})
	}

	return slog.New(handler)
}

// IsTerminal reports whether w is a file descriptor attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

// WithContext returns a new context with the given logger attached.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger from the context.
// If no logger is found, it returns the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
