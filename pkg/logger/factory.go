package logger

import (
	"io"
	"log/slog"
)

// NewFromConfig creates a logger writing to w in the configured format and level.
// When cfg.Sentry.DSN is set, records are also forwarded to Sentry.
// An unknown level falls back to info.
func NewFromConfig(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	level, err := ParseLevel(cfg.Level)
	base := newHandler(w, cfg.Format, level)
	if err != nil {
		slog.New(base).Warn("falling back to info level", slog.String("error", err.Error()))
	}
	return slog.New(NewLogHandlerDecorator(withSentry(base, cfg.Sentry), extractors...))
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
