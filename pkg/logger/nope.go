package logger

import "log/slog"

// NewNope creates a no-op logger that discards all output.
// Transports use it when no logger is configured.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
