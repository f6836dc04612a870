// Package logger builds slog loggers with context extraction and optional
// Sentry fan-out.
//
// Callers tag a context with ContextWith; a logger built with the matching
// extractors adds those attributes to every record logged under that context:
//
//	log := logger.NewFromConfig(os.Stderr, cfg.Logger,
//		logger.ContextAttrs("command", "scheme")...,
//	)
//	ctx = logger.ContextWith(ctx, slog.String("scheme", d.Scheme))
//
// When Config.Sentry.DSN is set, warnings and errors are also forwarded to
// Sentry; errors become Sentry issues. If the DSN is empty or the SDK fails to
// initialize, logging continues locally.
//
// NewNope returns a logger that discards everything and is the default for
// every transport.
package logger
