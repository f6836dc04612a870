package logger

import (
	"context"
	"log/slog"
)

type attrsKey struct{}

// ContextWith returns a copy of ctx carrying attrs in addition to any already stored.
// Loggers built with ContextAttrs pick them up on every record.
func ContextWith(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}
	prev, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	merged := make([]slog.Attr, 0, len(prev)+len(attrs))
	merged = append(merged, prev...)
	merged = append(merged, attrs...)
	return context.WithValue(ctx, attrsKey{}, merged)
}

// ContextAttrs returns extractors for every attribute stored with ContextWith.
// keys restricts extraction to the named attributes.
func ContextAttrs(keys ...string) []ContextExtractor {
	extractors := make([]ContextExtractor, 0, len(keys))
	for _, key := range keys {
		extractors = append(extractors, func(ctx context.Context) (slog.Attr, bool) {
			attrs, _ := ctx.Value(attrsKey{}).([]slog.Attr)
			// Last write wins.
			for i := len(attrs) - 1; i >= 0; i-- {
				if attrs[i].Key == key {
					return attrs[i], true
				}
			}
			return slog.Attr{}, false
		})
	}
	return extractors
}
