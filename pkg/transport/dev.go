package transport

import (
	"context"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/mailbridge/pkg/dsn"
	"github.com/dmitrymomot/mailbridge/pkg/mailer"
)

// NullTransport accepts every valid message and delivers nothing.
type NullTransport struct {
	Base
}

// NewNullTransport creates a transport that discards messages.
func NewNullTransport(opts ...Option) *NullTransport {
	return &NullTransport{Base: NewBase(NewOptions(opts...))}
}

// Send implements mailer.Sender.
func (t *NullTransport) Send(ctx context.Context, email *mailer.Email) error {
	return t.Deliver(ctx, t.String(), email, func(context.Context, *mailer.Email) (string, error) {
		return "", nil
	})
}

func (t *NullTransport) String() string {
	return "null://"
}

// LogTransport writes messages to its logger instead of sending them.
// Useful for development.
type LogTransport struct {
	Base
}

// NewLogTransport creates a transport that logs every message at info level.
func NewLogTransport(opts ...Option) *LogTransport {
	return &LogTransport{Base: NewBase(NewOptions(opts...))}
}

// Send implements mailer.Sender.
func (t *LogTransport) Send(ctx context.Context, email *mailer.Email) error {
	return t.Deliver(ctx, t.String(), email, func(ctx context.Context, e *mailer.Email) (string, error) {
		body := e.Text
		if body == "" {
			body = mailer.PlainText(e.HTML)
		}
		t.Logger().InfoContext(ctx, "email (not sent)",
			slog.String("from", e.From),
			slog.Any("to", e.To),
			slog.Any("cc", e.CC),
			slog.String("subject", e.Subject),
			slog.Int("attachments", len(e.Attachments)),
			slog.String("body", body),
		)
		return "", nil
	})
}

func (t *LogTransport) String() string {
	return "log://"
}

var devSchemes = []string{"log", "null"}

// DevFactory builds the development transports: null:// and log://.
type DevFactory struct {
	opts []Option
}

// NewDevFactory creates a factory for null:// and log:// DSNs.
func NewDevFactory(opts ...Option) *DevFactory {
	return &DevFactory{opts: opts}
}

// Create implements Factory.
func (f *DevFactory) Create(d *dsn.DSN) (Transport, error) {
	if !f.Supports(d) {
		return nil, NewUnsupportedSchemeError(d, "dev", devSchemes)
	}
	switch d.Scheme {
	case "null":
		return NewNullTransport(f.opts...), nil
	case "log":
		return NewLogTransport(f.opts...), nil
	}
	return nil, NewUnsupportedSchemeError(d, "dev", devSchemes)
}

// Supports implements Factory.
func (f *DevFactory) Supports(d *dsn.DSN) bool {
	return d != nil && slices.Contains(devSchemes, d.Scheme)
}

// Schemes implements Factory.
func (f *DevFactory) Schemes() []string {
	return slices.Clone(devSchemes)
}
