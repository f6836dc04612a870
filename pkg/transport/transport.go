package transport

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/mailbridge/pkg/dsn"
	"github.com/dmitrymomot/mailbridge/pkg/logger"
	"github.com/dmitrymomot/mailbridge/pkg/mailer"
)

// DefaultHTTPTimeout bounds API calls made through the default HTTP client.
const DefaultHTTPTimeout = 30 * time.Second

// Transport delivers email through one concrete mechanism.
// String describes the endpoint without credentials.
type Transport interface {
	mailer.Sender
	fmt.Stringer
}

// Factory builds transports for a fixed set of DSN schemes.
type Factory interface {
	// Create builds a transport for d or returns *UnsupportedSchemeError.
	Create(d *dsn.DSN) (Transport, error)
	// Supports reports whether Create understands d's scheme.
	Supports(d *dsn.DSN) bool
	// Schemes lists the schemes this factory handles.
	Schemes() []string
}

// Options holds the collaborators handed unchanged to every transport a factory builds.
type Options struct {
	Logger     *slog.Logger
	Dispatcher Dispatcher
	HTTPClient *http.Client
}

// Option configures Options.
type Option func(*Options)

// WithLogger sets the logger transports report deliveries to.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithDispatcher sets the dispatcher that receives delivery events.
func WithDispatcher(d Dispatcher) Option {
	return func(o *Options) {
		o.Dispatcher = d
	}
}

// WithHTTPClient sets the client API and HTTP transports use.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Options) {
		o.HTTPClient = c
	}
}

// NewOptions applies opts over the defaults: a no-op logger, no dispatcher and
// an HTTP client with DefaultHTTPTimeout.
func NewOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = logger.NewNope()
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return o
}
