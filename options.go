package mailbridge

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/mailbridge/pkg/transport"
	"github.com/dmitrymomot/mailbridge/pkg/transport/ses"
)

// Option configures the registry built by NewRegistry and FromDSN.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	dispatcher transport.Dispatcher
	httpClient *http.Client
	provider   ses.ClientProvider
	metrics    *transport.Metrics
	tracer     trace.Tracer
	factories  []transport.Factory
	noProvider bool
}

// WithLogger sets the logger every transport reports to.
// If nil, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithDispatcher sets the listener for delivery events.
func WithDispatcher(d transport.Dispatcher) Option {
	return func(o *options) {
		o.dispatcher = d
	}
}

// WithHTTPClient sets the client used by API transports.
// Defaults to a client with transport.DefaultHTTPTimeout.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithSESClientProvider sets the native SES client capability.
// Passing nil makes ses+api fall back to the self-signed API transport.
func WithSESClientProvider(p ses.ClientProvider) Option {
	return func(o *options) {
		o.provider = p
		o.noProvider = p == nil
	}
}

// WithMetrics records per-send Prometheus metrics.
func WithMetrics(m *transport.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTracer opens an OpenTelemetry span per send.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// WithFactories registers extra factories ahead of the built-in ones.
func WithFactories(f ...transport.Factory) Option {
	return func(o *options) {
		o.factories = append(o.factories, f...)
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) transportOptions() []transport.Option {
	var out []transport.Option
	if o.logger != nil {
		out = append(out, transport.WithLogger(o.logger))
	}
	if o.dispatcher != nil {
		out = append(out, transport.WithDispatcher(o.dispatcher))
	}
	if o.httpClient != nil {
		out = append(out, transport.WithHTTPClient(o.httpClient))
	}
	return out
}

func (o options) sesOptions() []ses.Option {
	opts := []ses.Option{ses.WithTransportOptions(o.transportOptions()...)}
	switch {
	case o.noProvider:
		opts = append(opts, ses.WithClientProvider(nil))
	case o.provider != nil:
		opts = append(opts, ses.WithClientProvider(o.provider))
	}
	return opts
}

func (o options) instrumentOptions() []transport.InstrumentOption {
	var out []transport.InstrumentOption
	if o.metrics != nil {
		out = append(out, transport.WithMetrics(o.metrics))
	}
	if o.tracer != nil {
		out = append(out, transport.WithTracer(o.tracer))
	}
	return out
}
