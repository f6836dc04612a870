package mailbridge

import (
	"github.com/dmitrymomot/mailbridge/pkg/dsn"
	"github.com/dmitrymomot/mailbridge/pkg/transport"
	"github.com/dmitrymomot/mailbridge/pkg/transport/resend"
	"github.com/dmitrymomot/mailbridge/pkg/transport/ses"
	"github.com/dmitrymomot/mailbridge/pkg/transport/smtp"
)

// Type aliases - public API
type (
	// Transport delivers email through one concrete mechanism.
	Transport = transport.Transport

	// Factory builds transports for a fixed set of DSN schemes.
	Factory = transport.Factory

	// Registry resolves DSNs through registered factories.
	Registry = transport.Registry

	// UnsupportedSchemeError reports a DSN scheme no factory handles.
	UnsupportedSchemeError = transport.UnsupportedSchemeError
)

// ErrUnsupportedScheme is matched by every *UnsupportedSchemeError.
var ErrUnsupportedScheme = transport.ErrUnsupportedScheme

// NewRegistry returns a registry with the factories from WithFactories followed
// by the SES, SMTP, Resend and development factories.
func NewRegistry(opts ...Option) *Registry {
	return newRegistry(newOptions(opts))
}

func newRegistry(o options) *Registry {
	topts := o.transportOptions()
	factories := append([]transport.Factory(nil), o.factories...)
	factories = append(factories,
		ses.NewFactory(o.sesOptions()...),
		smtp.NewFactory(topts...),
		resend.NewFactory(topts...),
		transport.NewDevFactory(topts...),
	)
	return transport.NewRegistry(factories...)
}

// FromDSN parses raw and builds the matching transport. With WithMetrics or
// WithTracer the transport is instrumented under its DSN scheme.
func FromDSN(raw string, opts ...Option) (Transport, error) {
	d, err := dsn.Parse(raw)
	if err != nil {
		return nil, err
	}

	o := newOptions(opts)
	t, err := newRegistry(o).FromDSN(d)
	if err != nil {
		return nil, err
	}
	return transport.Instrument(d.Scheme, t, o.instrumentOptions()...), nil
}

// Schemes lists every scheme the default registry understands.
func Schemes() []string {
	return NewRegistry().Schemes()
}
