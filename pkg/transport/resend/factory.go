package resend

import (
	"slices"

	"github.com/dmitrymomot/mailbridge/pkg/dsn"
	"github.com/dmitrymomot/mailbridge/pkg/transport"
)

var schemes = []string{"resend", "resend+api"}

// Factory builds Resend transports from DSNs. The API key is the DSN user:
//
//	resend+api://re_123@default?from=team@example.com&from_name=Team
type Factory struct {
	opts []transport.Option
}

// NewFactory creates a Resend factory passing opts to every transport.
func NewFactory(opts ...transport.Option) *Factory {
	return &Factory{opts: opts}
}

// Create implements transport.Factory.
func (f *Factory) Create(d *dsn.DSN) (transport.Transport, error) {
	if !f.Supports(d) {
		return nil, transport.NewUnsupportedSchemeError(d, "resend", schemes)
	}

	cfg := Config{
		APIKey:      d.User,
		SenderEmail: d.Option("from"),
		SenderName:  d.Option("from_name"),
	}
	if !d.IsDefaultHost() {
		cfg.Endpoint = "https://" + d.Authority()
	}

	return New(cfg, f.opts...)
}

// Supports implements transport.Factory.
func (f *Factory) Supports(d *dsn.DSN) bool {
	return d != nil && slices.Contains(schemes, d.Scheme)
}

// Schemes implements transport.Factory.
func (f *Factory) Schemes() []string {
	return slices.Clone(schemes)
}
