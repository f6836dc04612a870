package ses

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/mailbridge/pkg/dsn"
	"github.com/dmitrymomot/mailbridge/pkg/transport"
)

// Provider is the mailer name reported in unsupported-scheme errors.
const Provider = "ses"

var schemes = []string{SchemeDefault, SchemeAPI, SchemeHTTPS, SchemeSMTP, SchemeSMTPS}

// Factory builds SES transports from DSNs.
type Factory struct {
	provider ClientProvider
	opts     []transport.Option
}

// Option configures a Factory.
type Option func(*Factory)

// WithClientProvider sets the native client capability. nil means unavailable.
func WithClientProvider(p ClientProvider) Option {
	return func(f *Factory) {
		f.provider = p
	}
}

// WithTransportOptions sets the collaborators handed to every transport.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(f *Factory) {
		f.opts = append(f.opts, opts...)
	}
}

// NewFactory creates a factory that uses SDKClientProvider unless told otherwise.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{provider: SDKClientProvider{}}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Schemes returns the supported schemes.
func (f *Factory) Schemes() []string {
	return slices.Clone(schemes)
}

// Supports reports whether d uses an SES scheme.
func (f *Factory) Supports(d *dsn.DSN) bool {
	return d != nil && slices.Contains(schemes, d.Scheme)
}

// Create builds the transport for d's scheme:
//
//	ses+api             APIClientTransport when a native client is available, else APITransport
//	ses+https, ses      HTTPTransport
//	ses+smtp, ses+smtps SMTPTransport
//
// The host "default" leaves the endpoint unset.
func (f *Factory) Create(d *dsn.DSN) (transport.Transport, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil dsn", dsn.ErrInvalidDSN)
	}

	region := d.Option("region")
	var host string
	if !d.IsDefaultHost() {
		host = d.Host
	}

	switch d.Scheme {
	case SchemeAPI:
		if f.provider != nil && f.provider.Available() {
			return f.newClientTransport(d, region, host)
		}
		return NewAPITransport(Config{
			User:     d.User,
			Password: d.Password,
			Region:   region,
			Host:     host,
			Port:     d.Port,
		}, f.opts...), nil

	case SchemeHTTPS, SchemeDefault:
		return NewHTTPTransport(Config{
			User:     d.User,
			Password: d.Password,
			Region:   region,
			Host:     host,
			Port:     d.Port,
		}, f.opts...), nil

	case SchemeSMTP, SchemeSMTPS:
		return NewSMTPTransport(Config{
			User:     d.User,
			Password: d.Password,
			Region:   region,
		}, f.opts...), nil
	}

	return nil, transport.NewUnsupportedSchemeError(d, Provider, schemes)
}

func (f *Factory) newClientTransport(d *dsn.DSN, region, host string) (transport.Transport, error) {
	if region == "" {
		region = DefaultRegion
	}

	var endpoint string
	if host != "" {
		endpoint = "https://" + dsn.JoinHostPort(host, d.Port)
	}

	o := transport.NewOptions(f.opts...)
	client, err := f.provider.NewClient(ClientConfig{
		HTTPClient:      o.HTTPClient,
		Region:          region,
		Endpoint:        endpoint,
		AccessKeyID:     d.User,
		AccessKeySecret: d.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("ses: create client: %w", err)
	}

	return NewAPIClientTransport(client, region, endpoint, f.opts...), nil
}
