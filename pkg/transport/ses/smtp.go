package ses

import (
	"github.com/dmitrymomot/mailbridge/pkg/transport"
	"github.com/dmitrymomot/mailbridge/pkg/transport/smtp"
)

// SMTPTransport sends through the regional SES SMTP interface with implicit TLS.
type SMTPTransport struct {
	*smtp.Transport
	region string
}

// NewSMTPTransport connects to email-smtp.<region>.amazonaws.com:465.
// cfg.Host and cfg.Port are not used.
func NewSMTPTransport(cfg Config, opts ...transport.Option) *SMTPTransport {
	region := cfg.EffectiveRegion()
	return &SMTPTransport{
		Transport: smtp.New(smtp.Config{
			Host:     "email-smtp." + region + ".amazonaws.com",
			Port:     smtpPort,
			TLS:      true,
			Username: cfg.User,
			Password: cfg.Password,
			Scheme:   SchemeSMTP,
		}, opts...),
		region: region,
	}
}

// Region returns the SES region the transport connects to.
func (t *SMTPTransport) Region() string { return t.region }
