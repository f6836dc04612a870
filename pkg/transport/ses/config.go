package ses

import (
	"github.com/dmitrymomot/mailbridge/pkg/dsn"
)

// DefaultRegion is used when neither the DSN nor the config names a region.
const DefaultRegion = "eu-west-1"

// Scheme tokens recognised by Factory.
const (
	SchemeDefault = "ses"
	SchemeAPI     = "ses+api"
	SchemeHTTPS   = "ses+https"
	SchemeSMTP    = "ses+smtp"
	SchemeSMTPS   = "ses+smtps"
)

// smtpPort is the SES SMTP interface port with implicit TLS.
const smtpPort = 465

// Config holds the construction parameters shared by the SES transports.
type Config struct {
	User     string // access key id, or SMTP username
	Password string // secret access key, or SMTP password
	Region   string // empty means DefaultRegion at send time
	Host     string // endpoint host override; empty keeps the regional endpoint
	Port     int    // endpoint port override; 0 means unset
}

// EffectiveRegion returns the configured region or DefaultRegion.
func (c Config) EffectiveRegion() string {
	if c.Region == "" {
		return DefaultRegion
	}
	return c.Region
}

// endpointHost returns host[:port] of the API endpoint.
func (c Config) endpointHost() string {
	host := c.Host
	if host == "" {
		host = "email." + c.EffectiveRegion() + ".amazonaws.com"
	}
	return dsn.JoinHostPort(host, c.Port)
}

// endpoint returns the API base URL.
func (c Config) endpoint() string {
	return "https://" + c.endpointHost()
}
