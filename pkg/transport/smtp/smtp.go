// Package smtp sends email over SMTP through gomail and builds smtp:// and
// smtps:// transports from DSNs.
package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/dmitrymomot/mailbridge/pkg/mailer"
	"github.com/dmitrymomot/mailbridge/pkg/transport"
)

// Default ports.
const (
	DefaultPort    = 25
	DefaultTLSPort = 465
)

// Config describes an SMTP endpoint.
type Config struct {
	TLSConfig *tls.Config // optional; used for implicit TLS and STARTTLS
	Host      string
	Username  string
	Password  string
	LocalName string // EHLO name; empty uses "localhost"
	Scheme    string // reported by String; defaults to smtp or smtps by TLS
	Port      int
	TLS       bool // implicit TLS (SMTPS); otherwise STARTTLS when offered
}

// Transport delivers email to an SMTP server. A connection is opened per message.
type Transport struct {
	transport.Base
	cfg Config
}

// New creates an SMTP transport. Zero ports default to 25, or 465 with TLS.
func New(cfg Config, opts ...transport.Option) *Transport {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
		if cfg.TLS {
			cfg.Port = DefaultTLSPort
		}
	}
	if cfg.Scheme == "" {
		cfg.Scheme = "smtp"
		if cfg.TLS {
			cfg.Scheme = "smtps"
		}
	}
	return &Transport{
		Base: transport.NewBase(transport.NewOptions(opts...)),
		cfg:  cfg,
	}
}

// Host returns the server host.
func (t *Transport) Host() string { return t.cfg.Host }

// Port returns the server port.
func (t *Transport) Port() int { return t.cfg.Port }

// TLS reports whether implicit TLS is used.
func (t *Transport) TLS() bool { return t.cfg.TLS }

// Username returns the login user, empty for unauthenticated relays.
func (t *Transport) Username() string { return t.cfg.Username }

// Send implements mailer.Sender.
func (t *Transport) Send(ctx context.Context, email *mailer.Email) error {
	return t.Deliver(ctx, t.String(), email, t.send)
}

func (t *Transport) send(ctx context.Context, email *mailer.Email) (string, error) {
	// gomail has no context support; honour cancellation before dialing.
	if err := ctx.Err(); err != nil {
		return "", err
	}

	d := gomail.NewDialer(t.cfg.Host, t.cfg.Port, t.cfg.Username, t.cfg.Password)
	d.SSL = t.cfg.TLS
	d.LocalName = t.cfg.LocalName
	if t.cfg.TLSConfig != nil {
		d.TLSConfig = t.cfg.TLSConfig
	}

	msg := transport.NewMessage(email)
	if err := d.DialAndSend(msg); err != nil {
		return "", fmt.Errorf("smtp: send via %s: %w", t.addr(), err)
	}

	ids := msg.GetHeader("Message-ID")
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}

func (t *Transport) addr() string {
	return net.JoinHostPort(t.cfg.Host, strconv.Itoa(t.cfg.Port))
}

func (t *Transport) String() string {
	return t.cfg.Scheme + "://" + t.addr()
}
