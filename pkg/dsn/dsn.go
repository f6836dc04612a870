package dsn

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// DefaultHost is the host sentinel meaning "no explicit host override".
const DefaultHost = "default"

const maxPort = 65535

// DSN is a parsed mailer connection string. Treat it as read-only.
type DSN struct {
	Options  map[string]string
	Scheme   string
	Host     string
	User     string
	Password string
	Port     int // 0 when unset
}

// Parse parses raw into a DSN.
func Parse(raw string) (*DSN, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, invalid(raw, ErrMissingScheme)
	}

	u, err := url.Parse(raw)
	if err != nil {
		// url.Error echoes the input, password included.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, invalid(raw, err)
	}
	if u.Scheme == "" {
		return nil, invalid(raw, ErrMissingScheme)
	}
	if u.Hostname() == "" {
		return nil, invalid(raw, ErrMissingHost)
	}

	d := &DSN{
		Scheme:  strings.ToLower(u.Scheme),
		Host:    u.Hostname(),
		Options: make(map[string]string),
	}

	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port < 1 || port > maxPort {
			return nil, invalid(raw, ErrInvalidPort)
		}
		d.Port = port
	}

	if u.User != nil {
		d.User = u.User.Username()
		d.Password, _ = u.User.Password()
	}

	for key, values := range u.Query() {
		if len(values) > 0 {
			d.Options[key] = values[len(values)-1]
		}
	}

	return d, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(raw string) *DSN {
	d, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return d
}

// IsDefaultHost reports whether the DSN leaves the host to the provider.
func (d *DSN) IsDefaultHost() bool {
	return d.Host == DefaultHost
}

// HasPort reports whether an explicit port was given.
func (d *DSN) HasPort() bool {
	return d.Port > 0
}

// Authority returns host[:port], bracketing IPv6 hosts.
func (d *DSN) Authority() string {
	return JoinHostPort(d.Host, d.Port)
}

// JoinHostPort combines host and port into URL authority form. A zero port is
// omitted; IPv6 hosts are bracketed either way.
func JoinHostPort(host string, port int) string {
	if port > 0 {
		return net.JoinHostPort(host, strconv.Itoa(port))
	}
	if strings.Contains(host, ":") {
		return "[" + host + "]"
	}
	return host
}

// Option returns the named option or an empty string.
func (d *DSN) Option(key string) string {
	return d.Options[key]
}

// OptionOr returns the named option, or fallback when it is absent or empty.
func (d *DSN) OptionOr(key, fallback string) string {
	if v := d.Options[key]; v != "" {
		return v
	}
	return fallback
}

// String renders the DSN with the password masked.
func (d *DSN) String() string {
	var b strings.Builder
	b.WriteString(d.Scheme)
	b.WriteString("://")
	if d.User != "" {
		b.WriteString(url.User(d.User).String())
		if d.Password != "" {
			b.WriteString(":****")
		}
		b.WriteByte('@')
	}
	b.WriteString(d.Authority())
	if len(d.Options) > 0 {
		q := url.Values{}
		for k, v := range d.Options {
			q.Set(k, v)
		}
		b.WriteByte('?')
		b.WriteString(q.Encode())
	}
	return b.String()
}

func invalid(raw string, cause error) error {
	return fmt.Errorf("%w: %q: %w", ErrInvalidDSN, mask(raw), cause)
}

// mask hides the password portion of a raw DSN for error messages.
func mask(raw string) string {
	schemeEnd := strings.Index(raw, "://")
	at := strings.LastIndex(raw, "@")
	if schemeEnd < 0 || at < schemeEnd {
		return raw
	}
	userinfo := raw[schemeEnd+3 : at]
	colon := strings.Index(userinfo, ":")
	if colon < 0 {
		return raw
	}
	return raw[:schemeEnd+3] + userinfo[:colon] + ":****" + raw[at:]
}
