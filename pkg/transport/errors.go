package transport

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/mailbridge/pkg/dsn"
)

var (
	// ErrUnsupportedScheme is matched by every *UnsupportedSchemeError.
	ErrUnsupportedScheme = errors.New("transport: unsupported scheme")

	// ErrRejected indicates a dispatcher vetoed the message before delivery.
	ErrRejected = errors.New("transport: message rejected")
)

// UnsupportedSchemeError reports a DSN scheme no factory can handle.
type UnsupportedSchemeError struct {
	DSN       *dsn.DSN
	Scheme    string
	Provider  string // factory name, empty for the registry
	Supported []string
}

func (e *UnsupportedSchemeError) Error() string {
	quoted := make([]string, len(e.Supported))
	for i, s := range e.Supported {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	if e.Provider != "" {
		return fmt.Sprintf("transport: the %q scheme is not supported; supported schemes for mailer %q are: %s",
			e.Scheme, e.Provider, strings.Join(quoted, ", "))
	}
	return fmt.Sprintf("transport: the %q scheme is not supported; supported schemes are: %s",
		e.Scheme, strings.Join(quoted, ", "))
}

// Is reports whether target is ErrUnsupportedScheme.
func (e *UnsupportedSchemeError) Is(target error) bool {
	return target == ErrUnsupportedScheme
}

// NewUnsupportedSchemeError builds the error for d against the given supported list.
// A nil d yields an empty scheme.
func NewUnsupportedSchemeError(d *dsn.DSN, provider string, supported []string) *UnsupportedSchemeError {
	e := &UnsupportedSchemeError{
		DSN:       d,
		Provider:  provider,
		Supported: append([]string(nil), supported...),
	}
	if d != nil {
		e.Scheme = d.Scheme
	}
	return e
}
