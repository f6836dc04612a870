package dsn

import "errors"

var (
	// ErrInvalidDSN is the parent of every parse error.
	ErrInvalidDSN = errors.New("dsn: invalid connection string")

	// ErrMissingScheme indicates the DSN has no scheme part.
	ErrMissingScheme = errors.New("dsn: scheme is required")

	// ErrMissingHost indicates the DSN has no host part.
	ErrMissingHost = errors.New("dsn: host is required")

	// ErrInvalidPort indicates the port is not a number in 1..65535.
	ErrInvalidPort = errors.New("dsn: invalid port")
)
