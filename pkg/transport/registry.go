package transport

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/mailbridge/pkg/dsn"
)

// Registry resolves DSNs to transports through the first factory supporting the scheme.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	factories []Factory
}

// NewRegistry creates a registry. Earlier factories win when schemes overlap.
func NewRegistry(factories ...Factory) *Registry {
	return &Registry{factories: slices.Clone(factories)}
}

// FromString parses raw and builds the matching transport.
func (r *Registry) FromString(raw string) (Transport, error) {
	d, err := dsn.Parse(raw)
	if err != nil {
		return nil, err
	}
	return r.FromDSN(d)
}

// FromDSN builds the transport for d.
func (r *Registry) FromDSN(d *dsn.DSN) (Transport, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil dsn", dsn.ErrInvalidDSN)
	}
	for _, f := range r.factories {
		if f.Supports(d) {
			t, err := f.Create(d)
			if err != nil {
				return nil, fmt.Errorf("transport: create %s: %w", d.Scheme, err)
			}
			return t, nil
		}
	}
	return nil, NewUnsupportedSchemeError(d, "", r.Schemes())
}

// Schemes lists every scheme known to the registry, sorted and deduplicated.
func (r *Registry) Schemes() []string {
	var all []string
	for _, f := range r.factories {
		all = append(all, f.Schemes()...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}
