package transport

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/mailbridge/pkg/mailer"
)

// EventKind identifies a point in a delivery's lifecycle.
type EventKind string

const (
	// EventSending fires before delivery. A dispatcher error vetoes the send.
	EventSending EventKind = "sending"
	// EventSent fires after the provider accepted the message.
	EventSent EventKind = "sent"
	// EventFailed fires when delivery returned an error.
	EventFailed EventKind = "failed"
)

// Event describes one delivery step.
type Event struct {
	Err       error
	Email     *mailer.Email
	Kind      EventKind
	Transport string
	MessageID string
	Duration  time.Duration
}

// Dispatcher receives delivery events. Only errors returned for EventSending
// affect delivery; errors for other kinds are logged and ignored.
type Dispatcher interface {
	Dispatch(ctx context.Context, e Event) error
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ctx context.Context, e Event) error

// Dispatch calls f(ctx, e).
func (f DispatcherFunc) Dispatch(ctx context.Context, e Event) error {
	return f(ctx, e)
}

// Dispatchers fans an event out to several dispatchers in order.
type Dispatchers []Dispatcher

// Dispatch calls every dispatcher and joins their errors.
func (ds Dispatchers) Dispatch(ctx context.Context, e Event) error {
	var errs []error
	for _, d := range ds {
		if d == nil {
			continue
		}
		if err := d.Dispatch(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
