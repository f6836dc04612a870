package transport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/mailbridge/pkg/mailer"
)

// SendFunc performs the provider call and returns the provider's message id, if any.
type SendFunc func(ctx context.Context, email *mailer.Email) (messageID string, err error)

// Base carries the collaborators every transport shares and wraps each delivery
// with validation, events and logging. Embed it in concrete transports.
type Base struct {
	logger     *slog.Logger
	dispatcher Dispatcher
}

// NewBase creates a Base from resolved options.
func NewBase(o Options) Base {
	if o.Logger == nil {
		o = NewOptions(WithDispatcher(o.Dispatcher))
	}
	return Base{logger: o.Logger, dispatcher: o.Dispatcher}
}

// Logger returns the transport's logger.
func (b Base) Logger() *slog.Logger {
	return b.logger
}

// Dispatcher returns the transport's event dispatcher, possibly nil.
func (b Base) Dispatcher() Dispatcher {
	return b.dispatcher
}

// Deliver validates email, dispatches EventSending, runs send and reports the outcome.
// name identifies the transport in logs and events.
func (b Base) Deliver(ctx context.Context, name string, email *mailer.Email, send SendFunc) error {
	if email == nil {
		return mailer.ErrNoContent
	}
	if err := email.Validate(); err != nil {
		return err
	}

	log := b.logger.With(slog.String("transport", name))

	if err := b.dispatch(ctx, Event{Kind: EventSending, Email: email, Transport: name}); err != nil {
		log.WarnContext(ctx, "email rejected by listener", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}

	start := time.Now()
	id, err := send(ctx, email)
	elapsed := time.Since(start)

	if err != nil {
		log.ErrorContext(ctx, "email delivery failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", elapsed),
		)
		b.notify(ctx, log, Event{Kind: EventFailed, Email: email, Transport: name, Err: err, Duration: elapsed})
		return err
	}

	log.InfoContext(ctx, "email sent",
		slog.String("message_id", id),
		slog.Int("recipients", len(email.Recipients())),
		slog.Duration("duration", elapsed),
	)
	b.notify(ctx, log, Event{Kind: EventSent, Email: email, Transport: name, MessageID: id, Duration: elapsed})

	return nil
}

func (b Base) dispatch(ctx context.Context, e Event) error {
	if b.dispatcher == nil {
		return nil
	}
	return b.dispatcher.Dispatch(ctx, e)
}

// notify dispatches a post-delivery event; failures are only logged.
func (b Base) notify(ctx context.Context, log *slog.Logger, e Event) {
	if err := b.dispatch(ctx, e); err != nil {
		log.WarnContext(ctx, "event listener failed",
			slog.String("event", string(e.Kind)),
			slog.String("error", err.Error()),
		)
	}
}
