package transport

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/mailbridge/pkg/mailer"
)

// Metrics holds the Prometheus collectors shared by instrumented transports.
type Metrics struct {
	messages *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates and registers the delivery collectors on reg.
// Registering twice on the same registerer returns the existing collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	messages := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mailbridge",
		Name:      "messages_total",
		Help:      "Emails handed to a transport, by outcome.",
	}, []string{"transport", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mailbridge",
		Name:      "send_duration_seconds",
		Help:      "Time spent in a transport's Send.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"transport"})

	var err error
	if messages, err = register(reg, messages); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}

	return &Metrics{messages: messages, duration: duration}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// InstrumentOption configures Instrument.
type InstrumentOption func(*instrumented)

// WithMetrics records a counter and latency histogram per send.
func WithMetrics(m *Metrics) InstrumentOption {
	return func(i *instrumented) {
		i.metrics = m
	}
}

// WithTracer opens a span per send.
func WithTracer(t trace.Tracer) InstrumentOption {
	return func(i *instrumented) {
		i.tracer = t
	}
}

type instrumented struct {
	next    Transport
	metrics *Metrics
	tracer  trace.Tracer
	name    string
}

// Instrument wraps t with metrics and tracing. name labels the series and spans,
// typically the DSN scheme. Without options t is returned unchanged.
func Instrument(name string, t Transport, opts ...InstrumentOption) Transport {
	i := &instrumented{next: t, name: name}
	for _, opt := range opts {
		opt(i)
	}
	if i.metrics == nil && i.tracer == nil {
		return t
	}
	return i
}

func (i *instrumented) Send(ctx context.Context, email *mailer.Email) error {
	var span trace.Span
	if i.tracer != nil {
		ctx, span = i.tracer.Start(ctx, "mailbridge.send",
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("mailbridge.transport", i.name),
				attribute.Int("mailbridge.recipients", recipientCount(email)),
			),
		)
		defer span.End()
	}

	start := time.Now()
	err := i.next.Send(ctx, email)

	status := "sent"
	if err != nil {
		status = "failed"
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}

	if i.metrics != nil {
		i.metrics.messages.WithLabelValues(i.name, status).Inc()
		i.metrics.duration.WithLabelValues(i.name).Observe(time.Since(start).Seconds())
	}

	return err
}

func (i *instrumented) String() string {
	return i.next.String()
}

// Unwrap returns the instrumented transport.
func (i *instrumented) Unwrap() Transport {
	return i.next
}

func recipientCount(email *mailer.Email) int {
	if email == nil {
		return 0
	}
	return len(email.Recipients())
}
