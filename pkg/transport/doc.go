// Package transport resolves mailer DSNs into transports.
//
// A Transport is a mailer.Sender that also describes its endpoint. Factories
// build transports for a fixed set of schemes; a Registry asks each factory in
// turn and reports *UnsupportedSchemeError, listing every known scheme, when
// none matches:
//
//	reg := transport.NewRegistry(
//		ses.NewFactory(ses.WithTransportOptions(transport.WithLogger(log))),
//		smtp.NewFactory(transport.WithLogger(log)),
//		transport.NewDevFactory(),
//	)
//	tr, err := reg.FromString(os.Getenv("MAILER_DSN"))
//	if errors.Is(err, transport.ErrUnsupportedScheme) {
//		// configuration error
//	}
//
// Concrete transports embed Base, which validates each message, dispatches
// EventSending (a Dispatcher may veto delivery), performs the send, then
// dispatches EventSent or EventFailed and logs the outcome.
//
// BuildMIME renders a mailer.Email as an RFC 5322 message for transports that
// submit raw content. Instrument adds Prometheus metrics and OpenTelemetry
// spans around any transport.
package transport
