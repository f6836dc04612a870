package ses

import (
	"maps"
	"slices"
	"strings"

	"github.com/dmitrymomot/mailbridge/pkg/mailer"
)

// Headers lifted out of the message into request fields.
const (
	HeaderConfigurationSet = "X-SES-CONFIGURATION-SET"
	HeaderSourceArn        = "X-SES-SOURCE-ARN"
)

const charset = "UTF-8"

// envelope is the provider-neutral form of a SendEmail request.
type envelope struct {
	email            *mailer.Email // copy without the lifted headers
	configurationSet string
	sourceArn        string
	tags             [][2]string // sorted by name
}

// newEnvelope splits SES control headers and tags off email.
func newEnvelope(email *mailer.Email) envelope {
	e := envelope{email: email}

	if len(email.Headers) > 0 {
		rest := make(map[string]string, len(email.Headers))
		for k, v := range email.Headers {
			switch {
			case strings.EqualFold(k, HeaderConfigurationSet):
				e.configurationSet = v
			case strings.EqualFold(k, HeaderSourceArn):
				e.sourceArn = v
			default:
				rest[k] = v
			}
		}
		cp := *email
		cp.Headers = rest
		e.email = &cp
	}

	for _, name := range slices.Sorted(maps.Keys(email.Tags)) {
		e.tags = append(e.tags, [2]string{name, mailer.TagValue(email.Tags[name])})
	}

	return e
}

// needsRaw reports whether the message cannot be expressed as simple content.
func (e envelope) needsRaw() bool {
	return len(e.email.Attachments) > 0 || len(e.email.Headers) > 0
}

// text returns the plain-text part, derived from HTML when missing.
func (e envelope) text() string {
	if e.email.Text != "" || e.email.HTML == "" {
		return e.email.Text
	}
	return mailer.PlainText(e.email.HTML)
}

func (e envelope) replyTo() []string {
	if e.email.ReplyTo == "" {
		return nil
	}
	return []string{e.email.ReplyTo}
}
