package ses

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/dmitrymomot/mailbridge/pkg/mailer"
	"github.com/dmitrymomot/mailbridge/pkg/transport"
)

// APIClientTransport sends through an SES v2 SDK client.
type APIClientTransport struct {
	transport.Base
	client   Client
	region   string
	endpoint string
}

// NewAPIClientTransport wraps client. region and endpoint are used for String only.
func NewAPIClientTransport(client Client, region, endpoint string, opts ...transport.Option) *APIClientTransport {
	return &APIClientTransport{
		Base:     transport.NewBase(transport.NewOptions(opts...)),
		client:   client,
		region:   region,
		endpoint: endpoint,
	}
}

// Client returns the underlying SES client.
func (t *APIClientTransport) Client() Client { return t.client }

// Region returns the client's region.
func (t *APIClientTransport) Region() string { return t.region }

// Send implements mailer.Sender.
func (t *APIClientTransport) Send(ctx context.Context, email *mailer.Email) error {
	return t.Deliver(ctx, t.String(), email, t.send)
}

func (t *APIClientTransport) send(ctx context.Context, email *mailer.Email) (string, error) {
	input, err := newSendEmailInput(newEnvelope(email))
	if err != nil {
		return "", err
	}

	out, err := t.client.SendEmail(ctx, input)
	if err != nil {
		return "", classify(err)
	}
	return aws.ToString(out.MessageId), nil
}

func (t *APIClientTransport) String() string {
	if t.endpoint != "" {
		return SchemeAPI + "://" + strings.TrimPrefix(t.endpoint, "https://")
	}
	return SchemeAPI + "://email." + t.region + ".amazonaws.com"
}

func newSendEmailInput(env envelope) (*sesv2.SendEmailInput, error) {
	email := env.email
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(email.From),
		Destination: &types.Destination{
			ToAddresses:  email.To,
			CcAddresses:  email.CC,
			BccAddresses: email.BCC,
		},
		ReplyToAddresses: env.replyTo(),
	}
	if env.configurationSet != "" {
		input.ConfigurationSetName = aws.String(env.configurationSet)
	}
	if env.sourceArn != "" {
		input.FromEmailAddressIdentityArn = aws.String(env.sourceArn)
	}
	for _, tag := range env.tags {
		input.EmailTags = append(input.EmailTags, types.MessageTag{
			Name:  aws.String(tag[0]),
			Value: aws.String(tag[1]),
		})
	}

	if env.needsRaw() {
		raw, err := transport.BuildMIME(email)
		if err != nil {
			return nil, err
		}
		input.Content = &types.EmailContent{Raw: &types.RawMessage{Data: raw}}
		return input, nil
	}

	body := &types.Body{}
	if email.HTML != "" {
		body.Html = content(email.HTML)
	}
	if text := env.text(); text != "" {
		body.Text = content(text)
	}
	input.Content = &types.EmailContent{Simple: &types.Message{
		Subject: content(email.Subject),
		Body:    body,
	}}
	return input, nil
}

func content(s string) *types.Content {
	return &types.Content{Data: aws.String(s), Charset: aws.String(charset)}
}
