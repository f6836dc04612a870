// Package resend delivers email through the Resend API.
package resend

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/mailbridge/pkg/mailer"
	"github.com/dmitrymomot/mailbridge/pkg/transport"
)

// Transport implements transport.Transport using the Resend API.
type Transport struct {
	transport.Base
	client *resend.Client
	config Config
}

// New creates a Resend transport.
func New(cfg Config, opts ...transport.Option) (*Transport, error) {
	o := transport.NewOptions(opts...)
	client := resend.NewCustomClient(o.HTTPClient, cfg.APIKey)

	if cfg.Endpoint != "" {
		u, err := url.Parse(strings.TrimSuffix(cfg.Endpoint, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("resend: invalid endpoint %q: %w", cfg.Endpoint, err)
		}
		client.BaseURL = u
	}

	return &Transport{
		Base:   transport.NewBase(o),
		client: client,
		config: cfg,
	}, nil
}

// Send implements mailer.Sender. An empty From falls back to the configured sender.
func (t *Transport) Send(ctx context.Context, email *mailer.Email) error {
	if email != nil && email.From == "" && t.config.SenderEmail != "" {
		withFrom := *email
		withFrom.From = mailer.Recipient(t.config.SenderName, t.config.SenderEmail)
		email = &withFrom
	}
	return t.Deliver(ctx, t.String(), email, t.send)
}

func (t *Transport) send(ctx context.Context, email *mailer.Email) (string, error) {
	req := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Cc:      email.CC,
		Bcc:     email.BCC,
		Headers: email.Headers,
	}

	if len(email.Attachments) > 0 {
		req.Attachments = convertAttachments(email.Attachments)
	}
	if len(email.Tags) > 0 {
		req.Tags = convertTags(email.Tags)
	}

	resp, err := t.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return "", fmt.Errorf("resend: failed to send email: %w", err)
	}

	return resp.Id, nil
}

func (t *Transport) String() string {
	return "resend+api://" + t.client.BaseURL.Host
}

func convertAttachments(attachments []mailer.Attachment) []*resend.Attachment {
	result := make([]*resend.Attachment, len(attachments))
	for i, a := range attachments {
		result[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
			ContentId:   a.ContentID,
		}
	}
	return result
}

func convertTags(tags mailer.Tags) []resend.Tag {
	result := make([]resend.Tag, 0, len(tags))
	for name, value := range tags {
		result = append(result, resend.Tag{
			Name:  name,
			Value: mailer.TagValue(value),
		})
	}
	return result
}
