package transport

import (
	"bytes"
	"fmt"
	"io"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/dmitrymomot/mailbridge/pkg/mailer"
)

// NewMessage converts email into a gomail message.
// Bcc is set as a header for the SMTP envelope; gomail never writes it out.
// A Message-ID is generated unless the email carries one.
func NewMessage(email *mailer.Email) *gomail.Message {
	m := gomail.NewMessage()

	m.SetHeader("From", email.From)
	if len(email.To) > 0 {
		m.SetHeader("To", email.To...)
	}
	if len(email.CC) > 0 {
		m.SetHeader("Cc", email.CC...)
	}
	if len(email.BCC) > 0 {
		m.SetHeader("Bcc", email.BCC...)
	}
	if email.ReplyTo != "" {
		m.SetHeader("Reply-To", email.ReplyTo)
	}
	m.SetHeader("Subject", email.Subject)

	for k, v := range email.Headers {
		m.SetHeader(k, v)
	}
	if _, ok := email.Header("Message-ID"); !ok {
		m.SetHeader("Message-ID", messageID(email.From))
	}

	switch {
	case email.Text != "" && email.HTML != "":
		m.SetBody("text/plain", email.Text)
		m.AddAlternative("text/html", email.HTML)
	case email.HTML != "":
		m.SetBody("text/html", email.HTML)
	default:
		m.SetBody("text/plain", email.Text)
	}

	for _, a := range email.Attachments {
		settings := []gomail.FileSetting{gomail.SetCopyFunc(copyBytes(a.Content))}
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {a.ContentType},
			}))
		}
		if a.ContentID != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-ID": {"<" + strings.Trim(a.ContentID, "<>") + ">"},
			}))
			m.Embed(a.Filename, settings...)
			continue
		}
		m.Attach(a.Filename, settings...)
	}

	return m
}

// BuildMIME renders email as an RFC 5322 message.
func BuildMIME(email *mailer.Email) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := NewMessage(email).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("transport: build mime: %w", err)
	}
	return buf.Bytes(), nil
}

func copyBytes(b []byte) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := w.Write(b)
		return err
	}
}

func messageID(from string) string {
	domain := "localhost"
	if addr, err := mail.ParseAddress(from); err == nil {
		if at := strings.LastIndex(addr.Address, "@"); at >= 0 {
			domain = addr.Address[at+1:]
		}
	}
	return "<" + uuid.NewString() + "@" + domain + ">"
}
