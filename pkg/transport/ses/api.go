package ses

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"

	"github.com/dmitrymomot/mailbridge/pkg/mailer"
	"github.com/dmitrymomot/mailbridge/pkg/transport"
)

const (
	sendEmailPath   = "/v2/email/outbound-emails"
	signingService  = "ses"
	maxResponseBody = 1 << 20
)

// APITransport calls the SES v2 SendEmail operation with a self-signed request.
// Messages go out as simple content unless they carry attachments or custom headers.
type APITransport struct {
	signedClient
}

// NewAPITransport creates the ses+api transport used when no native client is available.
func NewAPITransport(cfg Config, opts ...transport.Option) *APITransport {
	return &APITransport{newSignedClient(SchemeAPI, cfg, false, opts)}
}

// HTTPTransport calls the SES v2 SendEmail operation with raw MIME content.
// String always reports the ses+https scheme, also for transports built from ses:// DSNs.
type HTTPTransport struct {
	signedClient
}

// NewHTTPTransport creates the ses+https transport.
func NewHTTPTransport(cfg Config, opts ...transport.Option) *HTTPTransport {
	return &HTTPTransport{newSignedClient(SchemeHTTPS, cfg, true, opts)}
}

// signedClient posts SigV4-signed SendEmail requests over plain HTTP.
type signedClient struct {
	transport.Base
	http   *http.Client
	signer *v4.Signer
	now    func() time.Time
	scheme string
	cfg    Config
	raw    bool
}

func newSignedClient(scheme string, cfg Config, raw bool, opts []transport.Option) signedClient {
	o := transport.NewOptions(opts...)
	return signedClient{
		Base:   transport.NewBase(o),
		http:   o.HTTPClient,
		signer: v4.NewSigner(),
		now:    time.Now,
		scheme: scheme,
		cfg:    cfg,
		raw:    raw,
	}
}

// Config returns the construction parameters.
func (c *signedClient) Config() Config { return c.cfg }

// Region returns the configured region, empty when left to DefaultRegion.
func (c *signedClient) Region() string { return c.cfg.Region }

// Host returns the endpoint host override, empty for the regional endpoint.
func (c *signedClient) Host() string { return c.cfg.Host }

// Port returns the endpoint port override, 0 when unset.
func (c *signedClient) Port() int { return c.cfg.Port }

// Send implements mailer.Sender.
func (c *signedClient) Send(ctx context.Context, email *mailer.Email) error {
	return c.Deliver(ctx, c.String(), email, c.send)
}

func (c *signedClient) String() string {
	return c.scheme + "://" + c.cfg.endpointHost()
}

func (c *signedClient) send(ctx context.Context, email *mailer.Email) (string, error) {
	env := newEnvelope(email)
	req, err := newSendEmailRequest(env, c.raw || env.needsRaw())
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("ses: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.endpoint()+sendEmailPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ses: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	sum := sha256.Sum256(body)
	creds := aws.Credentials{AccessKeyID: c.cfg.User, SecretAccessKey: c.cfg.Password}
	if err := c.signer.SignHTTP(ctx, creds, httpReq, hex.EncodeToString(sum[:]), signingService, c.cfg.EffectiveRegion(), c.now()); err != nil {
		return "", fmt.Errorf("ses: sign request: %w", err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ses: send email: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return "", fmt.Errorf("ses: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", parseAPIError(resp, data)
	}

	var out struct {
		MessageID string `json:"MessageId"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("ses: decode response: %w", err)
	}
	return out.MessageID, nil
}

// parseAPIError reads the error code from x-amzn-ErrorType or the body's __type
// and the message from the body.
func parseAPIError(resp *http.Response, body []byte) *APIError {
	var payload struct {
		Type         string `json:"__type"`
		Message      string `json:"message"`
		MessageUpper string `json:"Message"`
	}
	_ = json.Unmarshal(body, &payload)

	code := resp.Header.Get("X-Amzn-ErrorType")
	if code == "" {
		code = payload.Type
	}
	code, _, _ = strings.Cut(code, ":")
	if i := strings.LastIndex(code, "#"); i >= 0 {
		code = code[i+1:]
	}

	msg := payload.Message
	if msg == "" {
		msg = payload.MessageUpper
	}
	if msg == "" && len(body) > 0 && payload.Type == "" {
		msg = strings.TrimSpace(string(body))
	}

	return &APIError{StatusCode: resp.StatusCode, Code: code, Message: msg}
}
