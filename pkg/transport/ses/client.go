package ses

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/smithy-go"
)

// Client is the part of the SES v2 SDK client the API transport needs.
type Client interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// ClientConfig is handed to a ClientProvider when the ses+api transport is built.
type ClientConfig struct {
	HTTPClient      *http.Client // nil keeps the SDK default
	Region          string       // always set
	Endpoint        string       // "https://host[:port]"; empty keeps the regional endpoint
	AccessKeyID     string
	AccessKeySecret string
}

// ClientProvider reports whether a native SES client can be built and builds it.
type ClientProvider interface {
	Available() bool
	NewClient(cfg ClientConfig) (Client, error)
}

// SDKClientProvider builds clients from aws-sdk-go-v2's sesv2 package.
type SDKClientProvider struct{}

// Available always reports true.
func (SDKClientProvider) Available() bool { return true }

// NewClient creates a sesv2 client with static credentials.
// Empty credentials leave the client unsigned.
func (SDKClientProvider) NewClient(cfg ClientConfig) (Client, error) {
	if cfg.Region == "" {
		return nil, errors.New("ses: client region is required")
	}

	opts := sesv2.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.AccessKeySecret, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	if cfg.HTTPClient != nil {
		opts.HTTPClient = cfg.HTTPClient
	}

	return sesv2.New(opts), nil
}

// NoClientProvider never offers a native client.
type NoClientProvider struct{}

// Available always reports false.
func (NoClientProvider) Available() bool { return false }

// NewClient always fails with ErrClientUnavailable.
func (NoClientProvider) NewClient(ClientConfig) (Client, error) {
	return nil, ErrClientUnavailable
}

// classify turns an SDK error into *APIError when the service answered.
func classify(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("ses: send email: %w", err)
	}

	out := &APIError{
		Err:     err,
		Code:    apiErr.ErrorCode(),
		Message: apiErr.ErrorMessage(),
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		out.StatusCode = respErr.HTTPStatusCode()
	}
	return out
}
