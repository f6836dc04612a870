package ses

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/mailbridge/pkg/mailer"
)

// ErrClientUnavailable is returned by NoClientProvider.NewClient.
var ErrClientUnavailable = errors.New("ses: native client unavailable")

// APIError is a non-success answer from the SES API.
type APIError struct {
	Err        error // underlying SDK error, if any
	Code       string
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("ses: api error %d %s: %s", e.StatusCode, e.Code, e.Message)
	case e.Message != "":
		return fmt.Sprintf("ses: api error %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("ses: api error %d", e.StatusCode)
	}
}

// Unwrap exposes mailer.ErrSendFailed and the underlying error.
func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{mailer.ErrSendFailed}
	}
	return []error{mailer.ErrSendFailed, e.Err}
}
