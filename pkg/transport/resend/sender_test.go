package resend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailbridge/pkg/dsn"
	"github.com/dmitrymomot/mailbridge/pkg/mailer"
	"github.com/dmitrymomot/mailbridge/pkg/transport"
	"github.com/dmitrymomot/mailbridge/pkg/transport/resend"
)

func TestTransport_Send(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"re-msg-1"}`))
	}))
	t.Cleanup(srv.Close)

	raw := "resend+api://re_test@" + strings.TrimPrefix(srv.URL, "https://") + "?from=team@example.com&from_name=Team"
	tr, err := resend.NewFactory(transport.WithHTTPClient(srv.Client())).Create(dsn.MustParse(raw))
	require.NoError(t, err)

	err = tr.Send(context.Background(), &mailer.Email{
		To:      []string{"user@example.com"},
		Subject: "Hi",
		HTML:    "<p>Hi</p>",
		Tags:    mailer.Tags{"campaign": "spring", "welcome": struct{}{}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Team <team@example.com>", got["from"])
	assert.Equal(t, []any{"user@example.com"}, got["to"])
	assert.Equal(t, "Hi", got["subject"])
	assert.ElementsMatch(t, []any{
		map[string]any{"name": "campaign", "value": "spring"},
		map[string]any{"name": "welcome", "value": "true"},
	}, got["tags"])
}

func TestTransport_Send_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid from"}`))
	}))
	t.Cleanup(srv.Close)

	tr, err := resend.New(resend.Config{APIKey: "re_test", Endpoint: srv.URL}, transport.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	err = tr.Send(context.Background(), &mailer.Email{
		From: "bad", To: []string{"user@example.com"}, Subject: "x", Text: "x",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resend: failed to send email")
}

func TestTransport_Send_RequiresSender(t *testing.T) {
	t.Parallel()

	tr, err := resend.New(resend.Config{APIKey: "re_test"})
	require.NoError(t, err)

	err = tr.Send(context.Background(), &mailer.Email{To: []string{"user@example.com"}, Text: "x"})
	require.ErrorIs(t, err, mailer.ErrNoSender)
}

func TestFactory(t *testing.T) {
	t.Parallel()

	f := resend.NewFactory()
	assert.Equal(t, []string{"resend", "resend+api"}, f.Schemes())
	assert.True(t, f.Supports(dsn.MustParse("resend://key@default")))

	tr, err := f.Create(dsn.MustParse("resend://key@default"))
	require.NoError(t, err)
	assert.Equal(t, "resend+api://api.resend.com", tr.String())

	tr, err = f.Create(dsn.MustParse("resend://key@[::1]:8443"))
	require.NoError(t, err)
	assert.Equal(t, "resend+api://[::1]:8443", tr.String())

	_, err = f.Create(dsn.MustParse("ses://key@default"))
	require.ErrorIs(t, err, transport.ErrUnsupportedScheme)

	assert.False(t, f.Supports(nil))
	_, err = f.Create(nil)
	require.ErrorIs(t, err, transport.ErrUnsupportedScheme)
}
