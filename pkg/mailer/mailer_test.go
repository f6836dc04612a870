package mailer

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSender is a mock implementation of Sender interface.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, email *Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func TestMailer_Send_Success(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	m := New(sender, NewRenderer(testFS()), Config{
		DefaultFrom:   "team@example.com",
		DefaultLayout: "base.html",
	})

	sender.On("Send", mock.Anything, mock.MatchedBy(func(email *Email) bool {
		return email.To[0] == "alice@example.com" &&
			email.From == "team@example.com" &&
			email.Subject == "Welcome Alice" &&
			email.HTML != "" &&
			email.Text != ""
	})).Return(nil)

	err := m.Send(context.Background(), SendParams{
		To:       "alice@example.com",
		Template: "welcome.md",
		Data:     map[string]string{"Name": "Alice"},
	})

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestMailer_Send_SubjectResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   string
		template string
		want     string
	}{
		{name: "params override", params: "Override", template: "---\nSubject: Tmpl\n---\nBody", want: "Override"},
		{name: "template metadata", template: "---\nSubject: Tmpl\n---\nBody", want: "Tmpl"},
		{name: "config fallback", template: "Body", want: "Fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fsys := fstest.MapFS{"t.md": &fstest.MapFile{Data: []byte(tt.template)}}
			sender := &MockSender{}
			m := New(sender, NewRenderer(fsys), Config{
				DefaultFrom:     "team@example.com",
				FallbackSubject: "Fallback",
			})

			sender.On("Send", mock.Anything, mock.MatchedBy(func(email *Email) bool {
				return email.Subject == tt.want
			})).Return(nil)

			err := m.Send(context.Background(), SendParams{To: "u@example.com", Template: "t.md", Subject: tt.params})
			require.NoError(t, err)
			sender.AssertExpectations(t)
		})
	}
}

func TestMailer_Send_Errors(t *testing.T) {
	t.Parallel()

	t.Run("no recipient", func(t *testing.T) {
		t.Parallel()

		sender := &MockSender{}
		m := New(sender, NewRenderer(testFS()), Config{})

		err := m.Send(context.Background(), SendParams{Template: "welcome.md"})
		require.ErrorIs(t, err, ErrNoRecipient)
		sender.AssertNotCalled(t, "Send")
	})

	t.Run("render failure", func(t *testing.T) {
		t.Parallel()

		sender := &MockSender{}
		m := New(sender, NewRenderer(fstest.MapFS{}), Config{})

		err := m.Send(context.Background(), SendParams{To: "u@example.com", Template: "nope.md"})
		require.ErrorIs(t, err, ErrRenderFailed)
		require.ErrorIs(t, err, ErrTemplateNotFound)
		sender.AssertNotCalled(t, "Send")
	})

	t.Run("bad subject template", func(t *testing.T) {
		t.Parallel()

		sender := &MockSender{}
		m := New(sender, NewRenderer(testFS()), Config{})

		err := m.Send(context.Background(), SendParams{
			To:       "u@example.com",
			Template: "welcome.md",
			Subject:  "Broken {{.Unclosed",
		})
		require.ErrorIs(t, err, ErrRenderFailed)
		sender.AssertNotCalled(t, "Send")
	})

	t.Run("no renderer", func(t *testing.T) {
		t.Parallel()

		m := New(&MockSender{}, nil, Config{})

		err := m.Send(context.Background(), SendParams{To: "u@example.com", Template: "welcome.md"})
		require.ErrorIs(t, err, ErrRenderFailed)
	})
}

func TestMailer_SendRaw(t *testing.T) {
	t.Parallel()

	t.Run("fills default sender", func(t *testing.T) {
		t.Parallel()

		sender := &MockSender{}
		m := New(sender, nil, Config{DefaultFrom: "team@example.com"})
		email := &Email{To: []string{"u@example.com"}, Subject: "Hi", Text: "Hello"}

		sender.On("Send", mock.Anything, email).Return(nil)

		require.NoError(t, m.SendRaw(context.Background(), email))
		require.Equal(t, "team@example.com", email.From)
		sender.AssertExpectations(t)
	})

	t.Run("keeps explicit sender", func(t *testing.T) {
		t.Parallel()

		sender := &MockSender{}
		m := New(sender, nil, Config{DefaultFrom: "team@example.com"})
		email := &Email{From: "me@example.com", To: []string{"u@example.com"}, Subject: "Hi", HTML: "<p>Hi</p>"}

		sender.On("Send", mock.Anything, email).Return(nil)

		require.NoError(t, m.SendRaw(context.Background(), email))
		require.Equal(t, "me@example.com", email.From)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		sender := &MockSender{}
		m := New(sender, nil, Config{})

		require.ErrorIs(t, m.SendRaw(context.Background(), &Email{Subject: "x", Text: "y"}), ErrNoRecipient)
		require.ErrorIs(t, m.SendRaw(context.Background(), &Email{To: []string{"u@example.com"}, Text: "y"}), ErrNoSubject)
		require.ErrorIs(t, m.SendRaw(context.Background(), &Email{To: []string{"u@example.com"}, Subject: "x"}), ErrNoContent)
		require.ErrorIs(t, m.SendRaw(context.Background(), &Email{To: []string{"u@example.com"}, Subject: "x", Text: "y"}), ErrNoSender)
		sender.AssertNotCalled(t, "Send")
	})

	t.Run("sender failure", func(t *testing.T) {
		t.Parallel()

		sender := &MockSender{}
		m := New(sender, nil, Config{DefaultFrom: "team@example.com"})
		senderErr := errors.New("network error")

		sender.On("Send", mock.Anything, mock.Anything).Return(senderErr)

		err := m.SendRaw(context.Background(), &Email{To: []string{"u@example.com"}, Subject: "x", Text: "y"})
		require.ErrorIs(t, err, ErrSendFailed)
		require.ErrorIs(t, err, senderErr)
	})
}
