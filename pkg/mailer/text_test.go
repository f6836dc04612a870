package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{name: "paragraphs", html: "<p>Hello</p><p>World</p>", want: "Hello\nWorld"},
		{name: "line break", html: "Line one<br>Line two", want: "Line one\nLine two"},
		{name: "entities", html: "<p>Tom &amp; Jerry</p>", want: "Tom & Jerry"},
		{name: "strips scripts", html: "<p>Hi</p><script>alert(1)</script>", want: "Hi"},
		{name: "empty", html: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, PlainText(tt.html))
		})
	}
}
