package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		wantMeta map[string]any
		wantBody string
	}{
		{
			name:     "with frontmatter",
			content:  "---\nSubject: Welcome\nPriority: 2\n---\nHello",
			wantMeta: map[string]any{"Subject": "Welcome", "Priority": 2},
			wantBody: "Hello",
		},
		{
			name:     "without frontmatter",
			content:  "# Just markdown",
			wantMeta: map[string]any{},
			wantBody: "# Just markdown",
		},
		{
			name:     "empty frontmatter",
			content:  "---\n\n---\nBody",
			wantMeta: map[string]any{},
			wantBody: "Body",
		},
		{
			name:     "windows line endings",
			content:  "---\r\nSubject: Hi\r\n---\r\nBody",
			wantMeta: map[string]any{"Subject": "Hi"},
			wantBody: "Body",
		},
		{
			name:     "empty body",
			content:  "---\nSubject: Hi\n---\n",
			wantMeta: map[string]any{"Subject": "Hi"},
			wantBody: "",
		},
		{
			name:     "empty content",
			content:  "",
			wantMeta: map[string]any{},
			wantBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseTemplate([]byte(tt.content))
			require.NoError(t, err)
			require.Equal(t, tt.wantMeta, got.Metadata)
			require.Equal(t, tt.wantBody, got.Body)
		})
	}
}

func TestParseTemplate_Errors(t *testing.T) {
	t.Parallel()

	for name, content := range map[string]string{
		"missing closing delimiter": "---\nSubject: Hi\nBody",
		"nothing after opening":     "---\n",
		"invalid yaml":              "---\nSubject: [unclosed\n---\nBody",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseTemplate([]byte(content))
			require.ErrorIs(t, err, ErrInvalidFrontmatter)
		})
	}
}
