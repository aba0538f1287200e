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
		metadata map[string]any
		body     string
	}{
		{
			name:     "with frontmatter",
			content:  "---\nSubject: Welcome Email\nAuthor: System\n---\n# Hello World\n\nThis is the email body.\n",
			metadata: map[string]any{"Subject": "Welcome Email", "Author": "System"},
			body:     "# Hello World\n\nThis is the email body.\n",
		},
		{
			name:     "without frontmatter",
			content:  "# Hello World\n\nThis is just plain markdown.",
			metadata: map[string]any{},
			body:     "# Hello World\n\nThis is just plain markdown.",
		},
		{
			name:     "empty frontmatter",
			content:  "---\n---\nBody content here.",
			metadata: map[string]any{},
			body:     "Body content here.",
		},
		{
			name:     "whitespace frontmatter",
			content:  "---\n\n---\nBody content.",
			metadata: map[string]any{},
			body:     "Body content.",
		},
		{
			name:     "windows line endings",
			content:  "---\r\nSubject: Test\r\n---\r\nBody",
			metadata: map[string]any{"Subject": "Test"},
			body:     "Body",
		},
		{
			name:     "dashes inside a value do not close the block",
			content:  "---\nSubject: \"Reset --- now\"\n---\nBody",
			metadata: map[string]any{"Subject": "Reset --- now"},
			body:     "Body",
		},
		{
			name:     "horizontal rule in body is kept",
			content:  "---\nSubject: Test\n---\nAbove\n\n---\n\nBelow",
			metadata: map[string]any{"Subject": "Test"},
			body:     "Above\n\n---\n\nBelow",
		},
		{
			name:     "empty body",
			content:  "---\nSubject: Test\n---",
			metadata: map[string]any{"Subject": "Test"},
			body:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := ParseTemplate([]byte(tt.content))
			require.NoError(t, err)
			require.Equal(t, tt.metadata, tmpl.Metadata)
			require.Equal(t, tt.body, tmpl.Body)
		})
	}
}

func TestParseTemplate_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "missing closing delimiter", content: "---\nSubject: Test\nBody without closing delimiter"},
		{name: "no content after opening", content: "---"},
		{name: "invalid yaml", content: "---\nSubject: Test\nInvalidYAML: [unclosed\n---\nBody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := ParseTemplate([]byte(tt.content))
			require.ErrorIs(t, err, ErrInvalidFrontmatter)
			require.Nil(t, tmpl)
		})
	}
}
