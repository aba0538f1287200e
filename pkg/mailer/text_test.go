package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTMLToText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips nested tags",
			input:    "<p>Hello <strong>World</strong></p>",
			expected: "Hello World",
		},
		{
			name:     "drops style blocks with content",
			input:    "<style>body { color: red; }</style><p>Body</p>",
			expected: "Body",
		},
		{
			name:     "drops script blocks case-insensitively",
			input:    "<SCRIPT type=\"text/javascript\">alert('x')</SCRIPT><div>Safe</div>",
			expected: "Safe",
		},
		{
			name:     "drops multiline style blocks",
			input:    "<Style>\n.a {}\n.b {}\n</sTyle>\n<h1>Title</h1>",
			expected: "Title",
		},
		{
			name:     "collapses whitespace",
			input:    "<p>  Hello\n\n\t  there  </p>\n<p>friend</p>",
			expected: "Hello there friend",
		},
		{
			name:     "inline tags do not add spaces",
			input:    "<p>Hel<em>lo</em></p>",
			expected: "Hello",
		},
		{
			name:     "plain text unchanged",
			input:    "already plain",
			expected: "already plain",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "unclosed tag stripped best-effort",
			input:    "Hello <b>World</b> <i",
			expected: "Hello World <i",
		},
		{
			name:     "full document",
			input:    "<!DOCTYPE html>\n<html>\n<head>\n<title>Hi</title>\n<style>p{}</style>\n</head>\n<body><p>Welcome</p></body>\n</html>",
			expected: "Hi Welcome",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, HTMLToText(tt.input))
		})
	}
}
