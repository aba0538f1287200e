package mailer

import (
	"regexp"
	"strings"
)

var (
	styleBlockRe  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	scriptBlockRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	tagRe         = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// HTMLToText derives a plain text alternative from an HTML body.
// Style and script blocks are dropped with their content, remaining tags are
// stripped and whitespace is collapsed. Malformed markup is handled best-effort.
func HTMLToText(html string) string {
	text := styleBlockRe.ReplaceAllString(html, "")
	text = scriptBlockRe.ReplaceAllString(text, "")
	text = tagRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
