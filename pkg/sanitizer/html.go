// Package sanitizer strips markup from caller-supplied strings before they are
// interpolated into email templates.
package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once

	lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")
)

func policy() *bluemonday.Policy {
	initOnce.Do(func() {
		// StrictPolicy strips ALL HTML and drops script/style content
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// StripHTML removes every tag and returns unescaped plain text.
// Entities are decoded so the result is safe to hand to an escaping renderer
// without double-encoding.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(policy().Sanitize(s)))
}

// StripLine is StripHTML for single-line values such as names, titles and
// subjects: line breaks become spaces.
func StripLine(s string) string {
	return strings.TrimSpace(lineBreaks.Replace(StripHTML(s)))
}
