package sanitizer

import "strings"

// markdownSpecial lists the characters that start inline markdown constructs.
const markdownSpecial = "\\`*_[]()#!<>~|&{}"

// EscapeMarkdown backslash-escapes markdown syntax so s renders as literal text
// when interpolated into a markdown template. Characters that only have meaning
// at the start of a line (list, heading and quote markers) are escaped there.
func EscapeMarkdown(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/4)

	lineStart := true
	digits := false
	for _, r := range s {
		switch {
		case r < 0x80 && strings.ContainsRune(markdownSpecial, r):
			b.WriteByte('\\')
		case lineStart && (r == '-' || r == '+' || r == '=' || r == '>'):
			b.WriteByte('\\')
		case digits && (r == '.' || r == ')'):
			// "1." or "1)" opens an ordered list
			b.WriteByte('\\')
		}
		b.WriteRune(r)

		digits = (lineStart || digits) && r >= '0' && r <= '9'
		lineStart = r == '\n'
	}
	return b.String()
}

// MarkdownLine prepares a caller-supplied single-line value for a markdown
// template: markup is stripped, then markdown syntax is escaped.
func MarkdownLine(s string) string {
	return EscapeMarkdown(StripLine(s))
}
