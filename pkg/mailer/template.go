package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// frontmatterDelimiter opens and closes the YAML block, alone on its line.
const frontmatterDelimiter = "---"

// Template is an email template split into frontmatter metadata and markdown body.
type Template struct {
	Metadata map[string]any
	Body     string
}

// ParseTemplate splits template content into YAML frontmatter and markdown body.
// Content without a leading delimiter line is treated as body only.
func ParseTemplate(content []byte) (*Template, error) {
	first, rest, hasRest := cutLine(content)
	if string(first) != frontmatterDelimiter {
		return &Template{Metadata: make(map[string]any), Body: string(content)}, nil
	}
	if !hasRest || len(rest) == 0 {
		return nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	var frontmatter []byte
	for {
		line, next, more := cutLine(rest)
		if string(line) == frontmatterDelimiter {
			rest = next
			break
		}
		if !more {
			return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
		}
		frontmatter = append(frontmatter, line...)
		frontmatter = append(frontmatter, '\n')
		rest = next
	}

	metadata := make(map[string]any)
	if len(bytes.TrimSpace(frontmatter)) > 0 {
		if err := yaml.Unmarshal(frontmatter, &metadata); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	return &Template{Metadata: metadata, Body: string(rest)}, nil
}

// cutLine returns the first line of b without its line ending, the remainder,
// and whether a line ending was found.
func cutLine(b []byte) (line, rest []byte, found bool) {
	line, rest, found = bytes.Cut(b, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, found
}
