package mailer

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Inline mail syntax:
//
//	[!button|Label](https://example.com)  call-to-action link
//	[!code|A1B2C3]                         one-time code block
var (
	buttonPrefix = []byte("[!button|")
	codePrefix   = []byte("[!code|")
)

// ButtonNode represents a call-to-action link in the AST.
type ButtonNode struct {
	ast.BaseInline
	URL   []byte
	Label []byte
}

// KindButton is the node kind for ButtonNode.
var KindButton = ast.NewNodeKind("Button")

func (n *ButtonNode) Kind() ast.NodeKind { return KindButton }

func (n *ButtonNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"URL": string(n.URL), "Label": string(n.Label)}, nil)
}

// CodeNode represents a highlighted one-time code in the AST.
type CodeNode struct {
	ast.BaseInline
	Value []byte
}

// KindCode is the node kind for CodeNode.
var KindCode = ast.NewNodeKind("MailCode")

func (n *CodeNode) Kind() ast.NodeKind { return KindCode }

func (n *CodeNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Value": string(n.Value)}, nil)
}

type mailParser struct{}

// NewMailParser creates the inline parser for button and code syntax.
func NewMailParser() parser.InlineParser {
	return &mailParser{}
}

func (p *mailParser) Trigger() []byte {
	return []byte{'['}
}

func (p *mailParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()

	switch {
	case bytes.HasPrefix(line, buttonPrefix):
		labelEnd := closingBracket(line)
		if labelEnd == -1 || labelEnd+1 >= len(line) || line[labelEnd+1] != '(' {
			return nil
		}
		urlStart := labelEnd + 2
		urlLen := bytes.IndexByte(line[urlStart:], ')')
		if urlLen == -1 {
			return nil
		}
		node := &ButtonNode{
			Label: unescapeMarkdown(line[len(buttonPrefix):labelEnd]),
			URL:   line[urlStart : urlStart+urlLen],
		}
		block.Advance(urlStart + urlLen + 1)
		return node

	case bytes.HasPrefix(line, codePrefix):
		valueEnd := closingBracket(line)
		if valueEnd == -1 {
			return nil
		}
		node := &CodeNode{Value: unescapeMarkdown(line[len(codePrefix):valueEnd])}
		block.Advance(valueEnd + 1)
		return node
	}

	return nil
}

// closingBracket returns the index of the first ']' not preceded by a backslash escape, or -1.
func closingBracket(line []byte) int {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case ']':
			return i
		}
	}
	return -1
}

func unescapeMarkdown(b []byte) []byte {
	return markdownEscapeRe.ReplaceAll(b, []byte("$1"))
}

// mailRenderer renders button and code nodes with inline styles,
// since many mail clients ignore <style> blocks.
type mailRenderer struct {
	html.Config
}

// NewMailRenderer creates the node renderer for button and code nodes.
func NewMailRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &mailRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

func (r *mailRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindButton, r.renderButton)
	reg.Register(KindCode, r.renderCode)
}

func (r *mailRenderer) renderButton(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ButtonNode)
	_, _ = w.WriteString(`<a href="`)
	if html.IsDangerousURL(n.URL) {
		_, _ = w.WriteString("#")
	} else {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.URL, true)))
	}
	_, _ = w.WriteString(`" class="btn" target="_blank" style="display:inline-block;padding:12px 24px;background-color:#4f46e5;color:#ffffff;text-decoration:none;border-radius:6px;font-weight:600;">`)
	_, _ = w.Write(util.EscapeHTML(n.Label))
	_, _ = w.WriteString(`</a>`)

	return ast.WalkContinue, nil
}

func (r *mailRenderer) renderCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*CodeNode)
	_, _ = w.WriteString(`<span class="code" style="display:inline-block;padding:12px 20px;background-color:#f3f4f6;border:1px dashed #9ca3af;border-radius:6px;font-family:monospace;font-size:24px;letter-spacing:4px;">`)
	_, _ = w.Write(util.EscapeHTML(n.Value))
	_, _ = w.WriteString(`</span>`)

	return ast.WalkContinue, nil
}

// MailExtension is a goldmark extension for mail-specific inline syntax.
type MailExtension struct{}

func (e *MailExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(NewMailParser(), 50),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewMailRenderer(), 50),
	))
}

// NewMailExtension creates the mail extension for goldmark.
func NewMailExtension() goldmark.Extender {
	return &MailExtension{}
}

var (
	buttonTextRe = regexp.MustCompile(`\[!button\|((?:\\.|[^\]\\])*)\]\(([^)]*)\)`)
	codeTextRe   = regexp.MustCompile(`\[!code\|((?:\\.|[^\]\\])*)\]`)

	// markdownEscapeRe matches a backslash escape of ASCII punctuation.
	markdownEscapeRe = regexp.MustCompile(`\\([!-/:-@\[-\x60{-~])`)
)

// PlainText flattens mail syntax in processed markdown for the text alternative.
// Buttons become "Label: URL", codes become their bare value and backslash
// escapes are dropped.
func PlainText(markdown string) string {
	out := buttonTextRe.ReplaceAllString(markdown, "$1: $2")
	out = codeTextRe.ReplaceAllString(out, "$1")
	return string(unescapeMarkdown([]byte(out)))
}
