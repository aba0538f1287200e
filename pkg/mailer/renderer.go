package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
)

// subjectKey is the frontmatter field holding the subject template.
const subjectKey = "Subject"

// Renderer converts markdown templates with YAML frontmatter to HTML.
type Renderer struct {
	fs fs.FS
	md goldmark.Markdown

	// Caches hold parsed structure only, never rendered output.
	templateCache map[string]*cachedTemplate
	layoutCache   map[string]*template.Template
	templateDir   string
	layoutDir     string

	mu sync.RWMutex
}

type cachedTemplate struct {
	metadata map[string]any
	body     *texttemplate.Template
	subject  *texttemplate.Template // nil when the frontmatter has no Subject
}

// RendererConfig configures the renderer.
type RendererConfig struct {
	TemplateDir string // Default: "."
	LayoutDir   string // Default: "layouts"
}

// NewRenderer creates a new renderer with default config.
func NewRenderer(filesystem fs.FS) *Renderer {
	return NewRendererWithConfig(filesystem, RendererConfig{})
}

// NewRendererWithConfig creates a new renderer with custom config.
func NewRendererWithConfig(filesystem fs.FS, opts RendererConfig) *Renderer {
	if opts.TemplateDir == "" {
		opts.TemplateDir = "."
	}
	if opts.LayoutDir == "" {
		opts.LayoutDir = "layouts"
	}

	return &Renderer{
		fs:          filesystem,
		templateDir: opts.TemplateDir,
		layoutDir:   opts.LayoutDir,
		md: goldmark.New(
			goldmark.WithExtensions(NewMailExtension()),
		),
		templateCache: make(map[string]*cachedTemplate),
		layoutCache:   make(map[string]*template.Template),
	}
}

// RenderResult contains the rendered document, its plain text and subject.
type RenderResult struct {
	Metadata map[string]any
	Subject  string // Processed frontmatter subject, empty if the template has none
	HTML     string
	Text     string // Processed markdown with mail syntax flattened to text
}

// Render processes a markdown template and wraps it in a layout.
//
// The layout receives Content (rendered markdown), Subject, Metadata and
// Data (the value passed in here).
func (r *Renderer) Render(layout, templateName string, data any) (*RenderResult, error) {
	cached, err := r.getTemplate(templateName)
	if err != nil {
		return nil, err
	}

	var processedMarkdown bytes.Buffer
	if err := cached.body.Execute(&processedMarkdown, data); err != nil {
		return nil, fmt.Errorf("%w: failed to execute template: %v", ErrRenderFailed, err)
	}

	subject, err := cached.renderSubject(data)
	if err != nil {
		return nil, err
	}

	var htmlContent bytes.Buffer
	if err := r.md.Convert(processedMarkdown.Bytes(), &htmlContent); err != nil {
		return nil, fmt.Errorf("%w: failed to convert markdown: %v", ErrRenderFailed, err)
	}

	layoutTmpl, err := r.getLayout(layout)
	if err != nil {
		return nil, err
	}

	var finalHTML bytes.Buffer
	layoutData := map[string]any{
		"Content":  template.HTML(htmlContent.String()),
		"Subject":  subject,
		"Metadata": cached.metadata,
		"Data":     data,
	}

	if err := layoutTmpl.Execute(&finalHTML, layoutData); err != nil {
		return nil, fmt.Errorf("%w: failed to execute layout: %v", ErrRenderFailed, err)
	}

	return &RenderResult{
		HTML:     finalHTML.String(),
		Text:     strings.TrimSpace(PlainText(processedMarkdown.String())),
		Subject:  subject,
		Metadata: cached.metadata,
	}, nil
}

// Subject renders only the frontmatter subject of a template.
func (r *Renderer) Subject(templateName string, data any) (string, error) {
	cached, err := r.getTemplate(templateName)
	if err != nil {
		return "", err
	}
	return cached.renderSubject(data)
}

func (c *cachedTemplate) renderSubject(data any) (string, error) {
	if c.subject == nil {
		return "", nil
	}

	var buf bytes.Buffer
	if err := c.subject.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: failed to execute subject: %v", ErrRenderFailed, err)
	}
	// Subjects are plain text; markdown escapes in interpolated values are dropped.
	return strings.TrimSpace(string(unescapeMarkdown(buf.Bytes()))), nil
}

// getTemplate returns a cached template or parses and caches it.
func (r *Renderer) getTemplate(name string) (*cachedTemplate, error) {
	r.mu.RLock()
	if cached, ok := r.templateCache[name]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if cached, ok := r.templateCache[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.templateDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}

	parsed, err := ParseTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	body, err := texttemplate.New(name).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse template body: %v", ErrRenderFailed, err)
	}

	cached := &cachedTemplate{metadata: parsed.Metadata, body: body}

	if raw, ok := parsed.Metadata[subjectKey].(string); ok && raw != "" {
		cached.subject, err = texttemplate.New(name + ":subject").Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse subject: %v", ErrRenderFailed, err)
		}
	}

	r.templateCache[name] = cached
	return cached, nil
}

// getLayout returns a cached layout template or parses and caches it.
func (r *Renderer) getLayout(name string) (*template.Template, error) {
	r.mu.RLock()
	if cached, ok := r.layoutCache[name]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.layoutCache[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}

	layoutTmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse layout: %v", ErrRenderFailed, err)
	}

	r.layoutCache[name] = layoutTmpl
	return layoutTmpl, nil
}
