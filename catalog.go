package coursemail

import (
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/dmitrymomot/coursemail/pkg/mailer"
	"github.com/dmitrymomot/coursemail/pkg/sanitizer"
)

//go:embed templates
var embeddedTemplates embed.FS

const (
	layoutBase = "base.html"

	templateWelcome       = "welcome.md"
	templateEnrollment    = "enrollment.md"
	templatePasswordReset = "password_reset.md"

	// enrollmentDateLayout renders dates in long form, e.g. "March 5, 2025".
	enrollmentDateLayout = "January 2, 2006"
)

// Rendered is a message ready for dispatch.
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

// WelcomeData describes a newly created account.
type WelcomeData struct {
	FirstName string
	LastName  string
	Email     string
	UserType  Role
}

// EnrollmentData describes a confirmed course enrollment.
type EnrollmentData struct {
	EnrollmentDate   time.Time
	StudentName      string
	StudentEmail     string
	CourseTitle      string
	CourseInstructor string
	CourseLevel      string
	CourseDuration   string
}

// PasswordResetData describes a pending password reset.
type PasswordResetData struct {
	FirstName     string
	LastName      string
	Email         string
	ResetCode     string
	UserType      Role
	ExpiryMinutes int
}

// Catalog renders the platform's transactional messages.
// It is safe for concurrent use.
type Catalog struct {
	renderer *mailer.Renderer
	now      func() time.Time
	platform Platform
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	templates fs.FS
	now       func() time.Time
}

// WithTemplates replaces the embedded templates. The filesystem must hold
// welcome.md, enrollment.md, password_reset.md and layouts/base.html.
func WithTemplates(fsys fs.FS) CatalogOption {
	return func(o *catalogOptions) {
		if fsys != nil {
			o.templates = fsys
		}
	}
}

// WithClock sets the time source used for the copyright year.
func WithClock(now func() time.Time) CatalogOption {
	return func(o *catalogOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewCatalog creates a catalog for platform.
func NewCatalog(platform Platform, opts ...CatalogOption) (*Catalog, error) {
	o := &catalogOptions{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	if o.templates == nil {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("open embedded templates: %w", err)
		}
		o.templates = sub
	}

	return &Catalog{
		renderer: mailer.NewRenderer(o.templates),
		now:      o.now,
		platform: platform,
	}, nil
}

// Platform returns the platform identity used by the catalog.
func (c *Catalog) Platform() Platform {
	return c.platform
}

// layoutView is embedded in every template view and read by the layout.
type layoutView struct {
	Platform Platform
	Year     int
}

type welcomeView struct {
	layoutView
	FirstName string
	LastName  string
	Email     string
	LoginURL  string
}

type enrollmentView struct {
	layoutView
	StudentName      string
	StudentEmail     string
	CourseTitle      string
	CourseInstructor string
	CourseLevel      string
	CourseDuration   string
	EnrollmentDate   string
	DashboardURL     string
}

type passwordResetView struct {
	layoutView
	FirstName     string
	LastName      string
	Email         string
	ResetCode     string
	LoginURL      string
	ExpiryMinutes int
}

func (c *Catalog) layoutView() layoutView {
	return layoutView{Platform: c.platform, Year: c.now().Year()}
}

// Welcome renders the account welcome message.
func (c *Catalog) Welcome(data WelcomeData) (*Rendered, error) {
	return c.render(templateWelcome, welcomeView{
		layoutView: c.layoutView(),
		FirstName:  sanitizer.MarkdownLine(data.FirstName),
		LastName:   sanitizer.MarkdownLine(data.LastName),
		Email:      sanitizer.MarkdownLine(data.Email),
		LoginURL:   c.platform.URL(data.UserType.LoginPath()),
	})
}

// WelcomeSubject returns the welcome subject line.
func (c *Catalog) WelcomeSubject() (string, error) {
	return c.renderer.Subject(templateWelcome, welcomeView{layoutView: c.layoutView()})
}

// Enrollment renders the enrollment confirmation.
// A zero EnrollmentDate is replaced by the catalog clock.
func (c *Catalog) Enrollment(data EnrollmentData) (*Rendered, error) {
	if data.EnrollmentDate.IsZero() {
		data.EnrollmentDate = c.now()
	}
	return c.render(templateEnrollment, enrollmentView{
		layoutView:       c.layoutView(),
		StudentName:      sanitizer.MarkdownLine(data.StudentName),
		StudentEmail:     sanitizer.MarkdownLine(data.StudentEmail),
		CourseTitle:      sanitizer.MarkdownLine(data.CourseTitle),
		CourseInstructor: sanitizer.MarkdownLine(data.CourseInstructor),
		CourseLevel:      sanitizer.MarkdownLine(data.CourseLevel),
		CourseDuration:   sanitizer.MarkdownLine(data.CourseDuration),
		EnrollmentDate:   data.EnrollmentDate.Format(enrollmentDateLayout),
		DashboardURL:     c.platform.URL("/dashboard"),
	})
}

// EnrollmentSubject returns the enrollment subject line for courseTitle.
func (c *Catalog) EnrollmentSubject(courseTitle string) (string, error) {
	return c.renderer.Subject(templateEnrollment, enrollmentView{
		layoutView:  c.layoutView(),
		CourseTitle: sanitizer.MarkdownLine(courseTitle),
	})
}

// PasswordReset renders the password reset message with its one-time code.
func (c *Catalog) PasswordReset(data PasswordResetData) (*Rendered, error) {
	return c.render(templatePasswordReset, passwordResetView{
		layoutView:    c.layoutView(),
		FirstName:     sanitizer.MarkdownLine(data.FirstName),
		LastName:      sanitizer.MarkdownLine(data.LastName),
		Email:         sanitizer.MarkdownLine(data.Email),
		ResetCode:     sanitizer.MarkdownLine(data.ResetCode),
		LoginURL:      c.platform.URL(data.UserType.LoginPath()),
		ExpiryMinutes: data.ExpiryMinutes,
	})
}

// PasswordResetSubject returns the password reset subject line.
func (c *Catalog) PasswordResetSubject() (string, error) {
	return c.renderer.Subject(templatePasswordReset, passwordResetView{layoutView: c.layoutView()})
}

func (c *Catalog) render(name string, view any) (*Rendered, error) {
	res, err := c.renderer.Render(layoutBase, name, view)
	if err != nil {
		return nil, err
	}
	return &Rendered{Subject: res.Subject, HTML: res.HTML, Text: res.Text}, nil
}
