// Package mailer dispatches transactional email through pluggable transports
// and renders markdown templates into standalone HTML documents.
//
// # Architecture
//
// The package consists of three main components:
//
//   - Transport: a provider session (SMTP, Resend) able to verify connectivity and submit a message
//   - Mailer: the dispatch entry point that turns Options into a single delivery attempt and a Result
//   - Renderer: converts markdown templates with YAML frontmatter to HTML, text and a subject line
//
// # Dispatch
//
// A Mailer is built with a TransportFactory and a Config. Every call to Send
// builds a fresh Transport, verifies it, submits one message and closes it:
//
//	m := mailer.New(smtp.Factory(smtpCfg), mailer.Config{
//		Credentials: mailer.Credentials{User: smtpCfg.User, Secret: smtpCfg.Password},
//		SenderName:  "Course Platform",
//	}, mailer.WithLogger(log))
//
//	res := m.Send(ctx, mailer.Options{
//		To:      "student@example.com",
//		Subject: "Welcome",
//		HTML:    "<p>Hello <strong>World</strong></p>",
//	})
//	if !res.Success {
//		log.Warn("email not sent", "error", res.Error)
//	}
//
// Send never returns an error. Missing credentials short-circuit to a failed
// Result without touching the network; verification and send failures are
// reported through Result.Error. There are no retries.
//
// When Options.Text is empty the plain text alternative is derived with HTMLToText.
//
// Mailer.Verify runs the same credential gate and transport verification
// without sending, for health checks.
//
// # Templates
//
// Templates are markdown files with optional YAML frontmatter:
//
//	---
//	Subject: "Welcome to {{.Platform.Name}}!"
//	---
//
//	# Welcome aboard, {{.FirstName}}!
//
//	[!button|Log in]({{.LoginURL}})
//
//	[!code|{{.ResetCode}}]
//
// The Subject field is a text/template executed with the same data as the body.
// The [!button|...] and [!code|...] syntax is provided by the mail goldmark extension.
//
// # Errors
//
// Rendering and transport errors wrap the package sentinels:
//
//   - ErrNoRecipient: No recipient specified
//   - ErrNoContent: Neither HTML nor text content
//   - ErrTemplateNotFound: Template file not found
//   - ErrLayoutNotFound: Layout file not found
//   - ErrRenderFailed: Template rendering failed
//   - ErrInvalidFrontmatter: Invalid YAML frontmatter
//   - ErrNoTransport: Mailer built without a transport factory
//   - ErrCredentialsMissing: Verify called without credentials
package mailer
