// Package coursemail sends the transactional emails of a course platform:
// welcome, enrollment confirmation and password reset.
//
// # Quick Start
//
// Load configuration once at startup, build a Service and call the typed
// send methods:
//
//	cfg, err := coursemail.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	svc, err := coursemail.New(cfg, coursemail.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res := svc.SendWelcome(ctx, coursemail.WelcomeData{
//	    FirstName: "John",
//	    LastName:  "Doe",
//	    Email:     "john@example.com",
//	    UserType:  coursemail.RoleStudent,
//	})
//	if !res.Success {
//	    logger.Warn("welcome email not sent", "error", res.Error)
//	}
//
// Send methods never return an error. Rendering, credential, verification and
// delivery failures are all reported through [mailer.Result].
//
// # Templates
//
// The [Catalog] renders the three messages from markdown templates embedded in
// the binary. Each render produces a full HTML document, a plain text
// alternative and a subject line. Subjects are also available on their own:
//
//	subject, _ := catalog.EnrollmentSubject("Advanced Node.js")
//	// "Enrollment Confirmed: Advanced Node.js | Course Platform"
//
// # Configuration
//
// All settings come from environment variables (a .env file is loaded when
// present):
//
//	MAIL_TRANSPORT      smtp (default) or resend
//	SMTP_HOST           default smtp.gmail.com
//	SMTP_PORT           default 587
//	SMTP_SECURE         implicit TLS, default false
//	SMTP_USER           account and sender address
//	SMTP_PASS           account password
//	RESEND_API_KEY      Resend API key
//	RESEND_FROM_EMAIL   Resend sender address
//	PLATFORM_NAME       default "Course Platform"
//	FRONTEND_URL        default http://localhost:3000
//	SUPPORT_EMAIL       default support@courseplatform.com
//	LOGO_URL            optional header logo
package coursemail
