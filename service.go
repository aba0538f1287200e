package coursemail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/coursemail/pkg/health"
	"github.com/dmitrymomot/coursemail/pkg/logger"
	"github.com/dmitrymomot/coursemail/pkg/mailer"
	"github.com/dmitrymomot/coursemail/pkg/mailer/resend"
	"github.com/dmitrymomot/coursemail/pkg/mailer/smtp"
)

// ErrUnknownTransport is returned by New when MAIL_TRANSPORT names no known transport.
var ErrUnknownTransport = errors.New("unknown mail transport")

// Service renders and dispatches the platform's transactional emails.
type Service struct {
	catalog *Catalog
	mailer  *mailer.Mailer
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	logger      *slog.Logger
	factory     mailer.TransportFactory
	credentials *mailer.Credentials
	catalog     []CatalogOption
}

// WithLogger sets the logger for dispatch events.
func WithLogger(l *slog.Logger) Option {
	return func(o *serviceOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTransportFactory overrides the transport selected by Config.Transport.
// Credentials for the credential gate still come from the selected transport's
// configuration unless WithCredentials is also given.
func WithTransportFactory(f mailer.TransportFactory) Option {
	return func(o *serviceOptions) {
		if f != nil {
			o.factory = f
		}
	}
}

// WithCredentials overrides the credentials derived from Config.
func WithCredentials(c mailer.Credentials) Option {
	return func(o *serviceOptions) {
		o.credentials = &c
	}
}

// WithCatalogOptions passes options to the underlying Catalog.
func WithCatalogOptions(opts ...CatalogOption) Option {
	return func(o *serviceOptions) {
		o.catalog = append(o.catalog, opts...)
	}
}

// New wires the catalog, the configured transport and the mailer.
func New(cfg Config, opts ...Option) (*Service, error) {
	o := &serviceOptions{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(o)
	}

	factory, creds, err := transportFor(cfg)
	if err != nil {
		return nil, err
	}
	if o.factory != nil {
		factory = o.factory
	}
	if o.credentials != nil {
		creds = *o.credentials
	}

	catalog, err := NewCatalog(cfg.Platform, o.catalog...)
	if err != nil {
		return nil, err
	}

	m := mailer.New(factory, mailer.Config{
		Credentials: creds,
		SenderName:  cfg.Platform.Name,
		ReplyTo:     cfg.Platform.SupportEmail,
	}, mailer.WithLogger(o.logger))

	return &Service{catalog: catalog, mailer: m, logger: o.logger}, nil
}

// transportFor maps the configured transport to a factory and the credentials
// checked before every dispatch.
func transportFor(cfg Config) (mailer.TransportFactory, mailer.Credentials, error) {
	switch cfg.Transport {
	case TransportSMTP, "":
		return smtp.Factory(cfg.SMTP), mailer.Credentials{
			User:   cfg.SMTP.User,
			Secret: cfg.SMTP.Password,
		}, nil
	case TransportResend:
		return resend.Factory(cfg.Resend), mailer.Credentials{
			User:   cfg.Resend.SenderEmail,
			Secret: cfg.Resend.APIKey,
		}, nil
	default:
		return nil, mailer.Credentials{}, fmt.Errorf("%w: %q", ErrUnknownTransport, cfg.Transport)
	}
}

// Catalog returns the template catalog used by the service.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// Send dispatches a message built by the caller.
func (s *Service) Send(ctx context.Context, opts mailer.Options) mailer.Result {
	return s.mailer.Send(ctx, opts)
}

// SendWelcome renders and dispatches the welcome message to data.Email.
func (s *Service) SendWelcome(ctx context.Context, data WelcomeData) mailer.Result {
	msg, err := s.catalog.Welcome(data)
	return s.dispatch(ctx, templateWelcome, data.Email, msg, err)
}

// SendEnrollment renders and dispatches the enrollment confirmation to data.StudentEmail.
func (s *Service) SendEnrollment(ctx context.Context, data EnrollmentData) mailer.Result {
	msg, err := s.catalog.Enrollment(data)
	return s.dispatch(ctx, templateEnrollment, data.StudentEmail, msg, err)
}

// SendPasswordReset renders and dispatches the password reset code to data.Email.
func (s *Service) SendPasswordReset(ctx context.Context, data PasswordResetData) mailer.Result {
	msg, err := s.catalog.PasswordReset(data)
	return s.dispatch(ctx, templatePasswordReset, data.Email, msg, err)
}

func (s *Service) dispatch(ctx context.Context, name, to string, msg *Rendered, err error) mailer.Result {
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to render email",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
		return mailer.Failed(err.Error())
	}
	return s.mailer.Send(ctx, mailer.Options{
		To:      to,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
}

// Checks returns the dependency checks for operator tooling: transport
// connectivity (including the credential gate) and rendering of every template.
func (s *Service) Checks() health.Checks {
	return health.Checks{
		"transport": s.mailer.Verify,
		"templates": func(context.Context) error {
			_, err := s.catalog.Welcome(WelcomeData{})
			if err == nil {
				_, err = s.catalog.Enrollment(EnrollmentData{})
			}
			if err == nil {
				_, err = s.catalog.PasswordReset(PasswordResetData{})
			}
			return err
		},
	}
}
