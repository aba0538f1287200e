package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/coursemail/pkg/logger"
)

// Mailer dispatches messages through a Transport built fresh for every call.
type Mailer struct {
	factory TransportFactory
	logger  *slog.Logger
	config  Config
}

// Option configures a Mailer.
type Option func(*Mailer)

// WithLogger sets the logger used for dispatch events.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mailer) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a Mailer. The factory is invoked once per Send.
func New(factory TransportFactory, cfg Config, opts ...Option) *Mailer {
	m := &Mailer{
		factory: factory,
		config:  cfg,
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Verify checks that a transport can be built and reaches its provider,
// without sending anything. The transport is closed before returning.
func (m *Mailer) Verify(ctx context.Context) error {
	if !m.config.Credentials.Configured() {
		return ErrCredentialsMissing
	}
	if m.factory == nil {
		return ErrNoTransport
	}

	transport, err := m.factory()
	if err != nil {
		return err
	}
	return errors.Join(transport.Verify(ctx), transport.Close())
}

// Send performs a single delivery attempt and reports the outcome as a Result.
// It never returns an error: missing credentials, verification failures and
// send failures all surface as a failed Result.
func (m *Mailer) Send(ctx context.Context, opts Options) (res Result) {
	ctx = WithDispatchID(ctx, uuid.NewString())
	log := m.logger.With(
		slog.String("to", opts.To),
		slog.String("subject", opts.Subject),
	)

	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "email dispatch panicked", slog.Any("panic", r))
			res = Failed(fmt.Sprint(r))
		}
	}()

	if !m.config.Credentials.Configured() {
		log.WarnContext(ctx, "email credentials not configured, skipping send")
		return Failed(MsgCredentialsMissing)
	}

	if m.factory == nil {
		log.ErrorContext(ctx, "email transport missing")
		return Failed(ErrNoTransport.Error())
	}

	transport, err := m.factory()
	if err != nil {
		log.ErrorContext(ctx, "failed to create email transport", slog.String("error", errorMessage(err)))
		return Failed(errorMessage(err))
	}
	defer func() {
		if err := transport.Close(); err != nil {
			log.DebugContext(ctx, "failed to close email transport", slog.String("error", err.Error()))
		}
	}()

	if err := transport.Verify(ctx); err != nil {
		log.ErrorContext(ctx, "email transport verification failed", slog.String("error", errorMessage(err)))
		return Failed(errorMessage(err))
	}

	messageID, err := transport.Send(ctx, m.buildEmail(opts))
	if err != nil {
		log.ErrorContext(ctx, "failed to send email", slog.String("error", errorMessage(err)))
		return Failed(errorMessage(err))
	}

	if messageID == "" {
		log.ErrorContext(ctx, "email transport returned no message id")
		return Failed(MsgUnknownError)
	}

	log.InfoContext(ctx, "email sent", slog.String("message_id", messageID))
	return Succeeded(messageID)
}

func (m *Mailer) buildEmail(opts Options) *Email {
	text := opts.Text
	if text == "" {
		text = HTMLToText(opts.HTML)
	}

	return &Email{
		From:    FormatAddress(m.config.SenderName, m.config.Credentials.User),
		ReplyTo: m.config.ReplyTo,
		To:      []string{opts.To},
		Subject: opts.Subject,
		HTML:    opts.HTML,
		Text:    text,
	}
}

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return MsgUnknownError
	}
	return err.Error()
}
