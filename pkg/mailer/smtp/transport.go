// Package smtp implements mailer.Transport on top of github.com/wneessen/go-mail.
package smtp

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"

	"github.com/dmitrymomot/coursemail/pkg/mailer"
)

// Transport is a single SMTP session. Verify dials, Send submits over the
// dialed connection and Close hangs up.
type Transport struct {
	client *mail.Client
	config Config
}

var _ mailer.Transport = (*Transport)(nil)

// New creates an SMTP transport. No network I/O happens until Verify.
func New(cfg Config) (*Transport, error) {
	opts := []mail.Option{mail.WithPort(cfg.Port)}

	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Password),
		)
	}

	if cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp: failed to create client: %w", err)
	}

	return &Transport{client: client, config: cfg}, nil
}

// Factory returns a mailer.TransportFactory producing a new Transport per call.
func Factory(cfg Config) mailer.TransportFactory {
	return func() (mailer.Transport, error) {
		return New(cfg)
	}
}

// Verify dials the server, negotiates TLS and authenticates.
func (t *Transport) Verify(ctx context.Context) error {
	if err := t.client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}

// Send implements mailer.Transport. It requires a prior successful Verify.
func (t *Transport) Send(ctx context.Context, email *mailer.Email) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	msg, messageID, err := t.buildMessage(email)
	if err != nil {
		return "", err
	}

	if err := t.client.Send(msg); err != nil {
		return "", fmt.Errorf("smtp: failed to send email: %w", err)
	}

	return messageID, nil
}

// Close implements mailer.Transport.
func (t *Transport) Close() error {
	return t.client.Close()
}

// buildMessage converts an Email into a multipart/alternative message
// with a text/plain part and a text/html alternative.
func (t *Transport) buildMessage(email *mailer.Email) (*mail.Msg, string, error) {
	if len(email.To) == 0 {
		return nil, "", mailer.ErrNoRecipient
	}
	if email.HTML == "" && email.Text == "" {
		return nil, "", mailer.ErrNoContent
	}

	msg := mail.NewMsg()
	if err := msg.From(email.From); err != nil {
		return nil, "", fmt.Errorf("smtp: invalid sender: %w", err)
	}
	if err := msg.To(email.To...); err != nil {
		return nil, "", fmt.Errorf("smtp: invalid recipient: %w", err)
	}
	if email.ReplyTo != "" {
		if err := msg.ReplyTo(email.ReplyTo); err != nil {
			return nil, "", fmt.Errorf("smtp: invalid reply-to: %w", err)
		}
	}

	// Strip CR/LF from subject to prevent header injection.
	msg.Subject(strings.NewReplacer("\r", "", "\n", "").Replace(email.Subject))
	msg.SetDate()

	id := fmt.Sprintf("%s@%s", uuid.NewString(), t.messageIDDomain(email.From))
	msg.SetMessageIDWithValue(id)

	msg.SetBodyString(mail.TypeTextPlain, email.Text)
	if email.HTML != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, email.HTML)
	}

	return msg, "<" + id + ">", nil
}

// messageIDDomain prefers the sender's domain, falling back to the SMTP host.
func (t *Transport) messageIDDomain(from string) string {
	if at := strings.LastIndex(from, "@"); at != -1 {
		domain := strings.TrimRight(from[at+1:], ">")
		if domain != "" {
			return domain
		}
	}
	return t.config.Host
}
