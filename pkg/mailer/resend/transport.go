// Package resend implements mailer.Transport using the Resend HTTP API.
package resend

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/coursemail/pkg/mailer"
)

var (
	// ErrMissingAPIKey indicates the transport was built without an API key.
	ErrMissingAPIKey = errors.New("resend: api key is not configured")

	// ErrMissingID indicates Resend accepted the request but returned no email id.
	ErrMissingID = errors.New("resend: response has no email id")
)

// Transport implements mailer.Transport using the Resend API.
type Transport struct {
	client *resend.Client
	config Config
}

var _ mailer.Transport = (*Transport)(nil)

// New creates a Resend transport.
func New(cfg Config) *Transport {
	return &Transport{
		client: resend.NewClient(cfg.APIKey),
		config: cfg,
	}
}

// Factory returns a mailer.TransportFactory producing a new Transport per call.
func Factory(cfg Config) mailer.TransportFactory {
	return func() (mailer.Transport, error) {
		return New(cfg), nil
	}
}

// Verify checks the configuration. The HTTP API has no handshake to probe,
// so a present API key is the best available signal before sending.
func (t *Transport) Verify(ctx context.Context) error {
	if t.config.APIKey == "" {
		return ErrMissingAPIKey
	}
	return ctx.Err()
}

// Send implements mailer.Transport and returns the Resend email id.
func (t *Transport) Send(ctx context.Context, email *mailer.Email) (string, error) {
	if len(email.To) == 0 {
		return "", mailer.ErrNoRecipient
	}

	from := email.From
	if from == "" {
		from = t.config.SenderEmail
	}

	resp, err := t.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
	})
	if err != nil {
		return "", fmt.Errorf("resend: failed to send email: %w", err)
	}
	if resp == nil || resp.Id == "" {
		return "", ErrMissingID
	}

	return resp.Id, nil
}

// Close implements mailer.Transport. The HTTP client holds no session.
func (t *Transport) Close() error {
	return nil
}
