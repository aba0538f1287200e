package mailer

import "context"

// Transport is a delivery session with a mail provider.
// A Transport is created per dispatch and closed when the dispatch returns.
type Transport interface {
	// Verify checks that the provider is reachable and accepts the credentials.
	Verify(ctx context.Context) error

	// Send submits a fully-prepared Email and returns the provider's message identifier.
	Send(ctx context.Context, email *Email) (string, error)

	// Close releases the session. Closing an unused transport is a no-op.
	Close() error
}

// TransportFactory builds a fresh Transport from the configuration it captured.
type TransportFactory func() (Transport, error)
