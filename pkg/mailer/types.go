package mailer

import "fmt"

// Options describes a single message to dispatch.
type Options struct {
	To      string // Recipient address
	Subject string // Subject line, passed through verbatim
	HTML    string // HTML body, passed through verbatim
	Text    string // Plain text alternative; derived from HTML when empty
}

// Email represents a fully-prepared email message ready for a Transport.
type Email struct {
	Subject string   // Email subject
	HTML    string   // HTML body content
	Text    string   // Plain text alternative
	From    string   // Formatted sender, e.g. "Platform" <noreply@example.com>
	ReplyTo string   // Reply-to address
	To      []string // Recipients (at least one required)
}

// Result is the outcome of a dispatch. Exactly one of MessageID or Error is set.
type Result struct {
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
	Success   bool   `json:"success"`
}

// Succeeded returns a successful Result carrying the transport's message id.
func Succeeded(messageID string) Result {
	return Result{Success: true, MessageID: messageID}
}

// Failed returns a failed Result. An empty message is replaced with MsgUnknownError.
func Failed(message string) Result {
	if message == "" {
		message = MsgUnknownError
	}
	return Result{Error: message}
}

// FormatAddress formats a display name and address as "Name" <address>.
// Returns just the address if name is empty.
func FormatAddress(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%q <%s>", name, address)
}
