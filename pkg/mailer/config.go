package mailer

// Credentials identify the account messages are submitted from.
// User doubles as the envelope sender address.
type Credentials struct {
	User   string
	Secret string
}

// Configured reports whether both credential fields are present.
func (c Credentials) Configured() bool {
	return c.User != "" && c.Secret != ""
}

// Config holds dispatch configuration.
// It is assembled once at startup from transport and platform settings.
type Config struct {
	Credentials Credentials
	SenderName  string // Display name in the From header, usually the platform name
	ReplyTo     string // Optional Reply-To address applied to every message
}
