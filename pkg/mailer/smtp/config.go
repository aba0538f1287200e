package smtp

// Config holds SMTP server configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Host     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Secure   bool   `env:"SMTP_SECURE" envDefault:"false"` // implicit TLS (usually port 465); STARTTLS otherwise
}
