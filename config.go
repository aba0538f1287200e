package coursemail

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/coursemail/pkg/logger"
	"github.com/dmitrymomot/coursemail/pkg/mailer/resend"
	"github.com/dmitrymomot/coursemail/pkg/mailer/smtp"
)

// Transport names accepted by MAIL_TRANSPORT.
const (
	TransportSMTP   = "smtp"
	TransportResend = "resend"
)

// Config is the full process configuration.
type Config struct {
	Transport string `env:"MAIL_TRANSPORT" envDefault:"smtp"`
	Platform  Platform
	Resend    resend.Config
	SMTP      smtp.Config
	Log       logger.Config
}

// LoadConfig reads .env (if present) and parses the environment into Config.
// Variables already set in the environment take precedence over .env.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
