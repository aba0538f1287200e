package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds logger configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Format string     `env:"LOG_FORMAT" envDefault:"json"` // json or text
	Sentry SentryConfig
	Level  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

// Option configures logger construction.
type Option func(*options)

type options struct {
	out        io.Writer
	extractors []ContextExtractor
}

// WithOutput sets the destination for local log output. Default: os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.out = w
		}
	}
}

// WithExtractors adds context extractors applied to every record.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// New creates a logger from cfg. When cfg.Sentry.DSN is set, records are
// also forwarded to Sentry; otherwise only local output is used.
func New(cfg Config, opts ...Option) *slog.Logger {
	o := &options{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	local := newLocalHandler(o.out, cfg)

	handler, err := withSentry(local, cfg.Sentry)
	if err != nil {
		// Graceful degradation: keep logging locally if Sentry init fails
		slog.New(local).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		handler = local
	}

	return slog.New(NewLogHandlerDecorator(handler, o.extractors...))
}

func newLocalHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
