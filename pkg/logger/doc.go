// Package logger builds slog loggers with context extraction and optional
// Sentry reporting.
//
// Libraries in this module accept a *slog.Logger and default to NewNope.
// Applications build one logger at startup:
//
//	log := logger.New(cfg.Log, logger.WithExtractors(mailer.DispatchIDAttr))
//	log.InfoContext(ctx, "email sent")
//	// {"level":"INFO","msg":"email sent","dispatch_id":"..."}
//
// A ContextExtractor pulls a request-scoped value (such as the dispatch id)
// out of the context on every log call. LogHandlerDecorator applies the
// extractors to any slog.Handler.
//
// If SENTRY_DSN is empty, the logger falls back to local output only, so the
// same code path works in development and production.
package logger
