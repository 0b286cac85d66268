// Package logger provides structured logging built on the standard slog package:
// a functional-options factory, context-aware attribute extraction, optional
// Sentry forwarding, and attribute helpers for common keys.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/tenantmail/core/logger"
//
//	// Development: text format, debug level
//	log := logger.New(logger.WithDevelopment("mailer"))
//
//	// Production: JSON format, info level
//	log := logger.New(
//		logger.WithProduction("mailer"),
//		logger.WithOutput(os.Stderr),
//	)
//
//	log.Info("email sent",
//		logger.TenantID(tenantID),
//		logger.SMTPServer("smtp.example.com", 587),
//		logger.TLSMode("starttls"),
//	)
//
// # Configuration From Environment
//
// Config carries env tags for use with the config package:
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.NewFromConfig(cfg)
//
// Recognised variables are LOG_LEVEL, LOG_FORMAT (json or text), SERVICE_NAME,
// SENTRY_DSN, SENTRY_ENVIRONMENT and SENTRY_MIN_LEVEL.
//
// # Context Extractors
//
// Extractors run on every *Context call and append attributes taken from the
// context:
//
//	log := logger.New(
//		logger.WithContextValue("tenant_id", tenantKey{}),
//		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//			id, ok := ctx.Value(requestKey{}).(string)
//			return slog.String("request_id", id), ok
//		}),
//	)
//
// # Sentry
//
// WithSentry sends error records to Sentry as issues and records at or above
// SentryConfig.MinLevel as Sentry logs. An empty DSN disables the integration;
// an initialization failure is logged and the logger continues without it.
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for zero inputs, which slog omits:
//
//	log.Error("send failed", logger.Error(err)) // no "error" key when err is nil
//
// NewNope returns a logger that discards everything, for tests and defaults.
package logger
