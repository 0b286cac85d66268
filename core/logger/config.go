package logger

import "log/slog"

// Config is the environment-driven logger configuration.
type Config struct {
	Level   slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	Format  Format     `env:"LOG_FORMAT" envDefault:"json"`
	Service string     `env:"SERVICE_NAME" envDefault:"tenantmail"`
	Sentry  SentryConfig
}

// Options converts cfg into factory options.
func (c Config) Options() []Option {
	return []Option{
		WithLevel(c.Level),
		WithFormat(c.Format),
		WithAttr(Service(c.Service)),
		WithSentry(c.Sentry),
	}
}

// NewFromConfig is shorthand for New(cfg.Options()...).
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	return New(append(cfg.Options(), opts...)...)
}
