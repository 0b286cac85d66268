package tenantmail

import (
	"context"

	"github.com/dmitrymomot/tenantmail/core/email"
	"github.com/dmitrymomot/tenantmail/integration/email/smtp"
)

// SenderFactory builds a sender bound to one tenant's configuration.
type SenderFactory func(cfg smtp.TenantConfig) email.EmailSender

// ConnectionTester verifies SMTP credentials. *smtp.Dispatcher implements it.
type ConnectionTester interface {
	TestConnection(ctx context.Context, host string, port int, username, password string, secure bool) error
}

// SMTPSenders delivers through d using each tenant's own server.
func SMTPSenders(d *smtp.Dispatcher) SenderFactory {
	return func(cfg smtp.TenantConfig) email.EmailSender {
		return smtp.NewSender(d, cfg)
	}
}

// DevSenders writes messages to dir instead of sending them. The tenant's
// From address is used when set, otherwise from.
func DevSenders(dir, from string) SenderFactory {
	return func(cfg smtp.TenantConfig) email.EmailSender {
		sender := from
		if cfg.From != nil && *cfg.From != "" {
			sender = *cfg.From
		}
		return email.NewDevSender(dir, sender)
	}
}

// NewSenderFactory picks the backend for cfg.Mode.
func NewSenderFactory(cfg Config, d *smtp.Dispatcher) SenderFactory {
	if cfg.Mode == ModeDev {
		return DevSenders(cfg.DevDir, cfg.DevFrom)
	}
	return SMTPSenders(d)
}
