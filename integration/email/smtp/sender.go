package smtp

import (
	"context"

	"github.com/dmitrymomot/tenantmail/core/email"
)

// Sender binds a tenant configuration to a Dispatcher so tenant mail can be
// sent through the email.EmailSender interface.
type Sender struct {
	dispatcher *Dispatcher
	config     TenantConfig
}

// NewSender creates an email.EmailSender for one tenant.
func NewSender(d *Dispatcher, cfg TenantConfig) email.EmailSender {
	return &Sender{dispatcher: d, config: cfg}
}

// SendEmail validates params and sends them with the bound tenant configuration.
// params.Tag is not transmitted.
func (s *Sender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	return s.dispatcher.Send(ctx, s.config, params.SendTo, params.Subject, params.BodyHTML)
}

// Healthcheck returns a readiness check that verifies the SMTP credentials.
func Healthcheck(d *Dispatcher, creds Credentials) func(context.Context) error {
	return func(ctx context.Context) error {
		return d.TestConnection(ctx, creds.Host, creds.Port, creds.Username, creds.Password, creds.Secure)
	}
}
