package email

import (
	"context"
	"errors"
	"strings"
)

// EmailSender delivers a single HTML email.
// Implementations must be safe for concurrent use.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams holds the content of an outgoing email.
type SendEmailParams struct {
	SendTo   string // Recipient email address (required)
	Subject  string // Email subject line (required)
	BodyHTML string // HTML email body (required)
	Tag      string // Optional tag for analytics and tracking
}

// Validate checks that all required fields are present.
// Address syntax is left to the sender, which reports it as ErrInvalidAddress.
func (p SendEmailParams) Validate() error {
	var errs []error
	if strings.TrimSpace(p.SendTo) == "" {
		errs = append(errs, errors.New("recipient is required"))
	}
	if strings.TrimSpace(p.Subject) == "" {
		errs = append(errs, errors.New("subject is required"))
	}
	if strings.TrimSpace(p.BodyHTML) == "" {
		errs = append(errs, errors.New("HTML body is required"))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidParams}, errs...)...)
	}
	return nil
}
