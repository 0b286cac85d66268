package email

import "errors"

// Error variables define email operation failures that can be wrapped with
// detailed context using errors.Join() for comprehensive error reporting.
var (
	ErrFailedToSendEmail = errors.New("failed to send email")
	ErrInvalidConfig     = errors.New("invalid email configuration")
	ErrInvalidParams     = errors.New("invalid email parameters")

	// ErrConfigurationMissing is returned before any network activity when
	// the tenant has not configured every required SMTP field.
	ErrConfigurationMissing = errors.New("smtp configuration missing")
	ErrInvalidAddress       = errors.New("invalid email address")
	ErrBuildMessage         = errors.New("failed to build email")
)
