// Package email defines the sender abstraction and the error taxonomy shared
// by every mail backend in this module.
//
// The package centers around the EmailSender interface:
//
//	type EmailSender interface {
//		SendEmail(ctx context.Context, params SendEmailParams) error
//	}
//
// Backends:
//
//   - integration/email/smtp: per-tenant SMTP delivery (smtp.NewSender)
//   - DevSender: writes HTML and JSON metadata files to a directory
//
// # Development Mode
//
//	sender := email.NewDevSender("./dev_emails", "noreply@example.com")
//
//	err := sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "user@example.com",
//		Subject:  "Account Verification",
//		BodyHTML: "<h1>Please verify your account</h1>",
//		Tag:      "verification",
//	})
//
//	// Files created:
//	// ./dev_emails/2024_01_15_143052_verification.html
//	// ./dev_emails/2024_01_15_143052_verification.json
//
// # Error Handling
//
// Every failure is terminal for the call and is matched with errors.Is:
//
//	switch {
//	case errors.Is(err, email.ErrConfigurationMissing):
//		// tenant has not configured SMTP; nothing was sent
//	case errors.Is(err, email.ErrInvalidAddress):
//		// from or to is not a valid mail address
//	case errors.Is(err, email.ErrBuildMessage):
//		// message could not be assembled (e.g. CR/LF in the subject)
//	case errors.Is(err, email.ErrFailedToSendEmail):
//		// DNS, connect, TLS, auth, timeout or SMTP rejection
//	case errors.Is(err, email.ErrInvalidParams):
//		// required SendEmailParams field missing
//	}
//
// Senders never retry. Deciding whether to retry, queue or surface a failure
// is up to the caller.
package email
