// Package smtp sends tenant email and validates administrator-supplied SMTP
// credentials on top of github.com/wneessen/go-mail.
//
// Each tenant stores its own SMTP settings. The Dispatcher turns those
// settings into a transport for a single call and hands either a message or
// a bare connection check to go-mail.
//
// Basic usage:
//
//	d := smtp.New()
//
//	cfg := smtp.TenantConfig{
//		Host:     ptr("smtp.example.com"),
//		Port:     ptr(587),
//		Username: ptr("mailer@example.com"),
//		Password: ptr("app-password"),
//		From:     ptr("Acme <noreply@example.com>"),
//		// Secure left nil: treated as true
//	}
//
//	err := d.Send(ctx, cfg, "user@example.com", "Welcome!", "<h1>Hello</h1>")
//
//	// Before saving new credentials:
//	err = d.TestConnection(ctx, "smtp.example.com", 587, "mailer@example.com", "app-password", true)
//
// # TLS Modes
//
// The mode is derived from the stored port and secure flag by SelectTLSMode:
//
//   - port 465, secure: implicit TLS from connect ("tls")
//   - other port, secure: STARTTLS, required; no plaintext fallback ("starttls")
//   - secure=false: no encryption, e.g. a local relay ("plain")
//
// # Timeouts
//
// Send is bounded by SendTimeout (10s) and TestConnection by TestTimeout (5s).
// The bound covers the whole SMTP dialogue, not only the TCP dial.
//
// # Errors
//
// Errors come from the core/email taxonomy. Transport failures (DNS, connect,
// TLS handshake, authentication, timeout, SMTP rejection) all surface as
// email.ErrFailedToSendEmail with the go-mail error joined for diagnostics.
// Nothing is logged or retried here.
//
// # EmailSender
//
// NewSender binds a TenantConfig to a Dispatcher so that tenant mail can flow
// through the generic email.EmailSender interface:
//
//	sender := smtp.NewSender(d, cfg)
//	err := sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "user@example.com",
//		Subject:  "Welcome!",
//		BodyHTML: "<h1>Welcome to our service</h1>",
//	})
package smtp
