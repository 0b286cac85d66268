// Package tenantmail sends email on behalf of tenants through each tenant's
// own SMTP server and manages the stored SMTP settings.
//
// Settings live in the tenant_smtp_settings table (see Migrations). Every SMTP
// column is nullable; a send for a tenant with incomplete settings fails with
// email.ErrConfigurationMissing before any connection is made. Passwords are
// encrypted with pkg/secrets using the application key and a per-tenant key
// derived from the tenant ID.
//
// # Usage
//
//	var cfg tenantmail.Config
//	config.MustLoad(&cfg)
//	appKey, err := cfg.DecodeAppKey()
//
//	dispatcher := smtp.New()
//	svc, err := tenantmail.NewService(
//		tenantmail.NewPGRepository(pool),
//		dispatcher,
//		tenantmail.NewSenderFactory(cfg, dispatcher),
//		appKey,
//		tenantmail.WithLogger(log),
//	)
//
//	// Verify and store credentials. Nothing is stored if the server rejects them.
//	_, err = svc.UpdateSettings(ctx, tenantID, tenantmail.SMTPInput{
//		Host:     "smtp.example.com",
//		Port:     587,
//		Username: "mailer@example.com",
//		Password: "secret",
//		From:     "Acme <noreply@example.com>",
//		Secure:   true,
//	})
//
//	err = svc.SendEmail(ctx, tenantID, email.SendEmailParams{
//		SendTo:   "user@example.com",
//		Subject:  "Welcome",
//		BodyHTML: "<p>Hello</p>",
//	})
//
// With MAILER_MODE=dev, NewSenderFactory returns senders that write messages
// to MAILER_DEV_DIR instead of connecting to SMTP servers.
//
// # Errors
//
// SendEmail returns the sender's errors unchanged, so callers switch on the
// core/email sentinels. UpdateSettings and TestConnection return
// ErrInvalidSettings for malformed input, and UpdateSettings wraps server
// rejections with ErrVerificationFailed.
package tenantmail
