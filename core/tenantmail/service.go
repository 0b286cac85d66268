package tenantmail

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantmail/core/email"
	"github.com/dmitrymomot/tenantmail/core/logger"
	"github.com/dmitrymomot/tenantmail/integration/email/smtp"
	"github.com/dmitrymomot/tenantmail/pkg/secrets"
)

// Service sends tenant email and manages each tenant's SMTP settings.
type Service struct {
	repo    Repository
	tester  ConnectionTester
	senders SenderFactory
	appKey  []byte
	log     *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// NewService wires the service. appKey must be 32 bytes.
func NewService(repo Repository, tester ConnectionTester, senders SenderFactory, appKey []byte, opts ...Option) (*Service, error) {
	if len(appKey) != secrets.KeySize {
		return nil, ErrInvalidAppKey
	}
	s := &Service{
		repo:    repo,
		tester:  tester,
		senders: senders,
		appKey:  appKey,
		log:     logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = slog.New(logger.NewLogHandlerDecorator(s.log.Handler(), logger.TenantFromContext)).
		With(logger.Component("tenantmail"))
	return s, nil
}

// SendEmail sends params using the tenant's stored settings. A tenant with no
// stored settings fails with email.ErrConfigurationMissing. Sender errors are
// returned unchanged.
func (s *Service) SendEmail(ctx context.Context, tenantID uuid.UUID, params email.SendEmailParams) error {
	start := time.Now()
	ctx = logger.WithTenantID(ctx, tenantID)

	settings, err := s.repo.GetSettings(ctx, tenantID)
	if errors.Is(err, ErrTenantNotFound) {
		err = errors.Join(email.ErrConfigurationMissing, err)
	}
	if err != nil {
		s.log.WarnContext(ctx, "tenant email not sent",
			logger.Tag(params.Tag),
			logger.Error(err),
		)
		return err
	}

	cfg, err := settings.TenantConfig(s.appKey)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to decrypt smtp password",
			logger.Error(err),
		)
		return err
	}

	if err := s.senders(cfg).SendEmail(ctx, params); err != nil {
		s.log.ErrorContext(ctx, "tenant email not sent",
			logger.Recipient(params.SendTo),
			logger.Tag(params.Tag),
			logger.Elapsed(start),
			logger.Error(err),
		)
		return err
	}

	s.log.InfoContext(ctx, "tenant email sent",
		logger.Recipient(params.SendTo),
		logger.Tag(params.Tag),
		logger.Elapsed(start),
	)
	return nil
}

// TestConnection checks that the server accepts the credentials in in.
// From is not required.
func (s *Service) TestConnection(ctx context.Context, in SMTPInput) error {
	if err := in.ValidateCredentials(); err != nil {
		return err
	}
	err := s.test(ctx, in.Credentials())
	s.log.InfoContext(ctx, "smtp connection test",
		logger.SMTPServer(in.Host, in.Port),
		logger.Result(result(err)),
		logger.Error(err),
	)
	return err
}

// UpdateSettings verifies in against the server and stores it with the
// password encrypted. Nothing is stored when verification fails.
func (s *Service) UpdateSettings(ctx context.Context, tenantID uuid.UUID, in SMTPInput) (Settings, error) {
	ctx = logger.WithTenantID(ctx, tenantID)
	if err := in.Validate(); err != nil {
		return Settings{}, err
	}

	if err := s.test(ctx, in.Credentials()); err != nil {
		s.log.WarnContext(ctx, "smtp settings rejected",
			logger.SMTPServer(in.Host, in.Port),
			logger.Error(err),
		)
		return Settings{}, errors.Join(ErrVerificationFailed, err)
	}

	record, err := in.settings(tenantID, s.appKey)
	if err != nil {
		return Settings{}, err
	}

	saved, err := s.repo.SaveSettings(ctx, record)
	if err != nil {
		return Settings{}, err
	}

	s.log.InfoContext(ctx, "smtp settings updated",
		logger.SMTPServer(in.Host, in.Port),
	)
	return saved, nil
}

// ClearSettings removes the tenant's settings. Later sends fail with
// email.ErrConfigurationMissing.
func (s *Service) ClearSettings(ctx context.Context, tenantID uuid.UUID) error {
	ctx = logger.WithTenantID(ctx, tenantID)
	if err := s.repo.ClearSettings(ctx, tenantID); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "smtp settings cleared")
	return nil
}

// Healthcheck returns a probe that connects to the tenant's stored SMTP
// server and authenticates without sending mail.
func (s *Service) Healthcheck(tenantID uuid.UUID) func(context.Context) error {
	return func(ctx context.Context) error {
		settings, err := s.repo.GetSettings(ctx, tenantID)
		if errors.Is(err, ErrTenantNotFound) {
			return errors.Join(email.ErrConfigurationMissing, err)
		}
		if err != nil {
			return err
		}

		cfg, err := settings.TenantConfig(s.appKey)
		if err != nil {
			return err
		}
		resolved, err := cfg.Resolve()
		if err != nil {
			return err
		}

		return s.test(ctx, resolved.Credentials)
	}
}

func (s *Service) test(ctx context.Context, c smtp.Credentials) error {
	return s.tester.TestConnection(ctx, c.Host, c.Port, c.Username, c.Password, c.Secure)
}

func result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
