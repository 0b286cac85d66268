package tenantmail

import (
	"crypto/sha256"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantmail/core/validator"
	"github.com/dmitrymomot/tenantmail/integration/email/smtp"
	"github.com/dmitrymomot/tenantmail/pkg/secrets"
)

// Settings is a tenant's stored SMTP configuration. Every SMTP column is
// nullable; a nil field means the tenant never set it.
type Settings struct {
	TenantID          uuid.UUID
	Host              *string
	Port              *int
	Username          *string
	PasswordEncrypted *string
	From              *string
	Secure            *bool
	UpdatedAt         time.Time
}

// TenantConfig decrypts the stored password and returns the dispatcher input.
// Missing fields stay nil so the dispatcher reports the configuration as missing.
func (s Settings) TenantConfig(appKey []byte) (smtp.TenantConfig, error) {
	cfg := smtp.TenantConfig{
		Host:     s.Host,
		Port:     s.Port,
		Username: s.Username,
		From:     s.From,
		Secure:   s.Secure,
	}
	if s.PasswordEncrypted != nil {
		password, err := secrets.DecryptString(appKey, workspaceKey(s.TenantID), *s.PasswordEncrypted)
		if err != nil {
			return smtp.TenantConfig{}, err
		}
		cfg.Password = &password
	}
	return cfg, nil
}

// SMTPInput is a full set of SMTP settings as entered by an operator.
type SMTPInput struct {
	Host     string `json:"host" validate:"required,hostname_rfc1123|ip"`
	Port     int    `json:"port" validate:"min=1,max=65535"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	From     string `json:"from" validate:"required,mailbox"`
	Secure   bool   `json:"secure"`
}

// Validate checks required fields, the port range and the sender address.
func (in SMTPInput) Validate() error {
	if err := validator.Struct(in); err != nil {
		return errors.Join(ErrInvalidSettings, err)
	}
	return nil
}

// ValidateCredentials checks only what a connection test needs; From is ignored.
func (in SMTPInput) ValidateCredentials() error {
	if err := validator.StructExcept(in, "From"); err != nil {
		return errors.Join(ErrInvalidSettings, err)
	}
	return nil
}

// Credentials returns the connection part of the input.
func (in SMTPInput) Credentials() smtp.Credentials {
	return smtp.Credentials{
		Host:     in.Host,
		Port:     in.Port,
		Username: in.Username,
		Password: in.Password,
		Secure:   in.Secure,
	}
}

// settings encrypts the password and returns a storable record.
func (in SMTPInput) settings(tenantID uuid.UUID, appKey []byte) (Settings, error) {
	encrypted, err := secrets.EncryptString(appKey, workspaceKey(tenantID), in.Password)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		TenantID:          tenantID,
		Host:              &in.Host,
		Port:              &in.Port,
		Username:          &in.Username,
		PasswordEncrypted: &encrypted,
		From:              &in.From,
		Secure:            &in.Secure,
	}, nil
}

// workspaceKey binds ciphertexts to a tenant.
func workspaceKey(tenantID uuid.UUID) []byte {
	sum := sha256.Sum256(tenantID[:])
	return sum[:]
}
