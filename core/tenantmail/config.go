package tenantmail

import (
	"encoding/base64"
	"errors"

	"github.com/dmitrymomot/tenantmail/core/email"
	"github.com/dmitrymomot/tenantmail/core/validator"
	"github.com/dmitrymomot/tenantmail/pkg/secrets"
)

// Mode selects the delivery backend.
type Mode string

const (
	ModeSMTP Mode = "smtp"
	ModeDev  Mode = "dev"
)

// Config is loaded from the environment with config.Load.
type Config struct {
	Mode    Mode   `env:"MAILER_MODE" envDefault:"smtp" validate:"oneof=smtp dev"`
	DevDir  string `env:"MAILER_DEV_DIR" envDefault:"./tmp/emails" validate:"required_if=Mode dev"`
	DevFrom string `env:"MAILER_DEV_FROM" envDefault:"Dev Mailer <dev@localhost>"`

	// Base64-encoded 32-byte key used to encrypt stored SMTP passwords.
	AppKey string `env:"SECRETS_APP_KEY,required"`
}

// Validate checks the mode and the dev directory. Failures match
// email.ErrInvalidConfig.
func (c Config) Validate() error {
	if err := validator.Struct(c); err != nil {
		return errors.Join(email.ErrInvalidConfig, err)
	}
	return nil
}

// DecodeAppKey returns the raw application encryption key.
func (c Config) DecodeAppKey() ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(c.AppKey)
	if err != nil {
		return nil, errors.Join(email.ErrInvalidConfig, ErrInvalidAppKey, err)
	}
	if len(key) != secrets.KeySize {
		return nil, errors.Join(email.ErrInvalidConfig, ErrInvalidAppKey)
	}
	return key, nil
}
