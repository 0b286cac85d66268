package smtp

import "github.com/dmitrymomot/tenantmail/core/email"

// TenantConfig is the SMTP configuration stored on a tenant record.
// Every field is optional at rest; Host, Port, Username, Password and From
// must all be set for the configuration to be usable. Secure defaults to true.
type TenantConfig struct {
	Host     *string
	Port     *int
	Username *string
	Password *string
	From     *string
	Secure   *bool
}

// Credentials identify and authenticate against an SMTP server.
type Credentials struct {
	Host     string
	Port     int
	Username string
	Password string
	Secure   bool
}

// Settings is a fully resolved tenant configuration.
type Settings struct {
	Credentials
	From string
}

// Resolve returns the usable settings or ErrConfigurationMissing when any
// required field is absent. A partial configuration is never acted upon.
func (c TenantConfig) Resolve() (Settings, error) {
	if c.Host == nil || c.Port == nil || c.Username == nil || c.Password == nil || c.From == nil {
		return Settings{}, email.ErrConfigurationMissing
	}

	secure := true
	if c.Secure != nil {
		secure = *c.Secure
	}

	return Settings{
		Credentials: Credentials{
			Host:     *c.Host,
			Port:     *c.Port,
			Username: *c.Username,
			Password: *c.Password,
			Secure:   secure,
		},
		From: *c.From,
	}, nil
}
