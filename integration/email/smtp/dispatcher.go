package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/dmitrymomot/tenantmail/core/email"
)

const (
	// SendTimeout bounds a single send, from dial to QUIT.
	SendTimeout = 10 * time.Second
	// TestTimeout bounds a credential check.
	TestTimeout = 5 * time.Second
)

var errHeaderInjection = errors.New("header value contains CR or LF")

// Dispatcher sends tenant email and verifies SMTP credentials.
// It holds no per-call state and is safe for concurrent use.
// Every call opens exactly one connection and never retries.
type Dispatcher struct {
	newClient ClientFactory
	tlsConfig *tls.Config
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithClientFactory replaces the go-mail client constructor.
func WithClientFactory(f ClientFactory) Option {
	return func(d *Dispatcher) {
		if f != nil {
			d.newClient = f
		}
	}
}

// WithTLSConfig sets the base TLS configuration, e.g. custom root CAs.
// ServerName defaults to the SMTP host when left empty.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(d *Dispatcher) {
		d.tlsConfig = cfg
	}
}

// New creates a Dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{}
	d.newClient = func(t Transport) (Client, error) {
		return newMailClient(t, d.tlsConfig)
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Send delivers a single-part HTML message using the tenant's SMTP settings.
//
// Errors, all matched with errors.Is:
//   - email.ErrConfigurationMissing: a required field is unset; nothing is dialed
//   - email.ErrInvalidAddress: from or to does not parse
//   - email.ErrBuildMessage: the message could not be assembled
//   - email.ErrFailedToSendEmail: any transport-level failure
func (d *Dispatcher) Send(ctx context.Context, cfg TenantConfig, to, subject, body string) error {
	settings, err := cfg.Resolve()
	if err != nil {
		return err
	}

	msg, err := buildMessage(settings.From, to, subject, body)
	if err != nil {
		return err
	}

	return d.deliver(ctx, newTransport(settings.Credentials, SendTimeout), func(c Client) error {
		if err := c.Send(msg); err != nil {
			return fmt.Errorf("failed to deliver message: %w", err)
		}
		return nil
	})
}

// TestConnection connects, negotiates TLS and authenticates without sending
// a message. Failures are reported as email.ErrFailedToSendEmail.
func (d *Dispatcher) TestConnection(ctx context.Context, host string, port int, username, password string, secure bool) error {
	creds := Credentials{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		Secure:   secure,
	}
	return d.deliver(ctx, newTransport(creds, TestTimeout), nil)
}

func (d *Dispatcher) deliver(ctx context.Context, t Transport, fn func(Client) error) error {
	ctx, cancel := context.WithTimeout(ctx, t.Timeout)
	defer cancel()
	defer t.conns.closeAll()

	client, err := d.newClient(t)
	if err != nil {
		return errors.Join(email.ErrFailedToSendEmail, fmt.Errorf("failed to configure SMTP client: %w", err))
	}

	addr := net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
	if err := client.DialWithContext(ctx); err != nil {
		_ = client.Close()
		return errors.Join(email.ErrFailedToSendEmail, fmt.Errorf("failed to connect to SMTP server %s (%s): %w", addr, t.Mode, err))
	}

	if fn != nil {
		if err := fn(client); err != nil {
			_ = client.Close()
			return errors.Join(email.ErrFailedToSendEmail, err)
		}
	}

	// Quit errors are non-fatal: the session already succeeded and
	// some servers drop the connection right after the last reply.
	_ = client.Close()

	return nil
}

// buildMessage assembles the single-part text/html message.
func buildMessage(from, to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if err := msg.From(from); err != nil {
		return nil, errors.Join(email.ErrInvalidAddress, fmt.Errorf("from %q: %w", from, err))
	}
	if err := msg.To(to); err != nil {
		return nil, errors.Join(email.ErrInvalidAddress, fmt.Errorf("to %q: %w", to, err))
	}
	if strings.ContainsAny(subject, "\r\n") {
		return nil, errors.Join(email.ErrBuildMessage, fmt.Errorf("subject: %w", errHeaderInjection))
	}

	msg.Subject(subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextHTML, body)

	return msg, nil
}
