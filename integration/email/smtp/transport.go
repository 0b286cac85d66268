package smtp

import (
	"context"
	"crypto/tls"
	"net"
	"sync"
	"time"

	"github.com/wneessen/go-mail"
)

// Transport describes the SMTP client built for a single call.
// It is created fresh for every Send or TestConnection and discarded afterwards.
type Transport struct {
	Credentials
	Mode    TLSMode
	Timeout time.Duration

	conns *connSet
}

func newTransport(creds Credentials, timeout time.Duration) Transport {
	return Transport{
		Credentials: creds,
		Mode:        SelectTLSMode(creds.Port, creds.Secure),
		Timeout:     timeout,
		conns:       &connSet{},
	}
}

// connSet tracks the sockets dialed during one call. go-mail drops the
// connection without closing it when the greeting, EHLO, STARTTLS or AUTH
// fails, so the dispatcher closes whatever was dialed once the call ends.
type connSet struct {
	mu    sync.Mutex
	conns []net.Conn
}

func (s *connSet) add(c net.Conn) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns = append(s.conns, c)
}

func (s *connSet) closeAll() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conns {
		_ = c.Close()
	}
	s.conns = nil
}

// Client is the part of the go-mail client the dispatcher drives.
type Client interface {
	DialWithContext(ctx context.Context) error
	Send(messages ...*mail.Msg) error
	Close() error
}

// ClientFactory builds a Client for the given transport parameters.
type ClientFactory func(t Transport) (Client, error)

// newMailClient maps a Transport onto go-mail options.
func newMailClient(t Transport, base *tls.Config) (Client, error) {
	tlsConfig := tlsConfigFor(t.Host, base)

	opts := []mail.Option{
		mail.WithTimeout(t.Timeout),
		mail.WithUsername(t.Username),
		mail.WithPassword(t.Password),
		mail.WithTLSConfig(tlsConfig),
		mail.WithDialContextFunc(dialContext(t.Mode, t.Timeout, tlsConfig, t.conns)),
	}

	switch t.Mode {
	case TLSModeImplicit:
		// WithSSLPort resets the port, so WithPort must come after it.
		opts = append(opts,
			mail.WithSSLPort(false),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		)
	case TLSModeSTARTTLS:
		opts = append(opts,
			mail.WithTLSPolicy(mail.TLSMandatory),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		)
	default:
		opts = append(opts,
			mail.WithTLSPolicy(mail.NoTLS),
			mail.WithSMTPAuth(mail.SMTPAuthPlainNoEnc),
		)
	}
	opts = append(opts, mail.WithPort(t.Port))

	client, err := mail.NewClient(t.Host, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func tlsConfigFor(host string, base *tls.Config) *tls.Config {
	var cfg *tls.Config
	if base != nil {
		cfg = base.Clone()
	} else {
		cfg = &tls.Config{}
	}
	if cfg.ServerName == "" {
		cfg.ServerName = host
	}
	if cfg.MinVersion == 0 {
		cfg.MinVersion = tls.VersionTLS12
	}
	return cfg
}

// dialContext returns a dialer that performs the TLS handshake itself for
// implicit mode and bounds the whole SMTP dialogue by timeout, so a server
// that accepts but never answers cannot hold the call open. Every returned
// connection is recorded in conns.
func dialContext(mode TLSMode, timeout time.Duration, tlsConfig *tls.Config, conns *connSet) mail.DialContextFunc {
	return func(ctx context.Context, network, address string) (net.Conn, error) {
		netDialer := &net.Dialer{Timeout: timeout}

		var (
			conn net.Conn
			err  error
		)
		if mode == TLSModeImplicit {
			tlsDialer := &tls.Dialer{NetDialer: netDialer, Config: tlsConfig}
			conn, err = tlsDialer.DialContext(ctx, network, address)
		} else {
			conn, err = netDialer.DialContext(ctx, network, address)
		}
		if err != nil {
			return nil, err
		}

		if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
			_ = conn.Close()
			return nil, err
		}
		conns.add(conn)
		return conn, nil
	}
}
