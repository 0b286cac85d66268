package smtp_test

import (
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeSMTPServer is a minimal ESMTP server for exercising the dispatcher
// end to end on the loopback interface.
type fakeSMTPServer struct {
	ln         net.Listener
	tlsConfig  *tls.Config // enables STARTTLS when set
	implicit   bool        // wraps the listener in TLS instead
	rejectAuth bool
	hangups    chan struct{}

	mu       sync.Mutex
	commands []string
	messages []string
}

type fakeServerOption func(*fakeSMTPServer)

func withSTARTTLS(cfg *tls.Config) fakeServerOption {
	return func(s *fakeSMTPServer) { s.tlsConfig = cfg }
}

// withImplicitTLS makes the server speak TLS from the first byte, as on port 465.
func withImplicitTLS(cfg *tls.Config) fakeServerOption {
	return func(s *fakeSMTPServer) {
		s.tlsConfig = cfg
		s.implicit = true
	}
}

func withRejectedAuth() fakeServerOption {
	return func(s *fakeSMTPServer) { s.rejectAuth = true }
}

func newFakeSMTPServer(t *testing.T, opts ...fakeServerOption) *fakeSMTPServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &fakeSMTPServer{ln: ln, hangups: make(chan struct{}, 16)}
	for _, opt := range opts {
		opt(s)
	}
	if s.implicit {
		s.ln = tls.NewListener(ln, s.tlsConfig)
	}
	t.Cleanup(func() { _ = ln.Close() })

	go s.serve()
	return s
}

func (s *fakeSMTPServer) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *fakeSMTPServer) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *fakeSMTPServer) handle(conn net.Conn) {
	defer func() { _ = conn.Close() }()
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	tp := textproto.NewConn(conn)
	encrypted := s.implicit

	reply := func(lines ...string) bool {
		for _, l := range lines {
			if err := tp.PrintfLine("%s", l); err != nil {
				return false
			}
		}
		return true
	}

	if !reply("220 fake.local ESMTP ready") {
		return
	}

	for {
		line, err := tp.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				select {
				case s.hangups <- struct{}{}:
				default:
				}
			}
			return
		}
		s.record(line)

		fields := strings.Fields(line)
		if len(fields) == 0 {
			reply("500 5.5.2 Syntax error")
			continue
		}

		switch strings.ToUpper(fields[0]) {
		case "EHLO", "HELO":
			lines := []string{"250-fake.local"}
			if s.tlsConfig != nil && !encrypted {
				lines = append(lines, "250-STARTTLS")
			}
			lines = append(lines, "250-AUTH PLAIN LOGIN", "250 8BITMIME")
			reply(lines...)
		case "STARTTLS":
			if s.tlsConfig == nil || encrypted {
				reply("454 4.7.0 TLS not available")
				continue
			}
			reply("220 2.0.0 Ready to start TLS")
			tlsConn := tls.Server(conn, s.tlsConfig)
			if err := tlsConn.Handshake(); err != nil {
				return
			}
			tp = textproto.NewConn(tlsConn)
			encrypted = true
		case "AUTH":
			if s.rejectAuth {
				reply("535 5.7.8 Authentication credentials invalid")
			} else {
				reply("235 2.7.0 Authentication successful")
			}
		case "DATA":
			reply("354 End data with <CR><LF>.<CR><LF>")
			lines, err := tp.ReadDotLines()
			if err != nil {
				return
			}
			s.addMessage(strings.Join(lines, "\n"))
			reply("250 2.0.0 OK queued")
		case "QUIT":
			reply("221 2.0.0 Bye")
			return
		default:
			reply("250 2.0.0 OK")
		}
	}
}

// waitHangup reports whether a client closed its connection without QUIT
// within d.
func (s *fakeSMTPServer) waitHangup(d time.Duration) bool {
	select {
	case <-s.hangups:
		return true
	case <-time.After(d):
		return false
	}
}

func (s *fakeSMTPServer) record(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, line)
}

func (s *fakeSMTPServer) addMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

func (s *fakeSMTPServer) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

func (s *fakeSMTPServer) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}

func (s *fakeSMTPServer) hasCommand(prefix string) bool {
	for _, c := range s.Commands() {
		if strings.HasPrefix(strings.ToUpper(c), prefix) {
			return true
		}
	}
	return false
}

// unusedPort returns a loopback port with nothing listening on it.
func unusedPort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

// silentServer accepts connections and never writes a greeting.
func silentServer(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
	})

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()

	return ln.Addr().(*net.TCPAddr).Port
}
