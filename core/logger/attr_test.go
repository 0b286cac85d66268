package logger_test

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantmail/core/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	t.Parallel()
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "0", g[0].Key)
	assert.Equal(t, "2", g[1].Key)
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestTiming(t *testing.T) {
	t.Parallel()

	attr := logger.Duration(5 * time.Second)
	require.Equal(t, "duration", attr.Key)
	assert.Equal(t, 5*time.Second, attr.Value.Duration())

	elapsed := logger.Elapsed(time.Now().Add(-500 * time.Millisecond))
	require.Equal(t, "elapsed", elapsed.Key)
	assert.GreaterOrEqual(t, elapsed.Value.Duration(), 500*time.Millisecond)
}

func TestStringAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		attr  func(string) slog.Attr
		key   string
		empty bool
	}{
		{name: "service", attr: logger.Service, key: "service", empty: true},
		{name: "environment", attr: logger.Environment, key: "env", empty: true},
		{name: "tls mode", attr: logger.TLSMode, key: "tls_mode", empty: true},
		{name: "recipient", attr: logger.Recipient, key: "recipient", empty: true},
		{name: "tag", attr: logger.Tag, key: "tag", empty: true},
		{name: "component", attr: logger.Component, key: "component"},
		{name: "event", attr: logger.Event, key: "event"},
		{name: "action", attr: logger.Action, key: "action"},
		{name: "result", attr: logger.Result, key: "result"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			attr := tt.attr("value")
			require.Equal(t, tt.key, attr.Key)
			assert.Equal(t, "value", attr.Value.String())

			if tt.empty {
				assert.True(t, tt.attr("").Equal(slog.Attr{}))
			}
		})
	}
}

func TestIDAndKey(t *testing.T) {
	t.Parallel()

	attr := logger.ID("message_id", "abc")
	require.Equal(t, "message_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.Any())
	assert.True(t, logger.ID("k", nil).Equal(slog.Attr{}))

	type payload struct{ Name string }
	attr = logger.Key("data", payload{Name: "x"})
	assert.Equal(t, payload{Name: "x"}, attr.Value.Any())
	assert.True(t, logger.Key("k", nil).Equal(slog.Attr{}))
}

func TestCounters(t *testing.T) {
	t.Parallel()
	assert.Equal(t, int64(3), logger.Count("attempts", 3).Value.Int64())

	attr := logger.RetryCount(5)
	require.Equal(t, "retry_count", attr.Key)
	assert.Equal(t, int64(5), attr.Value.Int64())
}

func TestTenantID(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	attr := logger.TenantID(id)
	require.Equal(t, "tenant_id", attr.Key)
	assert.Equal(t, id, attr.Value.Any())

	assert.True(t, logger.TenantID(nil).Equal(slog.Attr{}))
}

func TestSMTPServer(t *testing.T) {
	t.Parallel()

	attr := logger.SMTPServer("smtp.example.com", 587)
	require.Equal(t, "smtp", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "smtp.example.com", g[0].Value.String())
	assert.Equal(t, int64(587), g[1].Value.Int64())

	assert.True(t, logger.SMTPServer("", 25).Equal(slog.Attr{}))
}

func TestStack(t *testing.T) {
	t.Parallel()
	attr := logger.Stack()
	require.Equal(t, "stack", attr.Key)
	assert.Contains(t, attr.Value.String(), "TestStack")
}

func TestCaller(t *testing.T) {
	t.Parallel()
	attr := logger.Caller()
	require.Equal(t, "caller", attr.Key)
	caller := attr.Value.String()
	assert.Contains(t, caller, "attr_test.go")
	assert.Len(t, strings.Split(caller, ":"), 2)
}
