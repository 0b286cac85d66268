package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }

func TestMultiHandler(t *testing.T) {
	t.Parallel()

	var info, warn bytes.Buffer
	h := newMultiHandler(
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)

	ctx := context.Background()
	assert.True(t, h.Enabled(ctx, slog.LevelInfo))
	assert.False(t, h.Enabled(ctx, slog.LevelDebug))

	log := slog.New(h).With(slog.String("component", "dispatcher"))
	log.Info("info only")
	log.Warn("both")

	assert.Contains(t, info.String(), "info only")
	assert.Contains(t, info.String(), "both")
	assert.NotContains(t, warn.String(), "info only")
	assert.Contains(t, warn.String(), `"component":"dispatcher"`)
}

func TestMultiHandler_DeliversPastFailures(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := newMultiHandler(
		failingHandler{slog.NewJSONHandler(&bytes.Buffer{}, nil)},
		slog.NewJSONHandler(&buf, nil),
	)

	rec := slog.NewRecord(time.Now(), slog.LevelError, "send failed", 0)
	err := h.Handle(context.Background(), rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink down")
	assert.Contains(t, buf.String(), "send failed")
}

func TestSentryLogLevels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []slog.Level{slog.LevelWarn, slog.LevelError}, sentryLogLevels(slog.LevelWarn))
	assert.Equal(t, []slog.Level{slog.LevelError}, sentryLogLevels(slog.LevelError))
	assert.Len(t, sentryLogLevels(slog.LevelDebug), 4)
	assert.Equal(t, []slog.Level{slog.LevelError}, sentryLogLevels(slog.Level(100)))
}
