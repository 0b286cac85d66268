package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/tenantmail/core/email"
)

func TestDevSender_SendEmail(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "emails")
	sender := email.NewDevSender(dir, "noreply@example.com")

	err := sender.SendEmail(context.Background(), email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Welcome aboard",
		BodyHTML: "<h1>Welcome</h1>",
		Tag:      "Welcome Email!",
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var htmlFile, jsonFile string
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".html":
			htmlFile = e.Name()
		case ".json":
			jsonFile = e.Name()
		}
	}
	require.NotEmpty(t, htmlFile)
	require.NotEmpty(t, jsonFile)
	assert.Contains(t, htmlFile, "_welcome_email_user_at_example.com_")
	assert.Equal(t, strings.TrimSuffix(htmlFile, ".html"), strings.TrimSuffix(jsonFile, ".json"))

	body, err := os.ReadFile(filepath.Join(dir, htmlFile))
	require.NoError(t, err)
	assert.Equal(t, "<h1>Welcome</h1>", string(body))

	raw, err := os.ReadFile(filepath.Join(dir, jsonFile))
	require.NoError(t, err)

	var meta map[string]string
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "noreply@example.com", meta["from"])
	assert.Equal(t, "user@example.com", meta["send_to"])
	assert.Equal(t, "Welcome aboard", meta["subject"])
	assert.Equal(t, "Welcome Email!", meta["tag"])
	assert.NotEmpty(t, meta["timestamp"])
}

func TestDevSender_FallsBackToSubjectForFilename(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sender := email.NewDevSender(dir, "")

	err := sender.SendEmail(context.Background(), email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Reset / Password?",
		BodyHTML: "<p>reset</p>",
	})
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "*_reset__password_*.html"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestDevSender_ConcurrentSendsKeepEveryMessage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sender := email.NewDevSender(dir, "noreply@example.com")

	recipients := []string{"a@example.com", "b@example.com", "c@example.com", "a@example.com"}

	var g errgroup.Group
	for _, rcpt := range recipients {
		g.Go(func() error {
			return sender.SendEmail(context.Background(), email.SendEmailParams{
				SendTo:   rcpt,
				Subject:  "Hi",
				BodyHTML: "<p>Hi</p>",
			})
		})
	}
	require.NoError(t, g.Wait())

	htmlFiles, err := filepath.Glob(filepath.Join(dir, "*.html"))
	require.NoError(t, err)
	assert.Len(t, htmlFiles, len(recipients))

	jsonFiles, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.Len(t, jsonFiles, len(recipients))
}

func TestDevSender_InvalidParams(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sender := email.NewDevSender(dir, "")

	err := sender.SendEmail(context.Background(), email.SendEmailParams{SendTo: "user@example.com"})
	assert.ErrorIs(t, err, email.ErrInvalidParams)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDevSender_InvalidRecipient(t *testing.T) {
	t.Parallel()

	sender := email.NewDevSender(t.TempDir(), "")

	err := sender.SendEmail(context.Background(), email.SendEmailParams{
		SendTo:   "not-an-email",
		Subject:  "Hi",
		BodyHTML: "<p>Hi</p>",
	})
	assert.ErrorIs(t, err, email.ErrInvalidAddress)
	assert.NotErrorIs(t, err, email.ErrFailedToSendEmail)
}

func TestDevSender_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := email.NewDevSender(t.TempDir(), "").SendEmail(ctx, email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Hi",
		BodyHTML: "<p>Hi</p>",
	})
	assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	assert.ErrorIs(t, err, context.Canceled)
}
