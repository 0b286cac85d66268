// Command mailctl is an operator tool for tenant SMTP settings: it verifies
// credentials, stores and clears them, sends mail on a tenant's behalf and
// applies database migrations.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/dmitrymomot/tenantmail/core/config"
	"github.com/dmitrymomot/tenantmail/core/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var cfg logger.Config
	config.MustLoad(&cfg)

	log := logger.NewFromConfig(cfg, logger.WithOutput(os.Stderr))

	err := run(ctx, os.Args[1:], log, os.Stderr)
	stop()
	sentry.Flush(2 * time.Second)

	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		log.Error("mailctl failed", logger.Error(err))
		os.Exit(1)
	}
}
