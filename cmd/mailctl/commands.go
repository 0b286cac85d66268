package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/tenantmail/core/config"
	"github.com/dmitrymomot/tenantmail/core/email"
	"github.com/dmitrymomot/tenantmail/core/health"
	"github.com/dmitrymomot/tenantmail/core/logger"
	"github.com/dmitrymomot/tenantmail/core/tenantmail"
	"github.com/dmitrymomot/tenantmail/integration/database/pg"
	"github.com/dmitrymomot/tenantmail/integration/email/smtp"
)

var errUsage = errors.New("usage error")

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, log *slog.Logger, out io.Writer, args []string) error
}

var commands = []command{
	{name: "test", summary: "verify SMTP credentials without sending mail", run: runTest},
	{name: "set", summary: "verify and store a tenant's SMTP settings", run: runSet},
	{name: "clear", summary: "remove a tenant's SMTP settings", run: runClear},
	{name: "send", summary: "send an HTML email through a tenant's SMTP server", run: runSend},
	{name: "health", summary: "check the database and, optionally, a tenant's SMTP server", run: runHealth},
	{name: "migrate", summary: "apply database migrations", run: runMigrate},
}

func run(ctx context.Context, args []string, log *slog.Logger, out io.Writer) error {
	if len(args) == 0 {
		printUsage(out)
		return errUsage
	}
	for _, c := range commands {
		if c.name == args[0] {
			return c.run(ctx, log.With(logger.Action(c.name)), out, args[1:])
		}
	}
	printUsage(out)
	return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "Usage: mailctl <command> [flags]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(out, "  %-8s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'mailctl <command> -h' for command flags.")
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("mailctl "+name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

// smtpFlags registers the flags shared by test and set.
type smtpFlags struct {
	host, user, pass, from *string
	port                   *int
	secure                 *bool
}

func addSMTPFlags(fs *flag.FlagSet, withFrom bool) smtpFlags {
	f := smtpFlags{
		host:   fs.String("host", "", "SMTP server host (required)"),
		port:   fs.Int("port", 587, "SMTP server port"),
		user:   fs.String("user", "", "SMTP username"),
		pass:   fs.String("pass", "", "SMTP password (defaults to $SMTP_PASSWORD)"),
		secure: fs.Bool("secure", true, "require TLS; implicit on port 465, STARTTLS otherwise"),
	}
	if withFrom {
		f.from = fs.String("from", "", "sender address, e.g. \"Acme <noreply@example.com>\"")
	}
	return f
}

func (f smtpFlags) input() tenantmail.SMTPInput {
	in := tenantmail.SMTPInput{
		Host:     *f.host,
		Port:     *f.port,
		Username: *f.user,
		Password: *f.pass,
		Secure:   *f.secure,
	}
	if in.Password == "" {
		in.Password = os.Getenv("SMTP_PASSWORD")
	}
	if f.from != nil {
		in.From = *f.from
	}
	return in
}

func parseTenant(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: -tenant is required", errUsage)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid -tenant: %v", errUsage, err)
	}
	return id, nil
}

func runTest(ctx context.Context, log *slog.Logger, out io.Writer, args []string) error {
	fs := newFlagSet("test", out)
	flags := addSMTPFlags(fs, false)
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := flags.input()
	if in.Host == "" {
		return fmt.Errorf("%w: -host is required", errUsage)
	}

	mode := smtp.SelectTLSMode(in.Port, in.Secure)
	err := smtp.New().TestConnection(ctx, in.Host, in.Port, in.Username, in.Password, in.Secure)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "smtp connection ok",
		logger.SMTPServer(in.Host, in.Port),
		logger.TLSMode(mode.String()),
	)
	fmt.Fprintf(out, "OK %s:%d (%s)\n", in.Host, in.Port, mode)
	return nil
}

func runSet(ctx context.Context, log *slog.Logger, out io.Writer, args []string) error {
	fs := newFlagSet("set", out)
	tenant := fs.String("tenant", "", "tenant UUID (required)")
	flags := addSMTPFlags(fs, true)
	if err := fs.Parse(args); err != nil {
		return err
	}
	tenantID, err := parseTenant(*tenant)
	if err != nil {
		return err
	}

	return withService(ctx, log, func(svc *tenantmail.Service, _ *pgxpool.Pool) error {
		saved, err := svc.UpdateSettings(ctx, tenantID, flags.input())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "saved settings for %s at %s\n", tenantID, saved.UpdatedAt.Format("2006-01-02 15:04:05"))
		return nil
	})
}

func runClear(ctx context.Context, log *slog.Logger, out io.Writer, args []string) error {
	fs := newFlagSet("clear", out)
	tenant := fs.String("tenant", "", "tenant UUID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	tenantID, err := parseTenant(*tenant)
	if err != nil {
		return err
	}

	return withService(ctx, log, func(svc *tenantmail.Service, _ *pgxpool.Pool) error {
		return svc.ClearSettings(ctx, tenantID)
	})
}

func runSend(ctx context.Context, log *slog.Logger, out io.Writer, args []string) error {
	fs := newFlagSet("send", out)
	tenant := fs.String("tenant", "", "tenant UUID (required)")
	to := fs.String("to", "", "comma-separated recipient addresses (required)")
	subject := fs.String("subject", "", "message subject (required)")
	body := fs.String("body", "", "HTML body")
	bodyFile := fs.String("body-file", "", "read the HTML body from this file")
	tag := fs.String("tag", "", "tag recorded in logs")
	concurrency := fs.Int("concurrency", 4, "maximum parallel sends")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tenantID, err := parseTenant(*tenant)
	if err != nil {
		return err
	}
	recipients := splitList(*to)
	if len(recipients) == 0 {
		return fmt.Errorf("%w: -to is required", errUsage)
	}

	html := *body
	if *bodyFile != "" {
		data, err := os.ReadFile(*bodyFile)
		if err != nil {
			return fmt.Errorf("read body file: %w", err)
		}
		html = string(data)
	}

	return withService(ctx, log, func(svc *tenantmail.Service, _ *pgxpool.Pool) error {
		return sendAll(ctx, svc, tenantID, recipients, email.SendEmailParams{
			Subject:  *subject,
			BodyHTML: html,
			Tag:      *tag,
		}, *concurrency, out)
	})
}

type tenantSender interface {
	SendEmail(ctx context.Context, tenantID uuid.UUID, params email.SendEmailParams) error
}

// sendAll sends one message per recipient. Every recipient is attempted; the
// returned error joins the individual failures.
func sendAll(ctx context.Context, svc tenantSender, tenantID uuid.UUID, recipients []string, params email.SendEmailParams, limit int, out io.Writer) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(max(limit, 1))

	for _, rcpt := range recipients {
		p := params
		p.SendTo = rcpt
		g.Go(func() error {
			err := svc.SendEmail(ctx, tenantID, p)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", rcpt, err))
				fmt.Fprintf(out, "FAIL %s\n", rcpt)
				return nil
			}
			fmt.Fprintf(out, "SENT %s\n", rcpt)
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

func runHealth(ctx context.Context, log *slog.Logger, out io.Writer, args []string) error {
	fs := newFlagSet("health", out)
	tenant := fs.String("tenant", "", "also check this tenant's SMTP server")
	flags := addSMTPFlags(fs, false)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var tenantID uuid.UUID
	if *tenant != "" {
		id, err := parseTenant(*tenant)
		if err != nil {
			return err
		}
		tenantID = id
	}

	return withService(ctx, log, func(svc *tenantmail.Service, pool *pgxpool.Pool) error {
		checks := []health.Check{health.Named("database", pg.Healthcheck(pool))}
		if tenantID != uuid.Nil {
			checks = append(checks, health.Named("tenant smtp", svc.Healthcheck(tenantID)))
		}
		if in := flags.input(); in.Host != "" {
			checks = append(checks, health.Named("smtp "+in.Host, smtp.Healthcheck(smtp.New(), in.Credentials())))
		}
		if err := health.Readiness(ctx, log, checks...); err != nil {
			return err
		}
		fmt.Fprintln(out, "READY")
		return nil
	})
}

func runMigrate(ctx context.Context, log *slog.Logger, out io.Writer, args []string) error {
	fs := newFlagSet("migrate", out)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var dbCfg pg.Config
	if err := config.Load(&dbCfg); err != nil {
		return err
	}
	pool, err := pg.Connect(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer shutdown(ctx, log, pg.Shutdown(pool))

	return pg.Migrate(ctx, pool, tenantmail.Migrations(), dbCfg.MigrationsTable, log.With(logger.Component("migration")))
}

// withService connects to the database, builds the service and runs fn.
func withService(ctx context.Context, log *slog.Logger, fn func(*tenantmail.Service, *pgxpool.Pool) error) error {
	var dbCfg pg.Config
	if err := config.Load(&dbCfg); err != nil {
		return err
	}
	var mailCfg tenantmail.Config
	if err := config.Load(&mailCfg); err != nil {
		return err
	}
	if err := mailCfg.Validate(); err != nil {
		return err
	}
	appKey, err := mailCfg.DecodeAppKey()
	if err != nil {
		return err
	}

	pool, err := pg.Connect(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer shutdown(ctx, log, pg.Shutdown(pool))

	dispatcher := smtp.New()
	svc, err := tenantmail.NewService(
		tenantmail.NewPGRepository(pool),
		dispatcher,
		tenantmail.NewSenderFactory(mailCfg, dispatcher),
		appKey,
		tenantmail.WithLogger(log),
	)
	if err != nil {
		return err
	}

	return fn(svc, pool)
}

// shutdown runs a cleanup hook even when ctx is already cancelled.
func shutdown(ctx context.Context, log *slog.Logger, hook func(context.Context) error) {
	if err := hook(context.WithoutCancel(ctx)); err != nil {
		log.ErrorContext(ctx, "shutdown failed", logger.Error(err))
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
