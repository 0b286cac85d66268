package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/tenantmail/core/logger"
)

// ErrNotReady is returned by Readiness when at least one check fails.
var ErrNotReady = errors.New("health: dependency not ready")

// Probe checks a single dependency.
type Probe func(ctx context.Context) error

// Check is a named probe.
type Check struct {
	Name  string
	Probe Probe
}

// Named pairs a probe with the name used in logs and errors.
func Named(name string, probe Probe) Check {
	return Check{Name: name, Probe: probe}
}

// Readiness runs all checks concurrently and reports every failure, each
// prefixed with its check name. A nil probe is skipped.
func Readiness(ctx context.Context, log *slog.Logger, checks ...Check) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)

	for _, c := range checks {
		if c.Probe == nil {
			continue
		}
		g.Go(func() error {
			start := time.Now()
			err := c.Probe(ctx)
			if err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component(c.Name),
					logger.Elapsed(start),
					logger.Error(err),
				)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
				mu.Unlock()
				return nil
			}
			log.DebugContext(ctx, "readiness check passed", logger.Component(c.Name), logger.Elapsed(start))
			return nil
		})
	}
	_ = g.Wait()

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrNotReady}, errs...)...)
	}
	return nil
}
