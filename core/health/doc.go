// Package health runs dependency readiness checks.
//
// Probes follow the func(context.Context) error signature used by
// pg.Healthcheck, smtp.Healthcheck and tenantmail.Service.Healthcheck:
//
//	err := health.Readiness(ctx, log,
//		health.Named("database", pg.Healthcheck(pool)),
//		health.Named("smtp", svc.Healthcheck(tenantID)),
//	)
//	if errors.Is(err, health.ErrNotReady) {
//		// err lists each failed check by name
//	}
//
// Checks run concurrently; Readiness waits for all of them.
package health
