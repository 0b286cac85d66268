// Package pg provides PostgreSQL connection management, goose migrations,
// health checking and context-scoped transactions on top of pgx.
//
// # Configuration
//
// Config is populated from the environment:
//
//	type Config struct {
//		ConnectionString  string        `env:"PG_CONN_URL,required"`
//		MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
//		MinConns          int32         `env:"PG_MIN_CONNS" envDefault:"0"`
//		HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
//		MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
//		MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
//		RetryAttempts     int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval     time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"2s"`
//		MigrationsTable   string        `env:"PG_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
//	}
//
// # Usage
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, tenantmail.Migrations(), cfg.MigrationsTable, logger); err != nil {
//		log.Fatal(err)
//	}
//
// Connect retries with exponential backoff and verifies the pool with a ping
// before returning it. Migrate bridges the pool to database/sql for goose; the
// fs.FS passed to it must contain the .sql files at its root.
//
// # Transactions
//
// WithTransaction stores the transaction in the context handed to fn.
// Repositories call Conn to pick it up, so several repository calls share one
// transaction without changing their signatures:
//
//	err := pg.WithTransaction(ctx, pool, func(ctx context.Context) error {
//		if err := repo.Save(ctx, settings); err != nil {
//			return err // rolled back
//		}
//		return audit.Record(ctx, "smtp_settings_updated")
//	})
//
//	func (r *Repo) Save(ctx context.Context, s Settings) error {
//		_, err := pg.Conn(ctx, r.pool).Exec(ctx, query, args...)
//		return err
//	}
//
// A WithTransaction call inside another becomes a savepoint.
//
// # Errors
//
// Connect, Migrate and Healthcheck wrap failures with the sentinel errors in
// this package. IsNotFoundError, IsDuplicateKeyError, IsForeignKeyViolation and
// IsNotNullViolation classify errors returned by queries.
package pg
