package tenantmail

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantmail/integration/database/pg"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations returns the goose migrations for the tenant_smtp_settings table.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Repository persists tenant SMTP settings.
type Repository interface {
	GetSettings(ctx context.Context, tenantID uuid.UUID) (Settings, error)
	SaveSettings(ctx context.Context, s Settings) (Settings, error)
	ClearSettings(ctx context.Context, tenantID uuid.UUID) error
}

// PGRepository is a Repository backed by PostgreSQL. Calls join a
// transaction stored in ctx by pg.WithTransaction.
type PGRepository struct {
	db pg.DBTX
}

// NewPGRepository returns a repository using db, typically a *pgxpool.Pool.
func NewPGRepository(db pg.DBTX) *PGRepository {
	return &PGRepository{db: db}
}

const getSettingsQuery = `
SELECT tenant_id, host, port, username, password_encrypted, from_address, secure, updated_at
FROM tenant_smtp_settings
WHERE tenant_id = $1`

func (r *PGRepository) GetSettings(ctx context.Context, tenantID uuid.UUID) (Settings, error) {
	var s Settings
	err := pg.Conn(ctx, r.db).QueryRow(ctx, getSettingsQuery, tenantID).Scan(
		&s.TenantID,
		&s.Host,
		&s.Port,
		&s.Username,
		&s.PasswordEncrypted,
		&s.From,
		&s.Secure,
		&s.UpdatedAt,
	)
	if pg.IsNotFoundError(err) {
		return Settings{}, ErrTenantNotFound
	}
	if err != nil {
		return Settings{}, fmt.Errorf("get smtp settings: %w", err)
	}
	return s, nil
}

const saveSettingsQuery = `
INSERT INTO tenant_smtp_settings (tenant_id, host, port, username, password_encrypted, from_address, secure)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (tenant_id) DO UPDATE SET
	host = EXCLUDED.host,
	port = EXCLUDED.port,
	username = EXCLUDED.username,
	password_encrypted = EXCLUDED.password_encrypted,
	from_address = EXCLUDED.from_address,
	secure = EXCLUDED.secure,
	updated_at = now()
RETURNING updated_at`

func (r *PGRepository) SaveSettings(ctx context.Context, s Settings) (Settings, error) {
	err := pg.Conn(ctx, r.db).QueryRow(ctx, saveSettingsQuery,
		s.TenantID,
		s.Host,
		s.Port,
		s.Username,
		s.PasswordEncrypted,
		s.From,
		s.Secure,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return Settings{}, fmt.Errorf("save smtp settings: %w", err)
	}
	return s, nil
}

// ClearSettings removes the tenant's settings. Clearing a tenant without
// settings is not an error.
func (r *PGRepository) ClearSettings(ctx context.Context, tenantID uuid.UUID) error {
	if _, err := pg.Conn(ctx, r.db).Exec(ctx, `DELETE FROM tenant_smtp_settings WHERE tenant_id = $1`, tenantID); err != nil {
		return fmt.Errorf("clear smtp settings: %w", err)
	}
	return nil
}
