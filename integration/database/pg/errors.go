package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrFailedToParseDBConfig    = errors.New("pg: failed to parse database configuration")
	ErrFailedToOpenDBConnection = errors.New("pg: failed to open database connection")
	ErrHealthcheckFailed        = errors.New("pg: healthcheck failed")
	ErrSetDialect               = errors.New("pg migrator: failed to set dialect")
	ErrApplyMigrations          = errors.New("pg migrator: failed to apply migrations")
)

// PostgreSQL error codes used by the classifiers below.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
)

// IsNotFoundError reports whether err means a query returned no rows.
func IsNotFoundError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicateKeyError reports a unique constraint violation.
func IsDuplicateKeyError(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// IsForeignKeyViolation reports a foreign key constraint violation.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

// IsNotNullViolation reports a NOT NULL constraint violation.
func IsNotNullViolation(err error) bool {
	return hasCode(err, codeNotNullViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
