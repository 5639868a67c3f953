package store

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-leave-sync/internal/config"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/migrations"
)

// NewConnectPostgres opens a pgx-backed connection pool.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	return openDB(ctx, cfg.DSN, dbDriver{
		name:       "pgx",
		dialect:    migrations.DialectPostgres,
		maxOpen:    10,
		maxIdle:    4,
		classifier: NewPostgresErrorClassifier(),
	}, log)
}

// retryablePgCodes are transient: lost connections (class 08), rolled back
// transactions and deadlocks (class 40) and a server that is starting up.
var retryablePgCodes = map[string]struct{}{
	pgerrcode.ConnectionException:    {},
	pgerrcode.ConnectionDoesNotExist: {},
	pgerrcode.ConnectionFailure:      {},
	pgerrcode.TransactionRollback:    {},
	pgerrcode.SerializationFailure:   {},
	pgerrcode.DeadlockDetected:       {},
	pgerrcode.CannotConnectNow:       {},
}

// PostgresErrorClassifier implements [ErrorClassificator] for pgx errors.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify returns Retryable for the transient SQLSTATE codes and
// NonRetryable for everything else, including non-postgres errors.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if _, ok := retryablePgCodes[pgCode(err)]; ok {
		return Retryable
	}
	return NonRetryable
}

// pgCode returns the SQLSTATE of a postgres error, or "".
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
