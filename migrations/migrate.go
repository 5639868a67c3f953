// Package migrations holds the embedded goose migrations of the SQL
// document store.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Dialects understood by Migrate.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

var gooseDialects = map[string]goose.Dialect{
	DialectPostgres: goose.DialectPostgres,
	DialectSQLite:   goose.DialectSQLite3,
}

//go:embed *.sql
var embedMigrations embed.FS

// Migrate applies every pending migration and returns how many ran.
func Migrate(ctx context.Context, db *sql.DB, dialect string) (int, error) {
	if db == nil {
		return 0, errors.New("migration error: nil database handle")
	}

	gooseDialect, ok := gooseDialects[dialect]
	if !ok {
		return 0, fmt.Errorf("migration error: unknown dialect %q", dialect)
	}

	provider, err := goose.NewProvider(gooseDialect, db, embedMigrations)
	if err != nil {
		return 0, fmt.Errorf("migration error: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return len(results), fmt.Errorf("migration error: %w", err)
	}
	return len(results), nil
}
