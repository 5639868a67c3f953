package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/migrations"
)

// DB wraps a database handle together with the dialect it speaks and the
// classifier used to decide which failures are retried.
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded migrations for the handle's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	applied, err := migrations.Migrate(ctx, db.DB, db.dialect)
	if err != nil {
		return err
	}
	db.logger.Info().Str("dialect", db.dialect).Int("applied", applied).Msg("database migrated")
	return nil
}

// dbDriver describes how to open one SQL backend.
type dbDriver struct {
	name       string
	dialect    string
	maxOpen    int
	maxIdle    int
	classifier ErrorClassificator
}

func openDB(ctx context.Context, dsn string, driver dbDriver, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open(driver.name, dsn)
	if err != nil {
		log.Err(err).Str("driver", driver.name).Msg("error opening database")
		return nil, fmt.Errorf("open %s database: %w", driver.dialect, err)
	}
	conn.SetMaxOpenConns(driver.maxOpen)
	conn.SetMaxIdleConns(driver.maxIdle)

	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		log.Err(err).Str("driver", driver.name).Msg("error connecting database (ping)")
		return nil, fmt.Errorf("ping %s database: %w", driver.dialect, err)
	}
	log.Info().Str("driver", driver.name).Msg("connected to database")

	return &DB{
		DB:                 conn,
		dialect:            driver.dialect,
		errorClassificator: driver.classifier,
		logger:             log,
	}, nil
}
