// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-leave-sync/internal/config"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
)

// NewBlobStore builds the document store selected by cfg.Backend. SQL
// backends are connected and migrated before use.
func NewBlobStore(ctx context.Context, cfg config.Storage, log *logger.Logger) (BlobStore, error) {
	log.Info().Str("backend", cfg.Backend).Msg("creating blob store...")

	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryBlobStore(), nil

	case config.BackendFile:
		return NewFileBlobStore(cfg.Files.Dir, log)

	case config.BackendSQLite, config.BackendPostgres:
		connect := NewConnectPostgres
		if cfg.Backend == config.BackendSQLite {
			connect = NewConnectSQLite
		}

		db, err := connect(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("%s connection error: %w", cfg.Backend, err)
		}
		if err = db.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		return NewSQLBlobStore(db, log), nil

	case config.BackendS3:
		return NewS3BlobStore(ctx, cfg.S3, log)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
