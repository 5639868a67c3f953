// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/migrations"
)

const (
	blobsTable = "blobs"

	upsertBlobSuffix = `ON CONFLICT (blob_key) DO UPDATE SET
		body = EXCLUDED.body,
		content_type = EXCLUDED.content_type,
		public = EXCLUDED.public,
		updated_at = EXCLUDED.updated_at`
)

type sqlBlobStore struct {
	db      *DB
	builder sq.StatementBuilderType
	now     func() time.Time
	logger  *logger.Logger
}

// NewSQLBlobStore returns a BlobStore on top of the blobs table.
// The table is created by [DB.Migrate].
func NewSQLBlobStore(db *DB, log *logger.Logger) BlobStore {
	var placeholder sq.PlaceholderFormat = sq.Question
	if db.dialect == migrations.DialectPostgres {
		placeholder = sq.Dollar
	}

	return &sqlBlobStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
		now:     func() time.Time { return time.Now().UTC() },
		logger:  log,
	}
}

func (s *sqlBlobStore) FetchLatest(ctx context.Context, key string) ([]byte, error) {
	query, args, err := s.builder.
		Select("body").
		From(blobsTable).
		Where(sq.Eq{"blob_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var body string
	err = withRetry(ctx, s.db.errorClassificator, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, query, args...).Scan(&body)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		s.logger.Err(err).Str("func", "sqlBlobStore.FetchLatest").Str("key", key).Msg("error selecting blob")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return []byte(body), nil
}

func (s *sqlBlobStore) WriteFull(ctx context.Context, key string, blob []byte, opts WriteOptions) error {
	insert := s.builder.
		Insert(blobsTable).
		Columns("blob_key", "body", "content_type", "public", "updated_at").
		Values(resolveKey(key, opts), string(blob), opts.ContentType, opts.Public, s.now())
	if opts.AllowOverwrite {
		insert = insert.Suffix(upsertBlobSuffix)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = withRetry(ctx, s.db.errorClassificator, func(ctx context.Context) error {
		_, execErr := s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrBlobExists
		}
		s.logger.Err(err).Str("func", "sqlBlobStore.WriteFull").Str("key", key).Msg("error writing blob")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
