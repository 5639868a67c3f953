package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/MKhiriev/go-leave-sync/internal/logger"
)

type fileBlobStore struct {
	dir    string
	mu     sync.Mutex
	logger *logger.Logger
}

// NewFileBlobStore returns a BlobStore keeping one file per key under dir.
// The directory is created when missing.
func NewFileBlobStore(dir string, log *logger.Logger) (BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &fileBlobStore{dir: dir, logger: log}, nil
}

func (s *fileBlobStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}

func (s *fileBlobStore) FetchLatest(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrBlobNotFound
		}
		s.logger.Err(err).Str("func", "fileBlobStore.FetchLatest").Str("key", key).Msg("error reading blob file")
		return nil, fmt.Errorf("read blob file: %w", err)
	}
	return data, nil
}

// WriteFull writes into a temporary file first and renames it over the
// target, so readers never observe a half-written blob.
func (s *fileBlobStore) WriteFull(ctx context.Context, key string, blob []byte, opts WriteOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p, err := s.path(resolveKey(key, opts))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !opts.AllowOverwrite {
		if _, err = os.Stat(p); err == nil {
			return ErrBlobExists
		}
	}

	tmp, err := os.CreateTemp(s.dir, ".blob-*")
	if err != nil {
		return fmt.Errorf("create temp blob file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp blob file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp blob file: %w", err)
	}

	perm := os.FileMode(0o600)
	if opts.Public {
		perm = 0o644
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("chmod blob file: %w", err)
	}

	if err = os.Rename(tmp.Name(), p); err != nil {
		s.logger.Err(err).Str("func", "fileBlobStore.WriteFull").Str("key", key).Msg("error replacing blob file")
		return fmt.Errorf("replace blob file: %w", err)
	}
	return nil
}
