package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/internal/store"
)

type dataService struct {
	blobs store.BlobStore
	key   string

	logger *logger.Logger
}

// NewDataService returns a DataService keeping the document under key in
// blobs, written with store.DefaultWriteOptions.
func NewDataService(blobs store.BlobStore, key string, logger *logger.Logger) DataService {
	return &dataService{
		blobs:  blobs,
		key:    key,
		logger: logger,
	}
}

func (s *dataService) Get(ctx context.Context) (json.RawMessage, error) {
	raw, err := s.blobs.FetchLatest(ctx, s.key)
	if errors.Is(err, store.ErrBlobNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch document %q: %w", s.key, err)
	}
	return raw, nil
}

func (s *dataService) Put(ctx context.Context, document json.RawMessage) error {
	if err := s.blobs.WriteFull(ctx, s.key, document, store.DefaultWriteOptions()); err != nil {
		return fmt.Errorf("write document %q: %w", s.key, err)
	}
	return nil
}
