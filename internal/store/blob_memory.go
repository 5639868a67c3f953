package store

import (
	"context"
	"sync"
)

type memoryBlob struct {
	body        []byte
	contentType string
	public      bool
}

type memoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string]memoryBlob
}

// NewMemoryBlobStore returns a process-local BlobStore. Clients sharing one
// instance behave like devices sharing one remote store.
func NewMemoryBlobStore() BlobStore {
	return &memoryBlobStore{blobs: make(map[string]memoryBlob)}
}

func (s *memoryBlobStore) FetchLatest(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[key]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return append([]byte(nil), blob.body...), nil
}

func (s *memoryBlobStore) WriteFull(ctx context.Context, key string, blob []byte, opts WriteOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key = resolveKey(key, opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.blobs[key]; exists && !opts.AllowOverwrite {
		return ErrBlobExists
	}
	s.blobs[key] = memoryBlob{
		body:        append([]byte(nil), blob...),
		contentType: opts.ContentType,
		public:      opts.Public,
	}
	return nil
}
