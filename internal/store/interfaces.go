// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// BlobStore keeps opaque blobs under string keys. A write always replaces the
// whole blob; there is no partial update.
type BlobStore interface {
	// FetchLatest returns the most recent blob stored under key, bypassing
	// any cache. It returns ErrBlobNotFound when the key holds nothing.
	FetchLatest(ctx context.Context, key string) ([]byte, error)

	// WriteFull replaces the blob stored under key.
	WriteFull(ctx context.Context, key string, blob []byte, opts WriteOptions) error
}

// Preferences is a small device-local key/value store. Its content never
// leaves the device.
type Preferences interface {
	// GetInt64 returns the integer stored under key, or fallback when the key
	// is absent or holds something else.
	GetInt64(key string, fallback int64) int64
	// GetString returns the string stored under key, or fallback.
	GetString(key string, fallback string) string
	// Set stores value under key and persists the preferences.
	Set(key string, value any) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// WriteOptions controls how WriteFull stores a blob.
type WriteOptions struct {
	// Public makes the blob readable without credentials where the backend
	// supports access control.
	Public bool
	// ContentType is recorded alongside the blob.
	ContentType string
	// AllowOverwrite permits replacing an existing blob. When false, writing
	// to an existing key fails with ErrBlobExists.
	AllowOverwrite bool
	// StableKey stores the blob under exactly the given key. When false a
	// random suffix is appended, so the blob cannot be fetched by key later.
	StableKey bool
}

// DefaultWriteOptions are the options the shared document is written with:
// public, JSON, overwritable, under a stable key.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		Public:         true,
		ContentType:    "application/json",
		AllowOverwrite: true,
		StableKey:      true,
	}
}
