// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client-side transport to the LeaveSync
// server.
//
// [HTTPBlobStore] implements store.BlobStore on top of the server's /data
// endpoint, so the sync client cannot tell a remote server from an embedded
// backend.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrInternalServerError] for 500).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-leave-sync/internal/store"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

// RemoteStore is a document store reached over the network.
type RemoteStore interface {
	store.BlobStore

	// ServerVersion returns the version string reported by the server.
	ServerVersion(ctx context.Context) (string, error)
}
