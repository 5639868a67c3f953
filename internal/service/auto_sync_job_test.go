// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-leave-sync/internal/config"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/internal/store"
	"github.com/MKhiriev/go-leave-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastWorkers() config.Workers {
	return config.Workers{
		SyncMode:        config.SyncModeAuto,
		PollInterval:    20 * time.Millisecond,
		SaveDebounce:    30 * time.Millisecond,
		EchoSuppression: 50 * time.Millisecond,
	}
}

func newAutoClient(t *testing.T, blobs store.BlobStore) *SyncClient {
	t.Helper()
	c := NewSyncClient(blobs, testKey, fastWorkers(), logger.Nop())
	_, err := c.Load(context.Background())
	require.NoError(t, err)
	return c
}

func TestNewAutoSyncJob_Defaults(t *testing.T) {
	j := NewAutoSyncJob(&SyncClient{}, config.Workers{}, logger.Nop())

	assert.Equal(t, defaultPollInterval, j.pollInterval)
	assert.Equal(t, defaultSaveDebounce, j.debounce)
}

func TestAutoSyncJob_DebouncedSave(t *testing.T) {
	blobs := store.NewMemoryBlobStore()
	c := newAutoClient(t, blobs)

	j := NewAutoSyncJob(c, fastWorkers(), logger.Nop())
	j.Start(context.Background())
	defer j.Stop()

	require.NoError(t, c.Mutate(addLeave(1)))

	require.Eventually(t, func() bool {
		return !c.Status().Dirty && !c.Status().LastSavedAt.IsZero()
	}, 2*time.Second, 5*time.Millisecond)

	stored, err := blobs.FetchLatest(context.Background(), testKey)
	require.NoError(t, err)
	doc := models.DecodeDocument(stored)
	assert.Len(t, doc.Leaves, len(models.DefaultLeaves())+1)
}

func TestAutoSyncJob_PullsRemoteChanges(t *testing.T) {
	blobs := store.NewMemoryBlobStore()
	writer := newAutoClient(t, blobs)
	reader := newAutoClient(t, blobs)

	j := NewAutoSyncJob(reader, fastWorkers(), logger.Nop())
	j.Start(context.Background())
	defer j.Stop()

	require.NoError(t, writer.Mutate(addLeave(77)))
	_, err := writer.Save(context.Background())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		for _, l := range reader.Document().Leaves {
			if l.ID == 77 {
				return true
			}
		}
		return false
	}, 2*time.Second, 5*time.Millisecond)
}

func TestAutoSyncJob_ConflictStopsAutoSave(t *testing.T) {
	blobs := store.NewMemoryBlobStore()
	other := newAutoClient(t, blobs)
	c := newAutoClient(t, blobs)

	require.NoError(t, other.Mutate(addLeave(10)))
	_, err := other.Save(context.Background())
	require.NoError(t, err)
	written, err := blobs.FetchLatest(context.Background(), testKey)
	require.NoError(t, err)

	j := NewAutoSyncJob(c, fastWorkers(), logger.Nop())
	j.Start(context.Background())
	defer j.Stop()

	require.NoError(t, c.Mutate(addLeave(20)))

	require.Eventually(t, func() bool { return c.Status().Conflict != nil }, 2*time.Second, 5*time.Millisecond)

	// further edits do not write while the conflict is pending
	require.NoError(t, c.Mutate(addLeave(30)))
	time.Sleep(100 * time.Millisecond)

	after, err := blobs.FetchLatest(context.Background(), testKey)
	require.NoError(t, err)
	assert.Equal(t, written, after)
	assert.True(t, c.Status().Dirty)
}

func TestAutoSyncJob_StopIsIdempotent(t *testing.T) {
	c := newAutoClient(t, store.NewMemoryBlobStore())
	j := NewAutoSyncJob(c, fastWorkers(), logger.Nop())

	j.Stop()
	j.Start(context.Background())
	j.Start(context.Background())
	j.Stop()
	j.Stop()
}

func TestAutoSyncJob_StopsOnContextCancel(t *testing.T) {
	c := newAutoClient(t, store.NewMemoryBlobStore())
	j := NewAutoSyncJob(c, fastWorkers(), logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	j.Run(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		j.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop after context cancellation")
	}
}
