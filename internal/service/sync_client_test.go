// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-leave-sync/internal/config"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/internal/mock"
	"github.com/MKhiriev/go-leave-sync/internal/store"
	"github.com/MKhiriev/go-leave-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testKey = "leavesync-data.json"

var errBoom = errors.New("boom")

func newTestClient(blobs store.BlobStore) *SyncClient {
	return NewSyncClient(blobs, testKey, config.Workers{EchoSuppression: 5 * time.Second}, logger.Nop())
}

// seedStore stores doc under testKey and returns its canonical bytes.
func seedStore(t *testing.T, blobs store.BlobStore, doc models.SharedDocument) []byte {
	t.Helper()
	raw, err := models.Canonical(doc)
	require.NoError(t, err)
	require.NoError(t, blobs.WriteFull(context.Background(), testKey, raw, store.DefaultWriteOptions()))
	return raw
}

func addLeave(id int64) func(doc *models.SharedDocument) error {
	return func(doc *models.SharedDocument) error {
		doc.Leaves = append(doc.Leaves, models.LeaveRequest{
			ID: id, UserID: 1, Type: models.LeaveAnnual, Start: "2026-05-01", End: "2026-05-02", Reason: "r",
		})
		return nil
	}
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestSyncClient_Load_EmptyStoreUsesDefaults(t *testing.T) {
	c := newTestClient(store.NewMemoryBlobStore())

	doc, err := c.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.DefaultDocument(), doc)

	status := c.Status()
	assert.True(t, status.Loaded)
	assert.False(t, status.Dirty)
	assert.Equal(t, models.SyncIdle, status.State)
	assert.NoError(t, status.LastError)
}

func TestSyncClient_Load_FetchFailureUsesDefaultsSilently(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mock.NewMockBlobStore(ctrl)
	blobs.EXPECT().FetchLatest(gomock.Any(), testKey).Return(nil, errBoom)

	c := newTestClient(blobs)
	doc, err := c.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.DefaultUsers(), doc.Users)
	assert.NoError(t, c.Status().LastError)
}

func TestSyncClient_Load_ReconcilesPartialDocument(t *testing.T) {
	blobs := store.NewMemoryBlobStore()
	require.NoError(t, blobs.WriteFull(context.Background(), testKey,
		[]byte(`{"users":[{"id":9,"name":"Zed Q","role":"admin","grade":"Operator","avatar":"ZQ"}],"leaves":"oops"}`),
		store.DefaultWriteOptions()))

	c := newTestClient(blobs)
	doc, err := c.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, doc.Users, 1)
	assert.Equal(t, int64(9), doc.Users[0].ID)
	assert.Equal(t, models.DefaultLeaves(), doc.Leaves)
	assert.Equal(t, models.DefaultDuties(), doc.Duties)
	assert.Empty(t, doc.Passwords)
	assert.Empty(t, doc.AuditLog)
}

func TestSyncClient_Load_Superseded(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mock.NewMockBlobStore(ctrl)
	c := newTestClient(blobs)

	release := make(chan struct{})
	first := blobs.EXPECT().FetchLatest(gomock.Any(), testKey).DoAndReturn(
		func(ctx context.Context, key string) ([]byte, error) {
			<-release
			return []byte(`{"users":[{"id":1,"name":"Old"}]}`), nil
		})
	blobs.EXPECT().FetchLatest(gomock.Any(), testKey).After(first).Return(
		[]byte(`{"users":[{"id":1,"name":"New"}]}`), nil)

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = c.Load(context.Background())
	}()

	require.Eventually(t, func() bool { return c.Status().State == models.SyncLoading }, time.Second, time.Millisecond)

	// the second load runs to completion while the first is still blocked
	doc, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "New", doc.Users[0].Name)

	close(release)
	wg.Wait()

	assert.ErrorIs(t, firstErr, ErrLoadSuperseded)
	assert.Equal(t, "New", c.Document().Users[0].Name)
	assert.Equal(t, models.SyncIdle, c.Status().State)
}

// ── Save ─────────────────────────────────────────────────────────────────────

func TestSyncClient_Save_NotLoaded(t *testing.T) {
	c := newTestClient(store.NewMemoryBlobStore())

	_, err := c.Save(context.Background())

	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestSyncClient_Save_CleanDoesNotTouchStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mock.NewMockBlobStore(ctrl)
	blobs.EXPECT().FetchLatest(gomock.Any(), testKey).Return(nil, store.ErrBlobNotFound).Times(1)

	c := newTestClient(blobs)
	_, err := c.Load(context.Background())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		res, err := c.Save(context.Background())
		require.NoError(t, err)
		assert.Equal(t, models.SaveClean, res.Outcome)
	}
}

func TestSyncClient_Save_NoConflict(t *testing.T) {
	blobs := store.NewMemoryBlobStore()
	seedStore(t, blobs, models.DefaultDocument())

	c := newTestClient(blobs)
	_, err := c.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.Mutate(addLeave(100)))
	assert.True(t, c.Status().Dirty)

	res, err := c.Save(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.SaveSaved, res.Outcome)
	assert.False(t, c.Status().Dirty)

	stored, err := blobs.FetchLatest(context.Background(), testKey)
	require.NoError(t, err)
	want, err := models.Canonical(c.Document())
	require.NoError(t, err)
	assert.Equal(t, want, stored)

	// a second save is clean
	res, err = c.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SaveClean, res.Outcome)
}

func TestSyncClient_Save_FirstWriteToEmptyStore(t *testing.T) {
	blobs := store.NewMemoryBlobStore()
	c := newTestClient(blobs)
	_, err := c.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.Mutate(addLeave(100)))

	res, err := c.Save(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.SaveSaved, res.Outcome)
	_, err = blobs.FetchLatest(context.Background(), testKey)
	assert.NoError(t, err)
}

func TestSyncClient_Save_Conflict(t *testing.T) {
	blobs := store.NewMemoryBlobStore()
	seedStore(t, blobs, models.DefaultDocument())

	a := newTestClient(blobs)
	b := newTestClient(blobs)
	_, err := a.Load(context.Background())
	require.NoError(t, err)
	_, err = b.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, a.Mutate(addLeave(100)))
	res, err := a.Save(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.SaveSaved, res.Outcome)

	require.NoError(t, b.Mutate(addLeave(200)))
	before := b.Document()
	written, err := blobs.FetchLatest(context.Background(), testKey)
	require.NoError(t, err)

	res, err = b.Save(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.SaveConflict, res.Outcome)
	require.NotNil(t, res.Conflict)
	assert.Equal(t, models.ConflictMessage, res.Conflict.Message)

	status := b.Status()
	assert.True(t, status.Dirty)
	assert.NotNil(t, status.Conflict)
	assert.Equal(t, before, b.Document())

	after, err := blobs.FetchLatest(context.Background(), testKey)
	require.NoError(t, err)
	assert.Equal(t, written, after, "a conflicting save must not write")
}

func TestSyncClient_Save_PreCheckFailureBlocks(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mock.NewMockBlobStore(ctrl)
	gomock.InOrder(
		blobs.EXPECT().FetchLatest(gomock.Any(), testKey).Return(nil, store.ErrBlobNotFound),
		blobs.EXPECT().FetchLatest(gomock.Any(), testKey).Return(nil, errBoom),
	)

	c := newTestClient(blobs)
	_, err := c.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.Mutate(addLeave(1)))

	_, err = c.Save(context.Background())

	assert.ErrorIs(t, err, ErrRemoteUnavailable)
	assert.ErrorIs(t, err, errBoom)
	status := c.Status()
	assert.True(t, status.Dirty)
	assert.ErrorIs(t, status.LastError, ErrRemoteUnavailable)
	assert.Equal(t, models.SyncIdle, status.State)
}

// A not-found answer after a stored document was loaded is a failed read on
// the server side, so the save must not overwrite whatever is stored.
func TestSyncClient_Save_MissingAfterLoadBlocks(t *testing.T) {
	stored, err := models.Canonical(models.DefaultDocument())
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	blobs := mock.NewMockBlobStore(ctrl)
	gomock.InOrder(
		blobs.EXPECT().FetchLatest(gomock.Any(), testKey).Return(stored, nil),
		blobs.EXPECT().FetchLatest(gomock.Any(), testKey).Return(nil, store.ErrBlobNotFound),
	)
	blobs.EXPECT().WriteFull(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	c := newTestClient(blobs)
	_, err = c.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.Mutate(addLeave(1)))

	_, err = c.Save(context.Background())

	assert.ErrorIs(t, err, ErrRemoteUnavailable)
	status := c.Status()
	assert.True(t, status.Dirty)
	assert.ErrorIs(t, status.LastError, ErrRemoteUnavailable)
}

func TestSyncClient_Save_MissingAfterOwnWriteBlocks(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mock.NewMockBlobStore(ctrl)
	gomock.InOrder(
		blobs.EXPECT().FetchLatest(gomock.Any(), testKey).Return(nil, store.ErrBlobNotFound).Times(2),
		blobs.EXPECT().WriteFull(gomock.Any(), testKey, gomock.Any(), store.DefaultWriteOptions()).Return(nil),
		blobs.EXPECT().FetchLatest(gomock.Any(), testKey).Return(nil, store.ErrBlobNotFound),
	)

	c := newTestClient(blobs)
	_, err := c.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.Mutate(addLeave(1)))

	res, err := c.Save(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.SaveSaved, res.Outcome)

	require.NoError(t, c.Mutate(addLeave(2)))
	_, err = c.Save(context.Background())

	assert.ErrorIs(t, err, ErrRemoteUnavailable)
	assert.True(t, c.Status().Dirty)
}

func TestSyncClient_Save_WriteFailureKeepsDirty(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mock.NewMockBlobStore(ctrl)
	blobs.EXPECT().FetchLatest(gomock.Any(), testKey).Return(nil, store.ErrBlobNotFound).Times(2)
	blobs.EXPECT().WriteFull(gomock.Any(), testKey, gomock.Any(), store.DefaultWriteOptions()).Return(errBoom)

	c := newTestClient(blobs)
	_, err := c.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.Mutate(addLeave(1)))

	_, err = c.Save(context.Background())

	assert.ErrorIs(t, err, ErrSaveFailed)
	assert.True(t, c.Status().Dirty)
}

func TestSyncClient_Save_InFlightIsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mock.NewMockBlobStore(ctrl)
	release := make(chan struct{})

	gomock.InOrder(
		blobs.EXPECT().FetchLatest(gomock.Any(), testKey).Return(nil, store.ErrBlobNotFound),
		blobs.EXPECT().FetchLatest(gomock.Any(), testKey).DoAndReturn(
			func(ctx context.Context, key string) ([]byte, error) {
				<-release
				return nil, store.ErrBlobNotFound
			}),
	)
	blobs.EXPECT().WriteFull(gomock.Any(), testKey, gomock.Any(), gomock.Any()).Return(nil).Times(1)

	c := newTestClient(blobs)
	_, err := c.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.Mutate(addLeave(1)))

	done := make(chan models.SaveResult)
	go func() {
		res, err := c.Save(context.Background())
		assert.NoError(t, err)
		done <- res
	}()
	require.Eventually(t, func() bool { return c.Status().State == models.SyncSaving }, time.Second, time.Millisecond)

	res, err := c.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SaveSkipped, res.Outcome)

	close(release)
	assert.Equal(t, models.SaveSaved, (<-done).Outcome)
}

func TestSyncClient_Save_EditDuringSaveStaysDirty(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mock.NewMockBlobStore(ctrl)
	c := newTestClient(blobs)

	blobs.EXPECT().FetchLatest(gomock.Any(), testKey).Return(nil, store.ErrBlobNotFound).Times(2)
	blobs.EXPECT().WriteFull(gomock.Any(), testKey, gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, key string, blob []byte, opts store.WriteOptions) error {
			// an edit lands while the write is in flight
			require.NoError(t, c.Mutate(addLeave(2)))
			return nil
		})

	_, err := c.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.Mutate(addLeave(1)))

	res, err := c.Save(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.SaveSaved, res.Outcome)
	assert.True(t, c.Status().Dirty)
}

// ── Refresh / ResolveConflict ────────────────────────────────────────────────

func TestSyncClient_RefreshResetsBaseline(t *testing.T) {
	blobs := store.NewMemoryBlobStore()
	seedStore(t, blobs, models.DefaultDocument())

	a := newTestClient(blobs)
	b := newTestClient(blobs)
	_, err := a.Load(context.Background())
	require.NoError(t, err)
	_, err = b.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, a.Mutate(addLeave(100)))
	_, err = a.Save(context.Background())
	require.NoError(t, err)

	require.NoError(t, b.Mutate(addLeave(200)))
	res, err := b.Save(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.SaveConflict, res.Outcome)

	require.NoError(t, b.ResolveConflict(context.Background(), models.ResolveRefresh))

	status := b.Status()
	assert.False(t, status.Dirty)
	assert.Nil(t, status.Conflict)
	assert.Equal(t, a.Document(), b.Document())

	require.NoError(t, b.Mutate(addLeave(300)))
	res, err = b.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SaveSaved, res.Outcome)
}

func TestSyncClient_KeepEditingKeepsDirty(t *testing.T) {
	blobs := store.NewMemoryBlobStore()
	seedStore(t, blobs, models.DefaultDocument())

	a := newTestClient(blobs)
	b := newTestClient(blobs)
	_, _ = a.Load(context.Background())
	_, _ = b.Load(context.Background())

	require.NoError(t, a.Mutate(addLeave(100)))
	_, err := a.Save(context.Background())
	require.NoError(t, err)

	require.NoError(t, b.Mutate(addLeave(200)))
	res, err := b.Save(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.SaveConflict, res.Outcome)

	require.NoError(t, b.ResolveConflict(context.Background(), models.ResolveKeepEditing))
	assert.Nil(t, b.Status().Conflict)
	assert.True(t, b.Status().Dirty)

	// the drift is still there, so the next save conflicts again
	res, err = b.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SaveConflict, res.Outcome)
}

// ── Mutate ───────────────────────────────────────────────────────────────────

func TestSyncClient_Mutate(t *testing.T) {
	c := newTestClient(store.NewMemoryBlobStore())

	assert.ErrorIs(t, c.Mutate(addLeave(1)), ErrNotLoaded)

	_, err := c.Load(context.Background())
	require.NoError(t, err)

	before := c.Document()
	err = c.Mutate(func(doc *models.SharedDocument) error {
		doc.Users = nil
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, before, c.Document())
	assert.False(t, c.Status().Dirty)

	require.NoError(t, c.Mutate(addLeave(1)))
	assert.True(t, c.Status().Dirty)
	assert.Equal(t, uint64(1), c.Status().Revision)
}

func TestSyncClient_DocumentIsACopy(t *testing.T) {
	c := newTestClient(store.NewMemoryBlobStore())
	_, err := c.Load(context.Background())
	require.NoError(t, err)

	doc := c.Document()
	doc.Users[0].Name = "Changed"
	doc.Passwords[1] = "x"

	assert.NotEqual(t, "Changed", c.Document().Users[0].Name)
	assert.Empty(t, c.Document().Passwords)
	assert.False(t, c.Status().Dirty)
}

// ── Pull ─────────────────────────────────────────────────────────────────────

func TestSyncClient_Pull(t *testing.T) {
	blobs := store.NewMemoryBlobStore()
	seedStore(t, blobs, models.DefaultDocument())

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	a := newTestClient(blobs)
	b := newTestClient(blobs)
	a.now, b.now = clock, clock
	_, _ = a.Load(context.Background())
	_, _ = b.Load(context.Background())

	t.Run("nothing new", func(t *testing.T) {
		applied, err := b.Pull(context.Background())
		require.NoError(t, err)
		assert.False(t, applied)
	})

	require.NoError(t, a.Mutate(addLeave(100)))
	_, err := a.Save(context.Background())
	require.NoError(t, err)

	t.Run("echo suppressed on the writer", func(t *testing.T) {
		require.NoError(t, blobs.WriteFull(context.Background(), testKey, []byte(`{"users":[]}`), store.DefaultWriteOptions()))
		applied, err := a.Pull(context.Background())
		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("pending edits are never overwritten", func(t *testing.T) {
		require.NoError(t, b.Mutate(addLeave(200)))
		applied, err := b.Pull(context.Background())
		require.NoError(t, err)
		assert.False(t, applied)
		assert.True(t, b.Status().Dirty)
	})

	t.Run("applied after the echo window on a clean client", func(t *testing.T) {
		now = now.Add(6 * time.Second)
		applied, err := a.Pull(context.Background())
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, models.DefaultUsers(), a.Document().Users)
		assert.False(t, a.Status().Dirty)
	})
}

func TestSyncClient_Pull_FetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mock.NewMockBlobStore(ctrl)
	gomock.InOrder(
		blobs.EXPECT().FetchLatest(gomock.Any(), testKey).Return(nil, store.ErrBlobNotFound),
		blobs.EXPECT().FetchLatest(gomock.Any(), testKey).Return(nil, errBoom),
	)

	c := newTestClient(blobs)
	_, err := c.Load(context.Background())
	require.NoError(t, err)

	applied, err := c.Pull(context.Background())

	assert.False(t, applied)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}

// ── Subscribe ────────────────────────────────────────────────────────────────

func TestSyncClient_Subscribe(t *testing.T) {
	c := newTestClient(store.NewMemoryBlobStore())

	var mu sync.Mutex
	var states []models.SyncState
	unsubscribe := c.Subscribe(func(s models.SyncStatus) {
		mu.Lock()
		states = append(states, s.State)
		mu.Unlock()
	})

	_, err := c.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.Mutate(addLeave(1)))
	_, err = c.Save(context.Background())
	require.NoError(t, err)

	unsubscribe()
	require.NoError(t, c.Mutate(addLeave(2)))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []models.SyncState{
		models.SyncLoading, models.SyncIdle, // load
		models.SyncIdle,                     // mutate
		models.SyncSaving, models.SyncIdle,  // save
	}, states)
}
