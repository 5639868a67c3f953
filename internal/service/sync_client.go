// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-leave-sync/internal/config"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/internal/store"
	"github.com/MKhiriev/go-leave-sync/models"
)

// SyncClient keeps the local copy of the shared document and reconciles it
// with the document store using optimistic concurrency: before every write
// the remote document is fetched and compared with the baseline snapshot
// taken at the last load or save. A mismatch is reported as a conflict and
// nothing is written.
//
// The zero value is not usable; construct with [NewSyncClient].
type SyncClient struct {
	blobs      store.BlobStore
	key        string
	opts       store.WriteOptions
	echoWindow time.Duration
	now        func() time.Time
	logger     *logger.Logger

	mu       sync.Mutex
	doc      models.SharedDocument
	baseline []byte
	// remoteSeen is set when the baseline came from a stored document. A
	// later not-found answer then means a failed read, not an empty store.
	remoteSeen bool
	loaded     bool
	dirty    bool
	// revision counts local edits. A save clears dirty only when no edit
	// happened while it was in flight.
	revision uint64
	// generation is bumped by every load. A load that finishes after a newer
	// one started discards its result.
	generation    uint64
	loading       int
	saving        bool
	conflict      *models.Conflict
	lastErr       error
	lastSavedAt   time.Time
	lastLoadedAt  time.Time
	suppressUntil time.Time

	listenersMu  sync.Mutex
	listeners    map[int]func(models.SyncStatus)
	nextListener int
}

// NewSyncClient returns a SyncClient reading and writing the blob stored
// under key in blobs. The echo suppression window is taken from workers.
func NewSyncClient(blobs store.BlobStore, key string, workers config.Workers, logger *logger.Logger) *SyncClient {
	return &SyncClient{
		blobs:      blobs,
		key:        key,
		opts:       store.DefaultWriteOptions(),
		echoWindow: workers.EchoSuppression,
		now:        time.Now,
		logger:     logger,
		listeners:  make(map[int]func(models.SyncStatus)),
	}
}

// Load fetches the latest remote document and makes it the local document
// and the baseline. A missing document or a failed fetch yields the default
// document; the failure is logged but not reported, so a cold start stays
// silent. Load clears the dirty flag and any pending conflict.
//
// If another load starts before this one finishes, the result is discarded
// and ErrLoadSuperseded is returned.
func (c *SyncClient) Load(ctx context.Context) (models.SharedDocument, error) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.loading++
	c.mu.Unlock()
	c.publish()

	doc, found := c.fetchForLoad(ctx)

	if err := ctx.Err(); err != nil {
		c.finishLoading()
		return models.SharedDocument{}, err
	}

	baseline, err := models.Canonical(doc)
	if err != nil {
		c.finishLoading()
		return models.SharedDocument{}, fmt.Errorf("serialize loaded document: %w", err)
	}

	c.mu.Lock()
	c.loading--
	if gen != c.generation {
		c.mu.Unlock()
		c.publish()
		return models.SharedDocument{}, ErrLoadSuperseded
	}
	c.applyLoaded(doc, baseline, found)
	out := c.doc.Clone()
	c.mu.Unlock()
	c.publish()

	c.logger.Debug().Int("users", len(doc.Users)).Int("leaves", len(doc.Leaves)).Msg("document loaded")
	return out, nil
}

// Refresh discards local edits and any conflict, then loads the remote
// document again.
func (c *SyncClient) Refresh(ctx context.Context) (models.SharedDocument, error) {
	c.mu.Lock()
	c.conflict = nil
	c.mu.Unlock()

	return c.Load(ctx)
}

// fetchForLoad reports whether the document came from the store.
func (c *SyncClient) fetchForLoad(ctx context.Context) (models.SharedDocument, bool) {
	raw, err := c.blobs.FetchLatest(ctx, c.key)
	switch {
	case errors.Is(err, store.ErrBlobNotFound):
		c.logger.Info().Str("key", c.key).Msg("no remote document yet, using defaults")
		return models.DefaultDocument(), false
	case err != nil:
		c.logger.Warn().Err(err).Str("key", c.key).Msg("remote fetch failed, using defaults")
		return models.DefaultDocument(), false
	default:
		return models.DecodeDocument(raw), true
	}
}

func (c *SyncClient) finishLoading() {
	c.mu.Lock()
	c.loading--
	c.mu.Unlock()
	c.publish()
}

// applyLoaded replaces the document and the baseline. c.mu must be held.
func (c *SyncClient) applyLoaded(doc models.SharedDocument, baseline []byte, remoteSeen bool) {
	c.doc = doc
	c.baseline = baseline
	c.remoteSeen = remoteSeen
	c.loaded = true
	c.dirty = false
	c.conflict = nil
	c.lastErr = nil
	c.lastLoadedAt = c.now()
}

// Save writes the local document if it has unsaved edits.
//
// Outcomes that are not failures are reported in SaveResult: SaveClean when
// there is nothing to save, SaveSkipped when a save or load is already in
// flight, SaveConflict when the remote document no longer matches the
// baseline. Failures are ErrNotLoaded, ErrRemoteUnavailable when the
// pre-save fetch fails, and ErrSaveFailed when the write fails. On failure
// and on conflict the local document, the dirty flag and the baseline are
// left as they were.
func (c *SyncClient) Save(ctx context.Context) (models.SaveResult, error) {
	c.mu.Lock()
	if !c.loaded {
		c.mu.Unlock()
		return models.SaveResult{}, ErrNotLoaded
	}
	if c.saving || c.loading > 0 {
		c.mu.Unlock()
		return models.SaveResult{Outcome: models.SaveSkipped}, nil
	}
	if !c.dirty {
		c.mu.Unlock()
		return models.SaveResult{Outcome: models.SaveClean}, nil
	}
	c.saving = true
	gen := c.generation
	rev := c.revision
	baseline := c.baseline
	remoteSeen := c.remoteSeen
	snapshot := c.doc.Clone()
	c.mu.Unlock()
	c.publish()

	log := c.logger.With().Uint64("revision", rev).Logger()

	remote, err := c.blobs.FetchLatest(ctx, c.key)
	switch {
	case errors.Is(err, store.ErrBlobNotFound) && remoteSeen:
		// the server answers a failed read with an empty body
		log.Warn().Msg("pre-save fetch found no document where one was loaded")
		return models.SaveResult{}, c.failSave(fmt.Errorf("%w: stored document missing", ErrRemoteUnavailable))
	case errors.Is(err, store.ErrBlobNotFound):
		// nothing stored yet, nothing to conflict with
	case err != nil:
		log.Warn().Err(err).Msg("pre-save fetch failed")
		return models.SaveResult{}, c.failSave(fmt.Errorf("%w: %w", ErrRemoteUnavailable, err))
	default:
		current, cerr := models.CanonicalOf(remote)
		if cerr != nil {
			return models.SaveResult{}, c.failSave(fmt.Errorf("%w: %w", ErrRemoteUnavailable, cerr))
		}
		if !bytes.Equal(current, baseline) {
			conflict := models.NewConflict(c.now())
			c.mu.Lock()
			c.saving = false
			if gen == c.generation {
				c.conflict = conflict
			}
			c.mu.Unlock()
			c.publish()

			log.Info().Msg("save refused: remote document changed since last load")
			return models.SaveResult{Outcome: models.SaveConflict, Conflict: conflict}, nil
		}
	}

	payload, err := models.Canonical(snapshot)
	if err != nil {
		return models.SaveResult{}, c.failSave(fmt.Errorf("%w: %w", ErrSaveFailed, err))
	}

	if err = c.blobs.WriteFull(ctx, c.key, payload, c.opts); err != nil {
		log.Error().Err(err).Msg("document write failed")
		return models.SaveResult{}, c.failSave(fmt.Errorf("%w: %w", ErrSaveFailed, err))
	}

	c.mu.Lock()
	c.saving = false
	now := c.now()
	c.lastSavedAt = now
	c.suppressUntil = now.Add(c.echoWindow)
	c.lastErr = nil
	if gen == c.generation {
		c.baseline = payload
		c.remoteSeen = true
		c.conflict = nil
		if c.revision == rev {
			c.dirty = false
		}
	}
	c.mu.Unlock()
	c.publish()

	log.Info().Int("bytes", len(payload)).Msg("document saved")
	return models.SaveResult{Outcome: models.SaveSaved}, nil
}

func (c *SyncClient) failSave(err error) error {
	c.mu.Lock()
	c.saving = false
	c.lastErr = err
	c.mu.Unlock()
	c.publish()
	return err
}

// Mutate applies fn to a copy of the local document. If fn succeeds the
// copy replaces the document and the client becomes dirty; if fn returns an
// error the document is left untouched. Mutate is the only way to edit the
// document.
func (c *SyncClient) Mutate(fn func(doc *models.SharedDocument) error) error {
	c.mu.Lock()
	if !c.loaded {
		c.mu.Unlock()
		return ErrNotLoaded
	}

	work := c.doc.Clone()
	if err := fn(&work); err != nil {
		c.mu.Unlock()
		return err
	}
	work.Normalize()

	c.doc = work
	c.dirty = true
	c.revision++
	c.mu.Unlock()
	c.publish()
	return nil
}

// ResolveConflict acts on the user's answer to a pending conflict.
// ResolveRefresh reloads the remote document and drops local edits.
// ResolveKeepEditing only dismisses the conflict; local edits stay dirty and
// the next save checks the remote document again.
func (c *SyncClient) ResolveConflict(ctx context.Context, resolution models.ConflictResolution) error {
	switch resolution {
	case models.ResolveRefresh:
		_, err := c.Refresh(ctx)
		return err
	case models.ResolveKeepEditing:
		c.mu.Lock()
		c.conflict = nil
		c.mu.Unlock()
		c.publish()
		return nil
	default:
		return fmt.Errorf("unknown conflict resolution %d", resolution)
	}
}

// Pull applies a newer remote document when it is safe to do so. It does
// nothing while the client is dirty, saving or loading, and within the echo
// suppression window after a save, so a device never reloads its own write
// or loses pending edits. Pull reports whether a remote change was applied.
func (c *SyncClient) Pull(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if !c.pullAllowed() {
		c.mu.Unlock()
		return false, nil
	}
	gen := c.generation
	rev := c.revision
	baseline := c.baseline
	c.mu.Unlock()

	raw, err := c.blobs.FetchLatest(ctx, c.key)
	if errors.Is(err, store.ErrBlobNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}

	doc := models.DecodeDocument(raw)
	current, err := models.Canonical(doc)
	if err != nil {
		return false, fmt.Errorf("serialize pulled document: %w", err)
	}
	if bytes.Equal(current, baseline) {
		return false, nil
	}

	c.mu.Lock()
	if !c.pullAllowed() || gen != c.generation || rev != c.revision {
		c.mu.Unlock()
		return false, nil
	}
	c.generation++
	c.applyLoaded(doc, current, true)
	c.mu.Unlock()
	c.publish()

	c.logger.Info().Msg("applied remote changes")
	return true, nil
}

// pullAllowed reports whether a poll may replace the document. c.mu must be
// held.
func (c *SyncClient) pullAllowed() bool {
	if !c.loaded || c.dirty || c.saving || c.loading > 0 || c.conflict != nil {
		return false
	}
	return !c.now().Before(c.suppressUntil)
}

// Document returns a deep copy of the local document.
func (c *SyncClient) Document() models.SharedDocument {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Clone()
}

// Status returns the current sync status.
func (c *SyncClient) Status() models.SyncStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

func (c *SyncClient) statusLocked() models.SyncStatus {
	state := models.SyncIdle
	switch {
	case c.loading > 0:
		state = models.SyncLoading
	case c.saving:
		state = models.SyncSaving
	}

	return models.SyncStatus{
		State:        state,
		Loaded:       c.loaded,
		Dirty:        c.dirty,
		Revision:     c.revision,
		Conflict:     c.conflict,
		LastError:    c.lastErr,
		LastSavedAt:  c.lastSavedAt,
		LastLoadedAt: c.lastLoadedAt,
	}
}

// Subscribe registers fn to receive the status after every transition and
// returns a function that removes it. fn is called without internal locks
// held and must not block for long.
func (c *SyncClient) Subscribe(fn func(models.SyncStatus)) (unsubscribe func()) {
	c.listenersMu.Lock()
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn
	c.listenersMu.Unlock()

	return func() {
		c.listenersMu.Lock()
		delete(c.listeners, id)
		c.listenersMu.Unlock()
	}
}

func (c *SyncClient) publish() {
	status := c.Status()

	c.listenersMu.Lock()
	fns := make([]func(models.SyncStatus), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.listenersMu.Unlock()

	for _, fn := range fns {
		fn(status)
	}
}
