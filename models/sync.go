// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ConflictMessage is shown to the user when a save was refused because the
// remote document moved on since the last load.
const ConflictMessage = "Another user has saved changes since you last loaded. Please refresh to get the latest data before saving."

// SyncState is the phase of the sync client state machine.
type SyncState int

const (
	// SyncLoading means a load or refresh is in progress.
	SyncLoading SyncState = iota
	// SyncIdle means the client is neither loading nor saving.
	SyncIdle
	// SyncSaving means a save is in progress.
	SyncSaving
)

func (s SyncState) String() string {
	switch s {
	case SyncLoading:
		return "loading"
	case SyncIdle:
		return "idle"
	case SyncSaving:
		return "saving"
	default:
		return "unknown"
	}
}

// Conflict is raised when the remote document no longer matches the
// baseline snapshot taken at the last load or save.
type Conflict struct {
	Message    string    `json:"message"`
	DetectedAt time.Time `json:"detected_at"`
}

// NewConflict returns a Conflict carrying ConflictMessage.
func NewConflict(at time.Time) *Conflict {
	return &Conflict{Message: ConflictMessage, DetectedAt: at}
}

// ConflictResolution is the user's answer to a Conflict.
type ConflictResolution int

const (
	// ResolveRefresh discards local edits and reloads the remote document.
	ResolveRefresh ConflictResolution = iota
	// ResolveKeepEditing dismisses the conflict and keeps local edits.
	// The next save checks the remote document again.
	ResolveKeepEditing
)

// SyncStatus is a snapshot of the sync client state, published to
// subscribers on every transition.
type SyncStatus struct {
	State SyncState

	// Loaded is false until the first load completes.
	Loaded bool

	// Dirty is true when local edits have not been saved yet.
	Dirty bool

	// Revision counts local edits since the client was created.
	Revision uint64

	// Conflict is non-nil while a conflict awaits resolution.
	Conflict *Conflict

	// LastError is the last user-visible sync failure, if any.
	LastError error

	LastSavedAt  time.Time
	LastLoadedAt time.Time
}

// SaveOutcome tells how a save request ended when it did not fail.
type SaveOutcome int

const (
	// SaveSaved means the document was written.
	SaveSaved SaveOutcome = iota
	// SaveClean means there was nothing to save and the store was not touched.
	SaveClean
	// SaveConflict means the remote document had changed and nothing was written.
	SaveConflict
	// SaveSkipped means another save was already in flight.
	SaveSkipped
)

func (o SaveOutcome) String() string {
	switch o {
	case SaveSaved:
		return "saved"
	case SaveClean:
		return "clean"
	case SaveConflict:
		return "conflict"
	case SaveSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// SaveResult is returned by a save that did not fail.
type SaveResult struct {
	Outcome SaveOutcome
	// Conflict is set when Outcome is SaveConflict.
	Conflict *Conflict
}
