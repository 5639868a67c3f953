package tui

import "github.com/MKhiriev/go-leave-sync/models"

type loadedMsg struct {
	err error
}

type statusMsg struct {
	status models.SyncStatus
}

type saveDoneMsg struct {
	result models.SaveResult
	err    error
}

type refreshDoneMsg struct {
	err error
}

type resolvedMsg struct {
	resolution models.ConflictResolution
	err        error
}

// actionDoneMsg reports a workspace edit; notice is shown on success.
type actionDoneMsg struct {
	notice string
	err    error
}

type exportDoneMsg struct {
	path string
	err  error
}

type copiedMsg struct {
	err error
}

type clearNoticeMsg struct {
	seq int
}
