package service

import "errors"

var (
	// ErrRemoteUnavailable means the pre-save check could not read the
	// remote document. Nothing was written and local edits are kept.
	ErrRemoteUnavailable = errors.New("remote document is unavailable")
	// ErrSaveFailed means the write itself failed. Local edits are kept.
	ErrSaveFailed = errors.New("save failed")
	// ErrNotLoaded is returned by operations that need a loaded document.
	ErrNotLoaded = errors.New("document is not loaded")
	// ErrLoadSuperseded is returned by a load whose result was discarded
	// because a newer load started after it.
	ErrLoadSuperseded = errors.New("load superseded by a newer load")

	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrNoCurrentUser    = errors.New("no current user selected")
	ErrUserNotFound     = errors.New("user not found")
	ErrLeaveNotFound    = errors.New("leave request not found")
	ErrDutyNotFound     = errors.New("duty request not found")
	ErrCannotRemoveSelf = errors.New("cannot delete yourself")
	ErrWrongPassword    = errors.New("wrong password")
	ErrForbidden        = errors.New("not allowed for the current user")
)
