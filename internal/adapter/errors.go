package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrNotFound            = errors.New("not found")
	ErrMethodNotAllowed    = errors.New("method not allowed")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")

	// ErrIntegrityCheckFailed means the server rejected the HashSHA256
	// header, usually because the client and server hash keys differ.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")

	// ErrUnexpectedStatus wraps every other non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected http status")
)
