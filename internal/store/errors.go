package store

import "errors"

// Sentinel errors returned by document store backends. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrBlobNotFound is returned by FetchLatest when nothing has been
	// written under the requested key yet.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrBlobExists is returned by WriteFull when the key already holds a
	// blob and the write options forbid overwriting it.
	ErrBlobExists = errors.New("blob already exists")

	// ErrUnknownBackend is returned by NewBlobStore for an unsupported
	// Storage.Backend value.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Low-level database operation errors. These are returned (or wrapped) by
// the SQL backend when a SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT or an
	// upsert fails.
	ErrExecutingStatement = errors.New("failed to executing statement")
)
