package store

import "github.com/jackc/pgerrcode"

// ErrorClassification tells withRetry whether a failed statement may
// succeed on another attempt.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// isUniqueViolation reports a duplicate blob key on either SQL backend.
func isUniqueViolation(err error) bool {
	return pgCode(err) == pgerrcode.UniqueViolation || isSQLiteUniqueViolation(err)
}
