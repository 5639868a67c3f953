package store

import (
	"strings"

	"github.com/google/uuid"
)

// resolveKey returns the key a blob is actually stored under.
func resolveKey(key string, opts WriteOptions) string {
	if opts.StableKey {
		return key
	}

	ext := ""
	if i := strings.LastIndex(key, "."); i > 0 {
		key, ext = key[:i], key[i:]
	}
	return key + "-" + uuid.NewString() + ext
}
