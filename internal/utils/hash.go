package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// HashHeader is the request header carrying the hex HMAC-SHA256 of the body.
const HashHeader = "HashSHA256"

// Hasher computes keyed HMAC-SHA256 digests. Hash instances are pooled so
// hashing every request body does not allocate a new HMAC each time.
//
// A Hasher built with an empty key is disabled: Enabled reports false and
// the transport skips integrity headers entirely.
type Hasher struct {
	key  []byte
	pool sync.Pool
}

// NewHasher returns a Hasher for key.
//
// Example usage:
//
//	h := utils.NewHasher("my-secret-key")
//	r.Header.Set(utils.HashHeader, h.Sum(body))
func NewHasher(key string) *Hasher {
	h := &Hasher{key: []byte(key)}
	h.pool.New = func() any {
		return hmac.New(sha256.New, h.key)
	}
	return h
}

// Enabled reports whether a key was configured.
func (h *Hasher) Enabled() bool {
	return h != nil && len(h.key) > 0
}

// Sum returns the hex-encoded HMAC-SHA256 of data.
func (h *Hasher) Sum(data []byte) string {
	mac := h.pool.Get().(hash.Hash)
	mac.Reset()

	mac.Write(data)
	sum := mac.Sum(nil)

	mac.Reset()
	h.pool.Put(mac)

	return hex.EncodeToString(sum)
}

// Verify reports whether expected is the hex digest of data, comparing in
// constant time.
func (h *Hasher) Verify(data []byte, expected string) bool {
	want, err := hex.DecodeString(expected)
	if err != nil {
		return false
	}
	got, _ := hex.DecodeString(h.Sum(data))
	return hmac.Equal(got, want)
}

// HashString computes an HMAC-SHA256 signature over data with hashKey and
// returns it hex-encoded. Unlike [Hasher.Sum] it creates a new HMAC on every
// call and suits one-off hashing.
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}
