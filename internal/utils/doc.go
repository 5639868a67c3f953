// Package utils provides general-purpose helper utilities used across the
// server and the client: keyed request hashing, JSON response writing and
// HTTP client initialization.
package utils
