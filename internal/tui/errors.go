// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-leave-sync/internal/adapter"
	"github.com/MKhiriev/go-leave-sync/internal/service"
)

// humanizeError turns a service error into a message for the status area.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrRemoteUnavailable):
		if isNetworkError(err) {
			return "Server unreachable. Your changes are kept; try saving again."
		}
		return "Could not check the shared data. Your changes are kept; try saving again."
	case errors.Is(err, adapter.ErrIntegrityCheckFailed):
		return "The server rejected the save: hash keys do not match. Your changes are kept."
	case errors.Is(err, service.ErrSaveFailed):
		return "Save failed. Your changes are kept; try again."
	case errors.Is(err, service.ErrNotLoaded):
		return "Data is still loading."
	}

	if isNetworkError(err) {
		return "Server unreachable"
	}
	return err.Error()
}

func isNetworkError(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded")
}
