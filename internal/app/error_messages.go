// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// LeaveSync server handlers and middleware.
//
// All Msg* constants are human-readable message strings written into HTTP
// response bodies as {"error": Msg}. Clients receive them verbatim, so the
// wording is part of the HTTP contract.
package app

const (
	// MsgInvalidJSON is returned when a document upload is not valid JSON.
	MsgInvalidJSON = "Invalid JSON"

	// MsgFailedToSaveData is returned when the document store rejects or
	// fails a write.
	MsgFailedToSaveData = "Failed to save data"

	// MsgMethodNotAllowed is returned for any method the endpoint does not
	// serve.
	MsgMethodNotAllowed = "Method not allowed"

	// MsgIntegrityCheckFailed is returned when the HashSHA256 header is
	// missing or does not match the request body.
	MsgIntegrityCheckFailed = "Integrity check failed"

	// MsgInvalidGzip is returned when a gzip-encoded request body cannot be
	// decompressed.
	MsgInvalidGzip = "Invalid gzip data"
)
