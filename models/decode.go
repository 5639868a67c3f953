// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
)

// DecodeDocument turns a raw remote blob into a SharedDocument.
//
// Every top-level field is decoded on its own, so one malformed field does
// not take the others down with it:
//   - users: absent, malformed or empty falls back to DefaultUsers;
//   - passwords: absent or malformed falls back to an empty map;
//   - leaves, duties: absent or malformed fall back to the seed requests;
//   - auditLog: absent or malformed falls back to an empty log.
//
// An empty body, JSON null or a non-object value yields DefaultDocument.
// DecodeDocument never fails; the result is normalized.
func DecodeDocument(raw []byte) SharedDocument {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return DefaultDocument()
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return DefaultDocument()
	}

	doc := SharedDocument{}

	if !decodeField(fields, "users", &doc.Users) || len(doc.Users) == 0 {
		doc.Users = DefaultUsers()
	}
	if !decodeField(fields, "passwords", &doc.Passwords) {
		doc.Passwords = map[int64]string{}
	}
	if !decodeField(fields, "leaves", &doc.Leaves) {
		doc.Leaves = DefaultLeaves()
	}
	if !decodeField(fields, "duties", &doc.Duties) {
		doc.Duties = DefaultDuties()
	}
	if !decodeField(fields, "auditLog", &doc.AuditLog) {
		doc.AuditLog = []LogEntry{}
	}

	doc.Normalize()
	return doc
}

// decodeField reports whether the named field was present, non-null and
// decoded into dst.
func decodeField[T any](fields map[string]json.RawMessage, name string, dst *T) bool {
	value, ok := fields[name]
	if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return false
	}
	var decoded T
	if err := json.Unmarshal(value, &decoded); err != nil {
		return false
	}
	*dst = decoded
	return true
}

// Canonical returns the exact serialized form of a normalized copy of doc.
// Two documents with the same content always produce identical bytes.
func Canonical(doc SharedDocument) ([]byte, error) {
	normalized := doc.Clone()
	normalized.Normalize()
	return json.Marshal(normalized)
}

// CanonicalOf decodes raw with DecodeDocument and returns its canonical form.
// It is used to compare a remote blob against a baseline snapshot.
func CanonicalOf(raw []byte) ([]byte, error) {
	return Canonical(DecodeDocument(raw))
}
