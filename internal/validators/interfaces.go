// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the records a LeaveSync user can create before
// they reach the shared document: users, leave requests, duty requests and
// profile updates.
//
// Validation is field-scoped. Callers that edit a single attribute pass the
// matching Field* constant so unrelated rules are not re-checked.
package validators

import "context"

// Validator checks a workspace record. fields limits the check to the named
// rules; none means all of them.
type Validator interface {
	Validate(ctx context.Context, record any, fields ...string) error
}
