// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// AuditLogCap is the maximum number of entries kept in SharedDocument.AuditLog.
// Older entries are dropped when a new one is prepended past the cap.
const AuditLogCap = 500

// DateLayout is the calendar date format used by leave and duty requests.
const DateLayout = "2006-01-02"

// TimestampLayout is the UTC timestamp format used by audit log entries.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Role defines what a user may see and do in the application.
type Role string

const (
	// RoleStaff can manage only their own requests.
	RoleStaff Role = "staff"

	// RoleManager can additionally review everybody's requests.
	RoleManager Role = "manager"

	// RoleAdmin can additionally manage users and read the audit log.
	RoleAdmin Role = "admin"
)

// Roles lists every known role in display order.
var Roles = []Role{RoleStaff, RoleManager, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Grade is the seniority grade of a user.
type Grade string

const (
	GradeOperator     Grade = "Operator"
	GradeIntermediate Grade = "Intermediate"
	GradeTrainee      Grade = "Trainee"
)

// Grades lists every known grade in display order.
var Grades = []Grade{GradeOperator, GradeIntermediate, GradeTrainee}

// Valid reports whether g is one of the known grades.
func (g Grade) Valid() bool {
	for _, known := range Grades {
		if g == known {
			return true
		}
	}
	return false
}

// LeaveType is the kind of leave a request asks for.
type LeaveType string

const (
	LeaveAnnual     LeaveType = "Annual / Paid Leave"
	LeaveConference LeaveType = "Conference Leave"
)

// LeaveTypes lists every known leave type in display order.
var LeaveTypes = []LeaveType{LeaveAnnual, LeaveConference}

// Valid reports whether t is one of the known leave types.
func (t LeaveType) Valid() bool {
	for _, known := range LeaveTypes {
		if t == known {
			return true
		}
	}
	return false
}

// User is a member of the shared workspace.
type User struct {
	// ID is unique within SharedDocument.Users.
	ID int64 `json:"id"`

	// Name is the display name. Audit entries copy it at write time.
	Name string `json:"name"`

	Role  Role  `json:"role"`
	Grade Grade `json:"grade"`

	// Avatar holds up to two upper-cased initials derived from Name.
	Avatar string `json:"avatar"`
}

// LeaveRequest is a request for one or more days of leave.
// Start is never after End.
type LeaveRequest struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Type        LeaveType `json:"type"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	Reason      string    `json:"reason"`
	SubmittedAt string    `json:"submittedAt"`
}

// DutyRequest is a request to take an extra duty on a given day.
type DutyRequest struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	Date        string `json:"date"`
	Reason      string `json:"reason"`
	SubmittedAt string `json:"submittedAt"`
}

// LogEntry is a single audit log record.
type LogEntry struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"userId"`
	UserName string `json:"userName"`
	Action   string `json:"action"`
	Details  string `json:"details"`

	// Timestamp is formatted with TimestampLayout.
	Timestamp string `json:"timestamp"`
}

// SharedDocument is the whole application state shared between devices.
// It is always read and written as one blob.
type SharedDocument struct {
	Users []User `json:"users"`

	// Passwords maps a user id to a plaintext password.
	// A user without an entry has no password gate.
	Passwords map[int64]string `json:"passwords"`

	Leaves []LeaveRequest `json:"leaves"`
	Duties []DutyRequest  `json:"duties"`

	// AuditLog is ordered newest first and never longer than AuditLogCap.
	AuditLog []LogEntry `json:"auditLog"`
}

// Clone returns a deep copy of the document.
func (d SharedDocument) Clone() SharedDocument {
	out := SharedDocument{
		Users:     append([]User{}, d.Users...),
		Passwords: make(map[int64]string, len(d.Passwords)),
		Leaves:    append([]LeaveRequest{}, d.Leaves...),
		Duties:    append([]DutyRequest{}, d.Duties...),
		AuditLog:  append([]LogEntry{}, d.AuditLog...),
	}
	for id, pw := range d.Passwords {
		out.Passwords[id] = pw
	}
	return out
}

// Normalize replaces nil collections with empty ones and enforces the audit
// log cap, so that equal documents always serialize to equal bytes.
func (d *SharedDocument) Normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Passwords == nil {
		d.Passwords = map[int64]string{}
	}
	if d.Leaves == nil {
		d.Leaves = []LeaveRequest{}
	}
	if d.Duties == nil {
		d.Duties = []DutyRequest{}
	}
	if d.AuditLog == nil {
		d.AuditLog = []LogEntry{}
	}
	if len(d.AuditLog) > AuditLogCap {
		d.AuditLog = d.AuditLog[:AuditLogCap]
	}
}

// Initials derives an avatar from a display name: the first letter of each
// space separated word, upper-cased, at most two letters.
func Initials(name string) string {
	var b strings.Builder
	count := 0
	for _, word := range strings.Split(name, " ") {
		if word == "" {
			continue
		}
		r := []rune(word)[0]
		b.WriteString(strings.ToUpper(string(r)))
		count++
		if count == 2 {
			break
		}
	}
	return b.String()
}
