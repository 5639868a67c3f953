package models

// DefaultUsers returns the seed users used on a cold start.
func DefaultUsers() []User {
	return []User{
		{ID: 1, Name: "Alice Tan", Role: RoleStaff, Grade: GradeOperator, Avatar: "AT"},
		{ID: 2, Name: "Bob Lee", Role: RoleStaff, Grade: GradeIntermediate, Avatar: "BL"},
		{ID: 3, Name: "Carol Ng", Role: RoleManager, Grade: GradeOperator, Avatar: "CN"},
		{ID: 4, Name: "David Koh", Role: RoleStaff, Grade: GradeTrainee, Avatar: "DK"},
		{ID: 5, Name: "Eve Lim", Role: RoleAdmin, Grade: GradeOperator, Avatar: "EL"},
	}
}

// DefaultLeaves returns the seed leave requests.
func DefaultLeaves() []LeaveRequest {
	return []LeaveRequest{
		{ID: 1, UserID: 1, Type: LeaveAnnual, Start: "2026-02-10", End: "2026-02-12", Reason: "Family vacation", SubmittedAt: "2026-02-01"},
		{ID: 2, UserID: 2, Type: LeaveConference, Start: "2026-02-18", End: "2026-02-20", Reason: "Tech Summit 2026", SubmittedAt: "2026-02-05"},
		{ID: 3, UserID: 4, Type: LeaveAnnual, Start: "2026-02-24", End: "2026-02-25", Reason: "Personal errands", SubmittedAt: "2026-02-14"},
		{ID: 4, UserID: 1, Type: LeaveConference, Start: "2026-03-05", End: "2026-03-07", Reason: "Marketing conference", SubmittedAt: "2026-02-13"},
		{ID: 5, UserID: 2, Type: LeaveAnnual, Start: "2026-03-10", End: "2026-03-11", Reason: "Spring break", SubmittedAt: "2026-02-10"},
	}
}

// DefaultDuties returns the seed duty requests.
func DefaultDuties() []DutyRequest {
	return []DutyRequest{
		{ID: 1, UserID: 1, Date: "2026-02-28", Reason: "Cover evening shift for David", SubmittedAt: "2026-02-15"},
		{ID: 2, UserID: 2, Date: "2026-03-02", Reason: "Weekend server maintenance", SubmittedAt: "2026-02-14"},
	}
}

// DefaultDocument returns the document a client starts from when the remote
// blob is absent or unreadable.
func DefaultDocument() SharedDocument {
	return SharedDocument{
		Users:     DefaultUsers(),
		Passwords: map[int64]string{},
		Leaves:    DefaultLeaves(),
		Duties:    DefaultDuties(),
		AuditLog:  []LogEntry{},
	}
}
