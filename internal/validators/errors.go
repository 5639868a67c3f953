package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrNameTooShort      = errors.New("name must be at least 2 characters")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidGrade      = errors.New("invalid grade")
	ErrDatesRequired     = errors.New("please select start and end dates")
	ErrInvalidDate       = errors.New("dates must use the YYYY-MM-DD format")
	ErrEndBeforeStart    = errors.New("end date must be after start date")
	ErrReasonRequired    = errors.New("please provide a reason")
	ErrInvalidLeaveType  = errors.New("invalid leave type")
	ErrDateRequired      = errors.New("please select a date")
	ErrWrongPassword     = errors.New("current password is incorrect")
	ErrPasswordTooShort  = errors.New("new password must be at least 4 characters")
	ErrPasswordsMismatch = errors.New("passwords do not match")
)
