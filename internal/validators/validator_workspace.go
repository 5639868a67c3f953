package validators

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-leave-sync/models"
)

// Field name constants used to specify which fields should be validated.
// They are passed to Validate to restrict validation to a subset of fields.
const (
	// FieldName targets a user's display name.
	FieldName = "name"

	// FieldRole targets a user's role.
	FieldRole = "role"

	// FieldGrade targets a user's grade.
	FieldGrade = "grade"

	// FieldLeaveType targets the type of a leave request.
	FieldLeaveType = "type"

	// FieldDates targets the start and end dates of a leave request.
	FieldDates = "dates"

	// FieldDate targets the date of a duty request.
	FieldDate = "date"

	// FieldReason targets the free-text reason of a leave or duty request.
	FieldReason = "reason"

	// FieldPassword targets the password change part of a profile update.
	FieldPassword = "password"
)

const (
	minNameLength     = 2
	minPasswordLength = 4
)

// WorkspaceValidator implements Validator for the records a user can create
// in the shared workspace: User, LeaveRequest, DutyRequest and ProfileUpdate.
// Both value and pointer forms are accepted.
type WorkspaceValidator struct{}

// NewWorkspaceValidator returns a WorkspaceValidator as a Validator.
func NewWorkspaceValidator() Validator {
	return &WorkspaceValidator{}
}

// Validate dispatches on the dynamic type of obj. The first failed rule is
// returned. When fields is empty every rule of the type is checked.
func (v *WorkspaceValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(value, fields...)
	case *models.User:
		return v.validateUser(*value, fields...)
	case models.LeaveRequest:
		return v.validateLeave(value, fields...)
	case *models.LeaveRequest:
		return v.validateLeave(*value, fields...)
	case models.DutyRequest:
		return v.validateDuty(value, fields...)
	case *models.DutyRequest:
		return v.validateDuty(*value, fields...)
	case models.ProfileUpdate:
		return v.validateProfile(value, fields...)
	case *models.ProfileUpdate:
		return v.validateProfile(*value, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *WorkspaceValidator) validateUser(user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldRole, FieldGrade}
	}

	for _, field := range fields {
		switch field {
		case FieldName:
			if err := validateName(user.Name); err != nil {
				return err
			}
		case FieldRole:
			if !user.Role.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidRole, user.Role)
			}
		case FieldGrade:
			if !user.Grade.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidGrade, user.Grade)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}
	return nil
}

func (v *WorkspaceValidator) validateLeave(leave models.LeaveRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDates, FieldReason, FieldLeaveType}
	}

	for _, field := range fields {
		switch field {
		case FieldDates:
			if leave.Start == "" || leave.End == "" {
				return ErrDatesRequired
			}
			start, err := parseDate(leave.Start)
			if err != nil {
				return err
			}
			end, err := parseDate(leave.End)
			if err != nil {
				return err
			}
			if end.Before(start) {
				return ErrEndBeforeStart
			}
		case FieldReason:
			if strings.TrimSpace(leave.Reason) == "" {
				return ErrReasonRequired
			}
		case FieldLeaveType:
			if !leave.Type.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidLeaveType, leave.Type)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}
	return nil
}

func (v *WorkspaceValidator) validateDuty(duty models.DutyRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDate, FieldReason}
	}

	for _, field := range fields {
		switch field {
		case FieldDate:
			if duty.Date == "" {
				return ErrDateRequired
			}
			if _, err := parseDate(duty.Date); err != nil {
				return err
			}
		case FieldReason:
			if strings.TrimSpace(duty.Reason) == "" {
				return ErrReasonRequired
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}
	return nil
}

func (v *WorkspaceValidator) validateProfile(update models.ProfileUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldPassword}
	}

	for _, field := range fields {
		switch field {
		case FieldName:
			if err := validateName(update.Name); err != nil {
				return err
			}
		case FieldPassword:
			if !update.ChangesPassword() {
				continue
			}
			if update.CurrentPassword != update.StoredPassword {
				return ErrWrongPassword
			}
			if utf8.RuneCountInString(update.NewPassword) < minPasswordLength {
				return ErrPasswordTooShort
			}
			if update.NewPassword != update.ConfirmPassword {
				return ErrPasswordsMismatch
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}
	return nil
}

func validateName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < minNameLength {
		return ErrNameTooShort
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}
