package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/internal/store"
	"github.com/MKhiriev/go-leave-sync/internal/validators"
	"github.com/MKhiriev/go-leave-sync/models"
)

// Audit log actions.
const (
	ActionUserAdded       = "User added"
	ActionUserEdited      = "User edited"
	ActionUserRemoved     = "User removed"
	ActionPasswordChanged = "Password changed"
	ActionNameChanged     = "Name changed"
	ActionLeaveRequested  = "Leave requested"
	ActionLeaveDeleted    = "Leave deleted"
	ActionDutyRequested   = "Duty requested"
	ActionDutyDeleted     = "Duty deleted"
)

const unknownUserName = "Unknown"

// Workspace is the application side of the sync client: it edits the shared
// document on behalf of the current user and records every change in the
// audit log. All edits go through SyncClient.Mutate.
type Workspace struct {
	sync      *SyncClient
	prefs     store.Preferences
	ids       models.IDGenerator
	validator validators.Validator
	now       func() time.Time
	logger    *logger.Logger

	mu            sync.RWMutex
	currentUserID int64
}

// NewWorkspace returns a Workspace editing the document held by syncClient.
// prefs keeps the id of the last signed-in user on this device.
func NewWorkspace(syncClient *SyncClient, prefs store.Preferences, logger *logger.Logger) *Workspace {
	return &Workspace{
		sync:      syncClient,
		prefs:     prefs,
		ids:       models.NewClockIDGenerator(nil),
		validator: validators.NewWorkspaceValidator(),
		now:       time.Now,
		logger:    logger,
	}
}

// Sync returns the underlying sync client.
func (w *Workspace) Sync() *SyncClient {
	return w.sync
}

// Load loads the document and restores the current user.
func (w *Workspace) Load(ctx context.Context) error {
	if _, err := w.sync.Load(ctx); err != nil {
		return err
	}
	w.RestoreCurrentUser()
	return nil
}

// Refresh reloads the document, discarding local edits, and restores the
// current user.
func (w *Workspace) Refresh(ctx context.Context) error {
	if _, err := w.sync.Refresh(ctx); err != nil {
		return err
	}
	w.RestoreCurrentUser()
	return nil
}

// RestoreCurrentUser selects the user remembered on this device, or the
// first user of the document when that user no longer exists.
func (w *Workspace) RestoreCurrentUser() {
	doc := w.sync.Document()
	if len(doc.Users) == 0 {
		return
	}

	saved := w.prefs.GetInt64(store.PrefCurrentUserID, 0)
	id := doc.Users[0].ID
	if _, ok := findUser(doc.Users, saved); ok {
		id = saved
	}
	w.setCurrentUser(id)
}

// NeedsPassword reports whether userID is protected by a password.
func (w *Workspace) NeedsPassword(userID int64) bool {
	return w.sync.Document().Passwords[userID] != ""
}

// Authenticate checks password against the one recorded for userID and, on
// success, makes userID the current user. Users without a password are
// accepted with any input.
func (w *Workspace) Authenticate(userID int64, password string) (models.User, error) {
	doc := w.sync.Document()

	user, ok := findUser(doc.Users, userID)
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	if stored := doc.Passwords[userID]; stored != "" && stored != password {
		return models.User{}, ErrWrongPassword
	}

	w.setCurrentUser(userID)
	return user, nil
}

func (w *Workspace) setCurrentUser(id int64) {
	w.mu.Lock()
	w.currentUserID = id
	w.mu.Unlock()

	if err := w.prefs.Set(store.PrefCurrentUserID, id); err != nil {
		w.logger.Warn().Err(err).Int64("user_id", id).Msg("failed to remember current user")
	}
}

// CurrentUser returns the signed-in user. It reports false when nobody is
// signed in or the user was removed from the document.
func (w *Workspace) CurrentUser() (models.User, bool) {
	w.mu.RLock()
	id := w.currentUserID
	w.mu.RUnlock()

	if id == 0 {
		return models.User{}, false
	}
	return findUser(w.sync.Document().Users, id)
}

// CanReview reports whether the current user may see and delete everyone's
// requests.
func (w *Workspace) CanReview() bool {
	u, ok := w.CurrentUser()
	return ok && canReview(u)
}

// IsAdmin reports whether the current user manages users.
func (w *Workspace) IsAdmin() bool {
	u, ok := w.CurrentUser()
	return ok && u.Role == models.RoleAdmin
}

// mutateAs runs fn inside SyncClient.Mutate with the current user as read
// from the document being edited.
func (w *Workspace) mutateAs(fn func(doc *models.SharedDocument, me models.User) error) error {
	w.mu.RLock()
	id := w.currentUserID
	w.mu.RUnlock()

	if id == 0 {
		return ErrNoCurrentUser
	}

	return w.sync.Mutate(func(doc *models.SharedDocument) error {
		me, ok := findUser(doc.Users, id)
		if !ok {
			return ErrNoCurrentUser
		}
		return fn(doc, me)
	})
}

// appendLog prepends an audit entry and enforces the cap.
func (w *Workspace) appendLog(doc *models.SharedDocument, me models.User, action, details string) {
	entry := models.LogEntry{
		ID:        w.ids.NextID(),
		UserID:    me.ID,
		UserName:  me.Name,
		Action:    action,
		Details:   details,
		Timestamp: w.now().UTC().Format(models.TimestampLayout),
	}

	doc.AuditLog = append([]models.LogEntry{entry}, doc.AuditLog...)
	if len(doc.AuditLog) > models.AuditLogCap {
		doc.AuditLog = doc.AuditLog[:models.AuditLogCap]
	}
}

// AppendLog records an audit entry written by the current user.
func (w *Workspace) AppendLog(action, details string) error {
	return w.mutateAs(func(doc *models.SharedDocument, me models.User) error {
		w.appendLog(doc, me, action, details)
		return nil
	})
}

// ClearAuditLog empties the audit log. Admins only.
func (w *Workspace) ClearAuditLog() error {
	return w.mutateAs(func(doc *models.SharedDocument, me models.User) error {
		if me.Role != models.RoleAdmin {
			return ErrForbidden
		}
		doc.AuditLog = []models.LogEntry{}
		return nil
	})
}

// AddUser creates a user. Admins only.
func (w *Workspace) AddUser(ctx context.Context, name string, role models.Role, grade models.Grade) (models.User, error) {
	user := models.User{Name: strings.TrimSpace(name), Role: role, Grade: grade}
	if err := w.validator.Validate(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	user.Avatar = models.Initials(user.Name)

	err := w.mutateAs(func(doc *models.SharedDocument, me models.User) error {
		if me.Role != models.RoleAdmin {
			return ErrForbidden
		}
		user.ID = w.ids.NextUserID(doc.Users)
		doc.Users = append(doc.Users, user)
		w.appendLog(doc, me, ActionUserAdded,
			fmt.Sprintf("Added new user: %s (%s, %s)", user.Name, user.Role, user.Grade))
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// EditUser changes a user's name, role and grade. Admins only.
func (w *Workspace) EditUser(ctx context.Context, id int64, name string, role models.Role, grade models.Grade) (models.User, error) {
	name = strings.TrimSpace(name)
	if err := w.validator.Validate(ctx, models.User{Name: name, Role: role, Grade: grade}); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	var updated models.User
	err := w.mutateAs(func(doc *models.SharedDocument, me models.User) error {
		if me.Role != models.RoleAdmin {
			return ErrForbidden
		}
		idx := slices.IndexFunc(doc.Users, func(u models.User) bool { return u.ID == id })
		if idx < 0 {
			return ErrUserNotFound
		}

		old := doc.Users[idx]
		updated = models.User{ID: id, Name: name, Role: role, Grade: grade, Avatar: models.Initials(name)}
		doc.Users[idx] = updated
		w.appendLog(doc, me, ActionUserEdited,
			fmt.Sprintf("Edited %s: name=%s, role=%s, grade=%s", old.Name, name, role, grade))
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return updated, nil
}

// RemoveUser deletes a user together with their leave and duty requests.
// Admins only; the current user cannot remove themselves.
func (w *Workspace) RemoveUser(id int64) error {
	return w.mutateAs(func(doc *models.SharedDocument, me models.User) error {
		if me.Role != models.RoleAdmin {
			return ErrForbidden
		}
		if id == me.ID {
			return ErrCannotRemoveSelf
		}

		removedName := unknownUserName
		if u, ok := findUser(doc.Users, id); ok {
			removedName = u.Name
		}

		doc.Users = slices.DeleteFunc(doc.Users, func(u models.User) bool { return u.ID == id })
		doc.Leaves = slices.DeleteFunc(doc.Leaves, func(l models.LeaveRequest) bool { return l.UserID == id })
		doc.Duties = slices.DeleteFunc(doc.Duties, func(d models.DutyRequest) bool { return d.UserID == id })
		delete(doc.Passwords, id)

		w.appendLog(doc, me, ActionUserRemoved, "Removed user: "+removedName)
		return nil
	})
}

// UpdateProfile renames the current user and optionally changes their
// password. Password fields left empty keep the password unchanged.
func (w *Workspace) UpdateProfile(ctx context.Context, name, currentPassword, newPassword, confirmPassword string) (models.User, error) {
	var updated models.User
	err := w.mutateAs(func(doc *models.SharedDocument, me models.User) error {
		update := models.ProfileUpdate{
			Name:            strings.TrimSpace(name),
			CurrentPassword: currentPassword,
			NewPassword:     newPassword,
			ConfirmPassword: confirmPassword,
			StoredPassword:  doc.Passwords[me.ID],
		}
		if err := w.validator.Validate(ctx, update); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}

		if update.ChangesPassword() {
			doc.Passwords[me.ID] = update.NewPassword
			w.appendLog(doc, me, ActionPasswordChanged, me.Name+" changed their password")
		}

		updated = me
		updated.Name = update.Name
		updated.Avatar = models.Initials(update.Name)
		if updated.Name != me.Name {
			w.appendLog(doc, me, ActionNameChanged,
				fmt.Sprintf("Changed name from %q to %q", me.Name, updated.Name))
		}

		idx := slices.IndexFunc(doc.Users, func(u models.User) bool { return u.ID == me.ID })
		doc.Users[idx] = updated
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return updated, nil
}

// SubmitLeave files a leave request for the current user.
func (w *Workspace) SubmitLeave(ctx context.Context, leaveType models.LeaveType, start, end, reason string) (models.LeaveRequest, error) {
	leave := models.LeaveRequest{Type: leaveType, Start: start, End: end, Reason: reason}
	if err := w.validator.Validate(ctx, leave); err != nil {
		return models.LeaveRequest{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	err := w.mutateAs(func(doc *models.SharedDocument, me models.User) error {
		leave.ID = w.ids.NextID()
		leave.UserID = me.ID
		leave.SubmittedAt = w.now().UTC().Format(models.DateLayout)
		doc.Leaves = append(doc.Leaves, leave)
		w.appendLog(doc, me, ActionLeaveRequested,
			fmt.Sprintf("%s: %s to %s — %s", leave.Type, leave.Start, leave.End, leave.Reason))
		return nil
	})
	if err != nil {
		return models.LeaveRequest{}, err
	}
	return leave, nil
}

// DeleteLeave removes a leave request. Users delete their own requests;
// reviewers delete anyone's.
func (w *Workspace) DeleteLeave(id int64) error {
	return w.mutateAs(func(doc *models.SharedDocument, me models.User) error {
		idx := slices.IndexFunc(doc.Leaves, func(l models.LeaveRequest) bool { return l.ID == id })
		if idx < 0 {
			return ErrLeaveNotFound
		}
		leave := doc.Leaves[idx]
		if leave.UserID != me.ID && !canReview(me) {
			return ErrForbidden
		}

		doc.Leaves = slices.Delete(doc.Leaves, idx, idx+1)
		w.appendLog(doc, me, ActionLeaveDeleted,
			fmt.Sprintf("Deleted %s's %s: %s to %s", ownerName(doc.Users, leave.UserID), leave.Type, leave.Start, leave.End))
		return nil
	})
}

// SubmitDuty files a duty request for the current user.
func (w *Workspace) SubmitDuty(ctx context.Context, date, reason string) (models.DutyRequest, error) {
	duty := models.DutyRequest{Date: date, Reason: reason}
	if err := w.validator.Validate(ctx, duty); err != nil {
		return models.DutyRequest{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	err := w.mutateAs(func(doc *models.SharedDocument, me models.User) error {
		duty.ID = w.ids.NextID()
		duty.UserID = me.ID
		duty.SubmittedAt = w.now().UTC().Format(models.DateLayout)
		doc.Duties = append(doc.Duties, duty)
		w.appendLog(doc, me, ActionDutyRequested,
			fmt.Sprintf("Duty on %s — %s", duty.Date, duty.Reason))
		return nil
	})
	if err != nil {
		return models.DutyRequest{}, err
	}
	return duty, nil
}

// DeleteDuty removes a duty request with the same ownership rules as
// DeleteLeave.
func (w *Workspace) DeleteDuty(id int64) error {
	return w.mutateAs(func(doc *models.SharedDocument, me models.User) error {
		idx := slices.IndexFunc(doc.Duties, func(d models.DutyRequest) bool { return d.ID == id })
		if idx < 0 {
			return ErrDutyNotFound
		}
		duty := doc.Duties[idx]
		if duty.UserID != me.ID && !canReview(me) {
			return ErrForbidden
		}

		doc.Duties = slices.Delete(doc.Duties, idx, idx+1)
		w.appendLog(doc, me, ActionDutyDeleted,
			fmt.Sprintf("Deleted %s's duty on %s", ownerName(doc.Users, duty.UserID), duty.Date))
		return nil
	})
}

// Users returns all users in document order.
func (w *Workspace) Users() []models.User {
	return w.sync.Document().Users
}

// UserByID looks a user up by id.
func (w *Workspace) UserByID(id int64) (models.User, bool) {
	return findUser(w.sync.Document().Users, id)
}

// DisplayName returns the user's name, or "Unknown" for a removed user.
func (w *Workspace) DisplayName(id int64) string {
	if u, ok := w.UserByID(id); ok {
		return u.Name
	}
	return unknownUserName
}

// Leaves returns every leave request.
func (w *Workspace) Leaves() []models.LeaveRequest {
	return w.sync.Document().Leaves
}

// LeavesFor returns the leave requests filed by userID.
func (w *Workspace) LeavesFor(userID int64) []models.LeaveRequest {
	leaves := w.sync.Document().Leaves
	return slices.DeleteFunc(leaves, func(l models.LeaveRequest) bool { return l.UserID != userID })
}

// LeavesOn returns the leave requests covering date (YYYY-MM-DD).
func (w *Workspace) LeavesOn(date string) []models.LeaveRequest {
	leaves := w.sync.Document().Leaves
	return slices.DeleteFunc(leaves, func(l models.LeaveRequest) bool {
		return date < l.Start || date > l.End
	})
}

// Duties returns every duty request.
func (w *Workspace) Duties() []models.DutyRequest {
	return w.sync.Document().Duties
}

// DutiesFor returns the duty requests filed by userID.
func (w *Workspace) DutiesFor(userID int64) []models.DutyRequest {
	duties := w.sync.Document().Duties
	return slices.DeleteFunc(duties, func(d models.DutyRequest) bool { return d.UserID != userID })
}

// DutiesInMonth returns the duty requests dated within the given month.
func (w *Workspace) DutiesInMonth(year int, month time.Month) []models.DutyRequest {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	duties := w.sync.Document().Duties
	return slices.DeleteFunc(duties, func(d models.DutyRequest) bool { return !strings.HasPrefix(d.Date, prefix) })
}

// AuditLog returns the audit log, newest first.
func (w *Workspace) AuditLog() []models.LogEntry {
	return w.sync.Document().AuditLog
}

func findUser(users []models.User, id int64) (models.User, bool) {
	idx := slices.IndexFunc(users, func(u models.User) bool { return u.ID == id })
	if idx < 0 {
		return models.User{}, false
	}
	return users[idx], true
}

func ownerName(users []models.User, id int64) string {
	if u, ok := findUser(users, id); ok {
		return u.Name
	}
	return "user"
}

func canReview(u models.User) bool {
	return u.Role == models.RoleManager || u.Role == models.RoleAdmin
}
