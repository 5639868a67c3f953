package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-leave-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDocument() models.SharedDocument {
	return models.SharedDocument{
		Users: []models.User{
			{ID: 1, Name: "Alice Smith", Role: models.RoleAdmin, Grade: models.GradeOperator},
			{ID: 2, Name: "Bob Jones", Role: models.RoleStaff, Grade: models.GradeTrainee},
		},
		Leaves: []models.LeaveRequest{
			{ID: 10, UserID: 2, Type: models.LeaveAnnual, Start: "2026-07-01", End: "2026-07-03", Reason: "Holiday", SubmittedAt: "2026-06-01"},
			{ID: 11, UserID: 9, Type: models.LeaveConference, Start: "2026-08-01", End: "2026-08-01", Reason: "Talk", SubmittedAt: "2026-06-02"},
		},
		Duties: []models.DutyRequest{
			{ID: 20, UserID: 1, Date: "2026-09-05", Reason: "Cover", SubmittedAt: "2026-06-03"},
		},
		AuditLog: []models.LogEntry{
			{ID: 30, UserID: 1, UserName: "Alice Smith", Action: "User added", Details: "Added Bob Jones", Timestamp: "2026-06-01T10:00:00.000Z"},
		},
	}
}

func readRows(t *testing.T, f *excelize.File, sheet string) [][]string {
	t.Helper()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(sampleDocument(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetUsers, SheetLeaves, SheetDuties, SheetAuditLog}, f.GetSheetList())

	users := readRows(t, f, SheetUsers)
	require.Len(t, users, 3)
	assert.Equal(t, []string{"ID", "Name", "Role", "Grade"}, users[0])
	assert.Equal(t, []string{"2", "Bob Jones", "staff", "Trainee"}, users[2])

	leaves := readRows(t, f, SheetLeaves)
	require.Len(t, leaves, 3)
	assert.Equal(t, "Bob Jones", leaves[1][1])
	assert.Equal(t, "Unknown", leaves[2][1])
	assert.Equal(t, "Annual / Paid Leave", leaves[1][2])

	duties := readRows(t, f, SheetDuties)
	require.Len(t, duties, 2)
	assert.Equal(t, []string{"20", "Alice Smith", "2026-09-05", "Cover", "2026-06-03"}, duties[1])

	audit := readRows(t, f, SheetAuditLog)
	require.Len(t, audit, 2)
	assert.Equal(t, "User added", audit[1][2])
}

func TestWriteWorkbook_EmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(models.SharedDocument{}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		assert.Len(t, readRows(t, f, sheet), 1, sheet)
	}
}

func TestExportFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

	path, err := ExportFile(sampleDocument(), dir, now)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "leavesync-20261018-093000.xlsx"), path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
