// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package report exports the shared document as a spreadsheet.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/go-leave-sync/models"
	"github.com/xuri/excelize/v2"
)

const (
	SheetUsers    = "Users"
	SheetLeaves   = "Leaves"
	SheetDuties   = "Duties"
	SheetAuditLog = "Audit Log"
)

var (
	usersHeader  = []any{"ID", "Name", "Role", "Grade"}
	leavesHeader = []any{"ID", "User", "Type", "Start", "End", "Reason", "Submitted"}
	dutiesHeader = []any{"ID", "User", "Date", "Reason", "Submitted"}
	auditHeader  = []any{"Timestamp", "User", "Action", "Details"}
)

// WriteWorkbook writes doc to w as an xlsx workbook with one sheet per
// collection. Requests show the owner's current name; audit entries keep
// the name recorded when they were written.
func WriteWorkbook(doc models.SharedDocument, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetUsers); err != nil {
		return fmt.Errorf("rename default sheet: %w", err)
	}
	for _, sheet := range []string{SheetLeaves, SheetDuties, SheetAuditLog} {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %q: %w", sheet, err)
		}
	}

	names := make(map[int64]string, len(doc.Users))
	users := make([][]any, 0, len(doc.Users))
	for _, u := range doc.Users {
		names[u.ID] = u.Name
		users = append(users, []any{u.ID, u.Name, string(u.Role), string(u.Grade)})
	}
	nameOf := func(id int64) string {
		if name, ok := names[id]; ok {
			return name
		}
		return "Unknown"
	}

	leaves := make([][]any, 0, len(doc.Leaves))
	for _, l := range doc.Leaves {
		leaves = append(leaves, []any{l.ID, nameOf(l.UserID), string(l.Type), l.Start, l.End, l.Reason, l.SubmittedAt})
	}

	duties := make([][]any, 0, len(doc.Duties))
	for _, d := range doc.Duties {
		duties = append(duties, []any{d.ID, nameOf(d.UserID), d.Date, d.Reason, d.SubmittedAt})
	}

	audit := make([][]any, 0, len(doc.AuditLog))
	for _, e := range doc.AuditLog {
		audit = append(audit, []any{e.Timestamp, e.UserName, e.Action, e.Details})
	}

	for _, s := range []struct {
		name   string
		header []any
		rows   [][]any
	}{
		{SheetUsers, usersHeader, users},
		{SheetLeaves, leavesHeader, leaves},
		{SheetDuties, dutiesHeader, duties},
		{SheetAuditLog, auditHeader, audit},
	} {
		if err := writeSheet(f, s.name, s.header, s.rows); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to get cell name: %w", err)
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// ExportFile writes doc into dir as leavesync-<timestamp>.xlsx and returns
// the file path. An empty dir means the working directory.
func ExportFile(doc models.SharedDocument, dir string, now time.Time) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create export dir: %w", err)
		}
	}

	path := filepath.Join(dir, "leavesync-"+now.Format("20060102-150405")+".xlsx")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}

	if err = WriteWorkbook(doc, file); err != nil {
		file.Close()
		return "", err
	}
	if err = file.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}
