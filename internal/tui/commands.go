// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"time"

	"github.com/MKhiriev/go-leave-sync/internal/report"
	"github.com/MKhiriev/go-leave-sync/models"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

const noticeTTL = 4 * time.Second

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

func (m appModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.workspace.Load(m.ctx)}
	}
}

func (m appModel) saveCmd() tea.Cmd {
	return func() tea.Msg {
		result, err := m.workspace.Sync().Save(m.ctx)
		return saveDoneMsg{result: result, err: err}
	}
}

func (m appModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: m.workspace.Refresh(m.ctx)}
	}
}

func (m appModel) resolveCmd(resolution models.ConflictResolution) tea.Cmd {
	return func() tea.Msg {
		err := m.workspace.Sync().ResolveConflict(m.ctx, resolution)
		if err == nil && resolution == models.ResolveRefresh {
			m.workspace.RestoreCurrentUser()
		}
		return resolvedMsg{resolution: resolution, err: err}
	}
}

func (m appModel) actionCmd(notice string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{notice: notice, err: fn()}
	}
}

func (m appModel) exportCmd() tea.Cmd {
	doc := m.workspace.Sync().Document()
	dir := m.cfg.ExportDir
	return func() tea.Msg {
		path, err := report.ExportFile(doc, dir, time.Now())
		return exportDoneMsg{path: path, err: err}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboardWrite(text)}
	}
}

// waitForStatus delivers the next sync status change.
func waitForStatus(ch <-chan models.SyncStatus) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		return statusMsg{status: <-ch}
	}
}

func clearNoticeAfter(seq int) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}
