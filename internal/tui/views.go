package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-leave-sync/models"
	"github.com/charmbracelet/lipgloss"
)

// row is one selectable line of the active tab.
type row struct {
	id      int64
	text    string
	summary string
}

func (m appModel) tabs() []tab {
	out := []tab{tabLeaves, tabDuties}
	if m.workspace.CanReview() {
		out = append(out, tabUsers)
	}
	if m.workspace.IsAdmin() {
		out = append(out, tabAuditLog)
	}
	return out
}

func (m appModel) tabVisible(t tab) bool {
	for _, visible := range m.tabs() {
		if visible == t {
			return true
		}
	}
	return false
}

func (m appModel) tabTitle(t tab) string {
	switch t {
	case tabLeaves:
		if m.workspace.CanReview() {
			return "Leaves"
		}
		return "My Leaves"
	case tabDuties:
		return "Duties"
	case tabUsers:
		return "Users"
	case tabAuditLog:
		return "Audit Log"
	default:
		return ""
	}
}

func (m appModel) rows() []row {
	ws := m.workspace
	me, ok := ws.CurrentUser()
	if !ok {
		return nil
	}

	switch m.tab {
	case tabLeaves:
		leaves := ws.LeavesFor(me.ID)
		if ws.CanReview() {
			leaves = ws.Leaves()
		}
		out := make([]row, 0, len(leaves))
		for _, l := range leaves {
			name := ws.DisplayName(l.UserID)
			out = append(out, row{
				id:      l.ID,
				text:    fmt.Sprintf("%-12s %s → %s  %-20s %s", fitText(name, 12), l.Start, l.End, l.Type, fitText(l.Reason, 30)),
				summary: fmt.Sprintf("%s: %s %s to %s (%s)", name, l.Type, l.Start, l.End, l.Reason),
			})
		}
		return out

	case tabDuties:
		duties := ws.DutiesFor(me.ID)
		if ws.CanReview() {
			duties = ws.Duties()
		}
		out := make([]row, 0, len(duties))
		for _, d := range duties {
			name := ws.DisplayName(d.UserID)
			out = append(out, row{
				id:      d.ID,
				text:    fmt.Sprintf("%-12s %s  %s", fitText(name, 12), d.Date, fitText(d.Reason, 40)),
				summary: fmt.Sprintf("%s: duty on %s (%s)", name, d.Date, d.Reason),
			})
		}
		return out

	case tabUsers:
		users := ws.Users()
		out := make([]row, 0, len(users))
		for _, u := range users {
			out = append(out, row{
				id:      u.ID,
				text:    fmt.Sprintf("[%-2s] %-20s %-8s %s", u.Avatar, fitText(u.Name, 20), u.Role, u.Grade),
				summary: fmt.Sprintf("%s (%s, %s)", u.Name, u.Role, u.Grade),
			})
		}
		return out

	case tabAuditLog:
		entries := ws.AuditLog()
		out := make([]row, 0, len(entries))
		for _, e := range entries {
			out = append(out, row{
				id:      e.ID,
				text:    fmt.Sprintf("%s  %-12s %-16s %s", fitText(e.Timestamp, 19), fitText(e.UserName, 12), e.Action, fitText(e.Details, 40)),
				summary: fmt.Sprintf("%s %s %s: %s", e.Timestamp, e.UserName, e.Action, e.Details),
			})
		}
		return out
	}
	return nil
}

func (m appModel) View() string {
	switch m.screen {
	case screenLoading:
		return renderPage(m.header(), m.spinner.View()+" Loading shared data...", "q: quit")
	case screenPicker:
		return m.viewPicker()
	case screenPassword:
		return m.viewPassword()
	case screenForm:
		return m.form.View()
	default:
		return m.viewMain()
	}
}

func (m appModel) header() string {
	title := "LeaveSync"
	if m.cfg.Version != "" {
		title += " v" + m.cfg.Version
	}
	return title
}

func (m appModel) viewPicker() string {
	var b strings.Builder
	b.WriteString("Who are you?\n\n")
	for i, u := range m.workspace.Users() {
		lock := ""
		if m.workspace.NeedsPassword(u.ID) {
			lock = " (password)"
		}
		b.WriteString(cursorLine(i == m.pickerIdx, "%s  %s, %s%s", u.Name, u.Role, u.Grade, lock))
		b.WriteString("\n")
	}
	b.WriteString(m.viewNotice())
	return renderPage(m.header(), b.String(), "↑/↓: choose  enter: sign in  q: quit")
}

func (m appModel) viewPassword() string {
	var b strings.Builder
	b.WriteString("Password for " + m.workspace.DisplayName(m.passwordFor) + "\n\n")
	b.WriteString(m.password.View())
	b.WriteString("\n")
	if m.passwordErr != "" {
		b.WriteString("\n" + errorStyle.Render(m.passwordErr) + "\n")
	}
	return renderPage(m.header(), b.String(), "enter: sign in  esc: back")
}

func (m appModel) viewMain() string {
	if m.status.Conflict != nil {
		return m.viewConflict()
	}

	var b strings.Builder

	if me, ok := m.workspace.CurrentUser(); ok {
		b.WriteString(fmt.Sprintf("Signed in as %s (%s)\n\n", me.Name, me.Role))
	}

	titles := make([]string, 0, 4)
	for _, t := range m.tabs() {
		if t == m.tab {
			titles = append(titles, activeTabStyle.Render(m.tabTitle(t)))
		} else {
			titles = append(titles, tabStyle.Render(m.tabTitle(t)))
		}
	}
	b.WriteString(strings.Join(titles, "  │  "))
	b.WriteString("\n\n")

	rows := m.rows()
	if len(rows) == 0 {
		b.WriteString("  Nothing here yet\n")
	}
	for i, r := range rows {
		b.WriteString(cursorLine(i == m.cursor, "%s", r.text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.viewNotice())

	return renderPage(m.header(), b.String(), m.mainHelp())
}

func (m appModel) mainHelp() string {
	help := "s: save  r: refresh  n: leave  u: duty  d: delete  x: export  c: copy  p: switch user  q: quit"
	if m.workspace.IsAdmin() {
		help = "a: add user  " + help
	}
	return help
}

func (m appModel) statusLine() string {
	s := m.status
	var state string
	switch {
	case !s.Loaded || s.State == models.SyncLoading:
		state = m.spinner.View() + " loading..."
	case s.State == models.SyncSaving:
		state = m.spinner.View() + " saving..."
	case s.Dirty:
		state = dirtyStyle.Render("● unsaved changes")
	default:
		state = noticeStyle.Render("✓ all changes saved")
	}

	if !s.LastSavedAt.IsZero() {
		state += helpStyle.Render("  last saved " + s.LastSavedAt.Local().Format("15:04:05"))
	}
	return state
}

func (m appModel) viewNotice() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeIsErr {
		return errorStyle.Render(m.notice) + "\n"
	}
	return noticeStyle.Render(m.notice) + "\n"
}

func (m appModel) viewConflict() string {
	box := overlayBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Save conflict"),
		"",
		m.status.Conflict.Message,
		"",
		helpStyle.Render("r: refresh (discard my changes)  esc: keep editing"),
	))
	return appStyle.Render(box)
}
