package tui

import (
	"context"

	"github.com/MKhiriev/go-leave-sync/internal/config"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/internal/service"
	"github.com/MKhiriev/go-leave-sync/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenLoading screen = iota
	screenPicker
	screenPassword
	screenMain
	screenForm
)

type tab int

const (
	tabLeaves tab = iota
	tabDuties
	tabUsers
	tabAuditLog
)

type appModel struct {
	ctx       context.Context
	workspace *service.Workspace
	cfg       config.ClientApp
	statuses  <-chan models.SyncStatus
	logger    *logger.Logger

	screen  screen
	spinner spinner.Model
	status  models.SyncStatus

	pickerIdx   int
	password    textinput.Model
	passwordFor int64
	passwordErr string

	tab            tab
	cursor         int
	form           formModel
	confirmRefresh bool

	notice      string
	noticeIsErr bool
	noticeSeq   int
}

func newAppModel(ctx context.Context, workspace *service.Workspace, cfg config.ClientApp, statuses <-chan models.SyncStatus, logger *logger.Logger) appModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	pw := textinput.New()
	pw.EchoMode = textinput.EchoPassword
	pw.EchoCharacter = '•'
	pw.Width = 30

	return appModel{
		ctx:       ctx,
		workspace: workspace,
		cfg:       cfg,
		statuses:  statuses,
		logger:    logger,
		screen:    screenLoading,
		spinner:   s,
		password:  pw,
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd(), waitForStatus(m.statuses))
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusMsg:
		m.status = msg.status
		return m, waitForStatus(m.statuses)

	case loadedMsg:
		m.syncStatus()
		if msg.err != nil {
			m.logger.Err(msg.err).Msg("load failed")
			cmd := m.setNotice(humanizeError(msg.err), true)
			return m, cmd
		}
		return m.afterLoad(), nil

	case saveDoneMsg:
		m.syncStatus()
		return m.onSaveDone(msg)

	case refreshDoneMsg:
		m.syncStatus()
		if msg.err != nil {
			cmd := m.setNotice(humanizeError(msg.err), true)
			return m, cmd
		}
		m.clampCursor()
		if _, ok := m.workspace.CurrentUser(); !ok {
			m.screen = screenPicker
		}
		cmd := m.setNotice("Refreshed with the latest data", false)
		return m, cmd

	case resolvedMsg:
		m.syncStatus()
		if msg.err != nil {
			cmd := m.setNotice(humanizeError(msg.err), true)
			return m, cmd
		}
		m.clampCursor()
		if msg.resolution == models.ResolveRefresh {
			cmd := m.setNotice("Refreshed with the latest data", false)
			return m, cmd
		}
		cmd := m.setNotice("Keep editing. The next save checks for changes again.", false)
		return m, cmd

	case actionDoneMsg:
		m.syncStatus()
		if msg.err != nil {
			if m.screen == screenForm {
				m.form.err = humanizeError(msg.err)
				return m, nil
			}
			cmd := m.setNotice(humanizeError(msg.err), true)
			return m, cmd
		}
		if m.screen == screenForm {
			m.screen = screenMain
		}
		m.clampCursor()
		cmd := m.setNotice(msg.notice, false)
		return m, cmd

	case exportDoneMsg:
		if msg.err != nil {
			cmd := m.setNotice("Export failed: "+msg.err.Error(), true)
			return m, cmd
		}
		cmd := m.setNotice("Exported to "+msg.path, false)
		return m, cmd

	case copiedMsg:
		if msg.err != nil {
			cmd := m.setNotice("Clipboard unavailable", true)
			return m, cmd
		}
		cmd := m.setNotice("Copied to clipboard", false)
		return m, cmd

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenForm:
		m.form, cmd = m.form.update(msg)
	case screenPassword:
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *appModel) syncStatus() {
	m.status = m.workspace.Sync().Status()
}

func (m *appModel) setNotice(text string, isErr bool) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	m.noticeIsErr = isErr
	return clearNoticeAfter(m.noticeSeq)
}

func (m appModel) afterLoad() appModel {
	user, ok := m.workspace.CurrentUser()
	if !ok {
		m.screen = screenPicker
		return m
	}

	m.pickerIdx = m.userIndex(user.ID)
	if m.workspace.NeedsPassword(user.ID) {
		return m.askPassword(user.ID)
	}
	m.screen = screenMain
	return m
}

func (m appModel) askPassword(userID int64) appModel {
	m.screen = screenPassword
	m.passwordFor = userID
	m.passwordErr = ""
	m.password.SetValue("")
	m.password.Focus()
	return m
}

func (m appModel) userIndex(id int64) int {
	for i, u := range m.workspace.Users() {
		if u.ID == id {
			return i
		}
	}
	return 0
}

func (m appModel) onSaveDone(msg saveDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Msg("manual save failed")
		cmd := m.setNotice(humanizeError(msg.err), true)
		return m, cmd
	}

	switch msg.result.Outcome {
	case models.SaveSaved:
		cmd := m.setNotice("All changes saved", false)
		return m, cmd
	case models.SaveClean:
		cmd := m.setNotice("No changes to save", false)
		return m, cmd
	case models.SaveSkipped:
		cmd := m.setNotice("A save is already in progress", false)
		return m, cmd
	default:
		// the conflict overlay is driven by the status
		return m, nil
	}
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenLoading:
		if key.Matches(msg, keys.quit) {
			return m, tea.Quit
		}
		return m, nil
	case screenPicker:
		return m.updatePicker(msg)
	case screenPassword:
		return m.updatePassword(msg)
	case screenForm:
		return m.updateForm(msg)
	default:
		return m.updateMain(msg)
	}
}

func (m appModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	users := m.workspace.Users()

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.pickerIdx > 0 {
			m.pickerIdx--
		}
	case key.Matches(msg, keys.down):
		if m.pickerIdx < len(users)-1 {
			m.pickerIdx++
		}
	case key.Matches(msg, keys.enter):
		if m.pickerIdx >= len(users) {
			return m, nil
		}
		chosen := users[m.pickerIdx]
		if m.workspace.NeedsPassword(chosen.ID) {
			return m.askPassword(chosen.ID), textinput.Blink
		}
		if _, err := m.workspace.Authenticate(chosen.ID, ""); err != nil {
			cmd := m.setNotice(humanizeError(err), true)
			return m, cmd
		}
		m.enterMain()
	}
	return m, nil
}

func (m appModel) updatePassword(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.password.Blur()
		m.screen = screenPicker
		return m, nil
	case key.Matches(msg, keys.enter):
		if _, err := m.workspace.Authenticate(m.passwordFor, m.password.Value()); err != nil {
			m.passwordErr = "Incorrect password"
			m.password.SetValue("")
			return m, nil
		}
		m.password.Blur()
		m.password.SetValue("")
		m.enterMain()
		return m, nil
	}

	var cmd tea.Cmd
	m.password, cmd = m.password.Update(msg)
	return m, cmd
}

func (m *appModel) enterMain() {
	m.screen = screenMain
	m.tab = tabLeaves
	m.cursor = 0
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.screen = screenMain
		return m, nil
	case key.Matches(msg, keys.enter):
		return m, m.submitForm()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m appModel) submitForm() tea.Cmd {
	v := m.form.values()
	ws := m.workspace
	ctx := m.ctx

	switch m.form.kind {
	case formLeave:
		return m.actionCmd("Leave requested", func() error {
			_, err := ws.SubmitLeave(ctx, models.LeaveType(v[0]), v[1], v[2], v[3])
			return err
		})
	case formDuty:
		return m.actionCmd("Duty requested", func() error {
			_, err := ws.SubmitDuty(ctx, v[0], v[1])
			return err
		})
	case formUser:
		return m.actionCmd("User added", func() error {
			_, err := ws.AddUser(ctx, v[0], models.Role(v[1]), models.Grade(v[2]))
			return err
		})
	default:
		return nil
	}
}

func (m appModel) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.status.Conflict != nil {
		switch {
		case key.Matches(msg, keys.refresh):
			return m, m.resolveCmd(models.ResolveRefresh)
		case key.Matches(msg, keys.esc):
			return m, m.resolveCmd(models.ResolveKeepEditing)
		}
		return m, nil
	}

	confirmRefresh := m.confirmRefresh
	m.confirmRefresh = false

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.tab):
		m.switchTab(1)
	case key.Matches(msg, keys.backtab):
		m.switchTab(-1)
	case key.Matches(msg, keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.save):
		return m, m.saveCmd()
	case key.Matches(msg, keys.refresh):
		if m.status.Dirty && !confirmRefresh {
			m.confirmRefresh = true
			cmd := m.setNotice("Unsaved changes will be lost. Press r again to refresh.", true)
			return m, cmd
		}
		return m, m.refreshCmd()
	case key.Matches(msg, keys.newLeave):
		m.openForm(newForm(formLeave, "Request leave",
			choiceField("Type", leaveTypeChoices()),
			textField("Start", models.DateLayout),
			textField("End", models.DateLayout),
			textField("Reason", ""),
		))
		return m, textinput.Blink
	case key.Matches(msg, keys.newDuty):
		m.openForm(newForm(formDuty, "Request duty",
			textField("Date", models.DateLayout),
			textField("Reason", ""),
		))
		return m, textinput.Blink
	case key.Matches(msg, keys.addUser):
		if !m.workspace.IsAdmin() {
			cmd := m.setNotice("Only admins can add users", true)
			return m, cmd
		}
		m.openForm(newForm(formUser, "Add user",
			textField("Name", "Full name"),
			choiceField("Role", roleChoices()),
			choiceField("Grade", gradeChoices()),
		))
		return m, textinput.Blink
	case key.Matches(msg, keys.delete):
		return m, m.deleteSelected()
	case key.Matches(msg, keys.export):
		return m, m.exportCmd()
	case key.Matches(msg, keys.copy):
		rows := m.rows()
		if m.cursor < len(rows) {
			return m, copyCmd(rows[m.cursor].summary)
		}
	case key.Matches(msg, keys.switchUser):
		m.screen = screenPicker
	}
	return m, nil
}

func (m *appModel) openForm(f formModel) {
	m.form = f
	m.screen = screenForm
}

func (m *appModel) switchTab(delta int) {
	tabs := m.tabs()
	current := 0
	for i, t := range tabs {
		if t == m.tab {
			current = i
		}
	}
	m.tab = tabs[(current+delta+len(tabs))%len(tabs)]
	m.cursor = 0
}

func (m *appModel) clampCursor() {
	if !m.tabVisible(m.tab) {
		m.tab = tabLeaves
	}
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m appModel) deleteSelected() tea.Cmd {
	ws := m.workspace

	if m.tab == tabAuditLog {
		return m.actionCmd("Audit log cleared", ws.ClearAuditLog)
	}

	rows := m.rows()
	if m.cursor >= len(rows) {
		return nil
	}
	id := rows[m.cursor].id

	switch m.tab {
	case tabLeaves:
		return m.actionCmd("Leave deleted", func() error { return ws.DeleteLeave(id) })
	case tabDuties:
		return m.actionCmd("Duty deleted", func() error { return ws.DeleteDuty(id) })
	case tabUsers:
		return m.actionCmd("User removed", func() error { return ws.RemoveUser(id) })
	default:
		return nil
	}
}

func leaveTypeChoices() []string {
	out := make([]string, len(models.LeaveTypes))
	for i, t := range models.LeaveTypes {
		out[i] = string(t)
	}
	return out
}

func roleChoices() []string {
	out := make([]string, len(models.Roles))
	for i, r := range models.Roles {
		out[i] = string(r)
	}
	return out
}

func gradeChoices() []string {
	out := make([]string, len(models.Grades))
	for i, g := range models.Grades {
		out[i] = string(g)
	}
	return out
}
