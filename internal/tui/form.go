package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formKind int

const (
	formLeave formKind = iota
	formDuty
	formUser
)

// formField is either a free text input or a choice cycled with left/right.
type formField struct {
	label   string
	input   textinput.Model
	choices []string
	choice  int
}

func textField(label, placeholder string) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Width = 40
	in.CharLimit = 200
	return formField{label: label, input: in}
}

func choiceField(label string, choices []string) formField {
	return formField{label: label, choices: choices}
}

func (f formField) value() string {
	if f.choices != nil {
		return f.choices[f.choice]
	}
	return strings.TrimSpace(f.input.Value())
}

type formModel struct {
	kind   formKind
	title  string
	fields []formField
	focus  int
	err    string
}

func newForm(kind formKind, title string, fields ...formField) formModel {
	m := formModel{kind: kind, title: title, fields: fields}
	m.setFocus(0)
	return m
}

func (m *formModel) setFocus(i int) {
	m.focus = (i + len(m.fields)) % len(m.fields)
	for idx := range m.fields {
		if m.fields[idx].choices != nil {
			continue
		}
		if idx == m.focus {
			m.fields[idx].input.Focus()
		} else {
			m.fields[idx].input.Blur()
		}
	}
}

// values returns the trimmed value of every field in order.
func (m formModel) values() []string {
	out := make([]string, len(m.fields))
	for i, f := range m.fields {
		out[i] = f.value()
	}
	return out
}

// update handles navigation and typing. Enter and esc are handled by the
// caller.
func (m formModel) update(msg tea.Msg) (formModel, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	field := &m.fields[m.focus]

	if isKey {
		switch {
		case keyMsg.String() == "tab" || keyMsg.String() == "down":
			m.setFocus(m.focus + 1)
			return m, nil
		case keyMsg.String() == "shift+tab" || keyMsg.String() == "up":
			m.setFocus(m.focus - 1)
			return m, nil
		case field.choices != nil && key.Matches(keyMsg, keys.prevChoice):
			field.choice = (field.choice - 1 + len(field.choices)) % len(field.choices)
			return m, nil
		case field.choices != nil && key.Matches(keyMsg, keys.nextChoice):
			field.choice = (field.choice + 1) % len(field.choices)
			return m, nil
		}
	}

	if field.choices != nil {
		return m, nil
	}

	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	return m, cmd
}

func (m formModel) View() string {
	var b strings.Builder
	for i, f := range m.fields {
		marker := "  "
		if i == m.focus {
			marker = "> "
		}
		b.WriteString(marker)
		b.WriteString(f.label)
		b.WriteString(": ")
		if f.choices != nil {
			b.WriteString("< " + f.value() + " >")
		} else {
			b.WriteString(f.input.View())
		}
		b.WriteString("\n")
	}
	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}
	return renderPage(m.title, b.String(), "tab: next field  ←/→: change choice  enter: submit  esc: cancel")
}
