package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ragdeck/ragdeck/internal/dispatch"
	"github.com/ragdeck/ragdeck/internal/form"
)

const labelWidth = 26

// handleConfigKey processes keys in the configuration view.
func (m Model) handleConfigKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := m.form.Fields()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selectedField > 0 {
			m.selectedField--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selectedField < len(fields)-1 {
			m.selectedField++
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.selectedField = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.selectedField = len(fields) - 1
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		f := fields[m.selectedField]
		if f.Kind == form.Checkbox {
			f.Checked = !f.Checked
			return m, nil
		}
		m.editing = true
		m.editor = textinput.New()
		m.editor.SetValue(f.Value)
		m.editor.CursorEnd()
		m.editor.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if f := fields[m.selectedField]; f.Kind == form.Checkbox {
			f.Checked = !f.Checked
		}
		return m, nil

	case key.Matches(msg, m.keys.Save):
		cfg := m.form.Collect()
		return m, m.actionCmd(func(ctx context.Context) dispatch.Outcome {
			return m.dispatcher.SaveConfig(ctx, cfg)
		})

	case key.Matches(msg, m.keys.Reload):
		return m, m.actionCmd(m.dispatcher.LoadConfig)

	case key.Matches(msg, m.keys.Optimize):
		return m, m.actionCmd(m.dispatcher.Optimize)
	}

	return m, nil
}

// handleEditorKey processes keys while a field editor is open.
func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		fields := m.form.Fields()
		fields[m.selectedField].Value = strings.TrimSpace(m.editor.Value())
		m.editing = false
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// renderConfigView draws the configuration form.
func (m Model) renderConfigView() string {
	var b strings.Builder

	for i, f := range m.form.Fields() {
		label := padRight(f.Label, labelWidth)

		var value string
		switch f.Kind {
		case form.Checkbox:
			if f.Checked {
				value = "[x]"
			} else {
				value = "[ ]"
			}
		default:
			value = f.Value
			if m.editing && i == m.selectedField {
				value = m.editor.View()
			}
		}

		line := fmt.Sprintf("%s %s", label, value)
		if i == m.selectedField {
			line = m.styles.Selected.Render(line)
		} else {
			line = m.styles.Text.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("enter edit · space toggle · s save · r reload · o optimize"))
	return b.String()
}
