package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ragdeck/ragdeck/internal/dispatch"
	"github.com/ragdeck/ragdeck/internal/notify"
)

// confirmState holds a pending confirmation. run is executed only when
// the user accepts; declining discards it without any network call.
type confirmState struct {
	prompt string
	run    tea.Cmd
}

// askConfirm interposes a confirmation modal when the action requires
// one, otherwise runs the command immediately.
func (m Model) askConfirm(a dispatch.Action, target string, run tea.Cmd) (tea.Model, tea.Cmd) {
	prompt, need := dispatch.ConfirmPrompt(a, target)
	if !need {
		return m, run
	}
	m.confirm = &confirmState{prompt: prompt, run: run}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Accept):
		run := m.confirm.run
		m.confirm = nil
		return m, run

	case key.Matches(msg, m.keys.Decline):
		m.confirm = nil
		m.notes.Push(notify.Info, "cancelled")
		return m, nil
	}
	return m, nil
}

func (m Model) renderConfirm() string {
	body := m.styles.Text.Render(m.confirm.prompt) + "\n\n" +
		m.styles.MutedText.Render("y/enter confirm · n/esc cancel")
	return m.centered(m.styles.Modal.Render(body))
}
