package ui

import (
	"strings"

	"github.com/ragdeck/ragdeck/internal/notify"
)

// renderToasts draws the active notifications, newest last.
func (m Model) renderToasts() string {
	notes := m.notes.Active()
	if len(notes) == 0 {
		return ""
	}

	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		line := truncate(n.Message, m.width-4)
		switch n.Level {
		case notify.Success:
			line = m.styles.SuccessText.Render("✓ " + line)
		case notify.Warning:
			line = m.styles.WarningText.Render("! " + line)
		case notify.Error:
			line = m.styles.DangerText.Render("✗ " + line)
		default:
			line = m.styles.InfoText.Render("· " + line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
