package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ragdeck/ragdeck/internal/dispatch"
	"github.com/ragdeck/ragdeck/internal/logtail"
	"github.com/ragdeck/ragdeck/internal/notify"
	"github.com/ragdeck/ragdeck/internal/prefs"
)

// handleOpsKey processes keys in the operations view.
func (m Model) handleOpsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Start):
		// Starting an already running service is a no-op the backend
		// would reject anyway.
		if m.snapshot.HasStatus && m.snapshot.Running {
			return m, nil
		}
		return m.askConfirm(dispatch.ActionStart, "", m.actionCmd(m.dispatcher.Start))

	case key.Matches(msg, m.keys.Stop):
		// Stop needs a confirmed running service; before the first
		// successful poll there is nothing to stop.
		if !m.snapshot.HasStatus || !m.snapshot.Running {
			return m, nil
		}
		return m.askConfirm(dispatch.ActionStop, "", m.actionCmd(m.dispatcher.Stop))

	case key.Matches(msg, m.keys.Shutdown):
		return m.askConfirm(dispatch.ActionShutdown, "", m.actionCmd(m.dispatcher.Shutdown))

	case key.Matches(msg, m.keys.ToggleFollow):
		m.follow = !m.follow
		if m.follow {
			m.logView.GotoBottom()
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyLog):
		if records := m.tail.Records(); len(records) > 0 {
			last := records[len(records)-1]
			if err := clipboard.WriteAll(formatRecord(last)); err != nil {
				m.notes.Push(notify.Warning, "clipboard unavailable: "+err.Error())
			} else {
				m.notes.Push(notify.Info, "log line copied")
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleLogs):
		m.prefs.ShowLogPane = !m.prefs.ShowLogPane
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, m.prefs)
		}
		m.logView.Height = m.logPaneHeight()
		m.refreshLogPane()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.follow = false
		m.logView.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.logView.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.follow = false
		m.logView.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.logView.GotoBottom()
		return m, nil
	}

	return m, nil
}

// renderOpsView draws the service controls and the log pane.
func (m Model) renderOpsView() string {
	var b strings.Builder

	b.WriteString(m.renderServiceStatus())
	b.WriteString("\n\n")

	if m.prefs.ShowLogPane {
		b.WriteString(m.renderLogHeader())
		b.WriteString("\n")
		b.WriteString(m.logView.View())
		b.WriteString("\n")
	}

	b.WriteString(m.styles.MutedText.Render("s start · x stop · X shutdown · f follow · y copy · L log pane"))
	return b.String()
}

func (m Model) renderServiceStatus() string {
	switch {
	case !m.snapshot.HasStatus:
		return m.styles.MutedText.Render("● service status unknown")
	case m.snapshot.IsOffline():
		return m.styles.DangerText.Render("● backend unreachable")
	case m.snapshot.Running:
		s := m.styles.SuccessText.Render("● service running")
		if m.config != nil && m.config.ViewerURL != "" {
			s += m.styles.MutedText.Render("  chat viewer: " + m.config.ViewerURL)
		}
		return s
	default:
		return m.styles.WarningText.Render("● service stopped")
	}
}

func (m Model) renderLogHeader() string {
	follow := "follow off"
	if m.follow {
		follow = "follow on"
	}
	return m.styles.AccentText.Render(fmt.Sprintf("Logs · %s · %s", m.tail.State(), follow))
}

// refreshLogPane re-renders the tail into the viewport.
func (m *Model) refreshLogPane() {
	if !m.ready {
		return
	}
	records := m.tail.Records()
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, m.styleRecord(r))
	}
	m.logView.SetContent(strings.Join(lines, "\n"))
	if m.follow {
		m.logView.GotoBottom()
	}
}

func (m Model) styleRecord(r logtail.Record) string {
	line := truncate(formatRecord(r), m.logView.Width)
	switch strings.ToUpper(r.Level) {
	case "ERROR", "CRITICAL":
		return m.styles.DangerText.Render(line)
	case "WARNING", "WARN":
		return m.styles.WarningText.Render(line)
	case "DEBUG":
		return m.styles.MutedText.Render(line)
	default:
		return m.styles.Text.Render(line)
	}
}

func formatRecord(r logtail.Record) string {
	return fmt.Sprintf("%s %-8s %s", r.Timestamp, r.Level, r.Message)
}

func (m Model) logPaneHeight() int {
	h := m.height - 8
	if h < 5 {
		h = 5
	}
	return h
}
