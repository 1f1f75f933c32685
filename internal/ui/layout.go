package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

var viewTitles = map[View]string{
	ViewConfig:    "Configuration",
	ViewDocuments: "Documents",
	ViewOps:       "Operations",
}

// renderMain draws the header, the active view and the footer.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.currentView {
	case ViewConfig:
		b.WriteString(m.renderConfigView())
	case ViewDocuments:
		b.WriteString(m.renderDocumentsView())
	case ViewOps:
		b.WriteString(m.renderOpsView())
	}

	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString("\n\n")
		b.WriteString(toasts)
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, 3)
	for i := ViewConfig; i <= ViewOps; i++ {
		title := viewTitles[i]
		if i == m.currentView {
			tabs = append(tabs, m.styles.AccentText.Render("["+title+"]"))
		} else {
			tabs = append(tabs, m.styles.MutedText.Render(" "+title+" "))
		}
	}

	status := ""
	if m.snapshot.IsOffline() {
		status = "  " + m.styles.DangerText.Render("offline")
	}

	return m.styles.Header.Render("ragdeck  " + strings.Join(tabs, " ") + status)
}

func (m Model) renderFooter() string {
	return m.styles.Footer.Render("1/2/3 views · tab next · T theme · C contrast · ? help · q quit")
}

// helpSections groups the bindings for the help overlay.
func (m Model) helpSections() []struct {
	title    string
	bindings []key.Binding
} {
	k := m.keys
	return []struct {
		title    string
		bindings []key.Binding
	}{
		{"Global", []key.Binding{
			k.ViewConfig, k.ViewDocuments, k.ViewOps, k.Tab,
			k.CycleTheme, k.ToggleContrast, k.ToggleSpeech, k.Help, k.Quit,
		}},
		{"Configuration", []key.Binding{
			k.Up, k.Down, k.Edit, k.Toggle, k.Save, k.Reload, k.Optimize,
		}},
		{"Documents", []key.Binding{
			k.Delete, k.Rebuild, k.RebuildAll, k.Upload, k.Refresh,
		}},
		{"Operations", []key.Binding{
			k.Start, k.Stop, k.Shutdown, k.ToggleFollow, k.CopyLog, k.ToggleLogs,
		}},
	}
}

// renderHelp draws the help overlay from the key bindings. Any key
// dismisses it.
func (m Model) renderHelp() string {
	var b strings.Builder
	for _, s := range m.helpSections() {
		b.WriteString(m.styles.AccentText.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			h := bind.Help()
			b.WriteString(m.styles.Text.Render("  " + padRight(h.Key, 12) + h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.MutedText.Render("press any key to close"))
	return m.centered(m.styles.Modal.Render(b.String()))
}
