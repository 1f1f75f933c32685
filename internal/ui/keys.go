package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application. Handlers
// dispatch through key.Matches and the help overlay is derived from
// the bindings' help entries.
type keyMap struct {
	// Global
	Quit           key.Binding
	Help           key.Binding
	CycleTheme     key.Binding
	ToggleContrast key.Binding
	ToggleSpeech   key.Binding
	Tab            key.Binding
	ViewConfig     key.Binding
	ViewDocuments  key.Binding
	ViewOps        key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Config actions
	Edit     key.Binding
	Toggle   key.Binding
	Save     key.Binding
	Reload   key.Binding
	Optimize key.Binding

	// Document actions
	Delete     key.Binding
	Rebuild    key.Binding
	RebuildAll key.Binding
	Upload     key.Binding
	Refresh    key.Binding

	// Operations actions
	Start        key.Binding
	Stop         key.Binding
	Shutdown     key.Binding
	ToggleFollow key.Binding
	CopyLog      key.Binding
	ToggleLogs   key.Binding

	// Modals
	Accept          key.Binding
	Decline         key.Binding
	Submit          key.Binding
	Cancel          key.Binding
	ToggleOverwrite key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "cycle theme"),
		),
		ToggleContrast: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "toggle high contrast"),
		),
		ToggleSpeech: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "toggle spoken replies"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		ViewConfig: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "configuration"),
		),
		ViewDocuments: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "documents"),
		),
		ViewOps: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "operations"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),

		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit field"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle checkbox"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save config"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Optimize: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "optimize for hardware"),
		),

		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete document"),
		),
		Rebuild: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "rebuild document"),
		),
		RebuildAll: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "rebuild all"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload file"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh list"),
		),

		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start service"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop service"),
		),
		Shutdown: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "shut down backend"),
		),
		ToggleFollow: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle follow"),
		),
		CopyLog: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy last log line"),
		),
		ToggleLogs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "toggle log pane"),
		),

		Accept: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y/enter", "confirm"),
		),
		Decline: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		ToggleOverwrite: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle overwrite"),
		),
	}
}
