// Package ui provides the Bubble Tea terminal console for scribe.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ragdeck/ragdeck/internal/config"
	"github.com/ragdeck/ragdeck/internal/dispatch"
	"github.com/ragdeck/ragdeck/internal/form"
	"github.com/ragdeck/ragdeck/internal/logstream"
	"github.com/ragdeck/ragdeck/internal/logtail"
	"github.com/ragdeck/ragdeck/internal/notify"
	"github.com/ragdeck/ragdeck/internal/prefs"
	"github.com/ragdeck/ragdeck/internal/scribe"
	"github.com/ragdeck/ragdeck/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewConfig View = iota
	ViewDocuments
	ViewOps
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	API        scribe.API
	Store      *state.Store
	Dispatcher *dispatch.Dispatcher
	Tail       *logtail.Tail
	Notes      *notify.Center
	Config     *config.Config
	Prefs      prefs.Prefs
	PrefsPath  string
	Form       *form.Form
	PollTick   time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx        context.Context
	api        scribe.API
	store      *state.Store
	dispatcher *dispatch.Dispatcher
	tail       *logtail.Tail
	notes      *notify.Center
	config     *config.Config
	prefs      prefs.Prefs
	prefsPath  string
	form       *form.Form
	pollTick   time.Duration

	keys   keyMap
	theme  Theme
	styles Styles

	currentView View
	width       int
	height      int
	ready       bool

	snapshot state.Snapshot

	// Config view state
	selectedField int
	editing       bool
	editor        textinput.Model

	// Documents view state
	selectedFile int

	// Operations view state
	logView viewport.Model
	follow  bool

	// Modals
	showHelp bool
	confirm  *confirmState
	upload   *uploadState
}

type (
	tickMsg     time.Time
	snapshotMsg state.Snapshot
	outcomeMsg  dispatch.Outcome
	streamMsg   logstream.Event
	backfillMsg struct {
		records []logtail.Record
		err     error
	}
)

// StreamEvent wraps a websocket event for delivery via Program.Send.
func StreamEvent(ev logstream.Event) tea.Msg {
	return streamMsg(ev)
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	notes := opts.Notes
	if notes == nil {
		notes = notify.NewCenter()
	}

	tail := opts.Tail
	if tail == nil {
		tail = logtail.New()
	}

	theme := ThemeForPrefs(opts.Prefs)

	return Model{
		ctx:         ctx,
		api:         opts.API,
		store:       opts.Store,
		dispatcher:  opts.Dispatcher,
		tail:        tail,
		notes:       notes,
		config:      opts.Config,
		prefs:       opts.Prefs,
		prefsPath:   prefsPath,
		form:        opts.Form,
		pollTick:    pollTick,
		keys:        DefaultKeyMap(),
		theme:       theme,
		styles:      theme.Styles(),
		currentView: ViewConfig,
		follow:      true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.pollTick),
		m.snapshotCmd(),
		m.backfillCmd(),
		m.actionCmd(m.dispatcher.LoadConfig),
		m.actionCmd(m.dispatcher.ListFiles),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.logView = viewport.New(msg.Width-4, m.logPaneHeight())
			m.ready = true
		} else {
			m.logView.Width = msg.Width - 4
			m.logView.Height = m.logPaneHeight()
		}
		m.refreshLogPane()
		return m, nil

	case tickMsg:
		return m, tea.Batch(tickCmd(m.pollTick), m.snapshotCmd())

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.clampFileSelection()
		return m, nil

	case outcomeMsg:
		return m.applyOutcome(dispatch.Outcome(msg))

	case streamMsg:
		m.applyStreamEvent(logstream.Event(msg))
		return m, nil

	case backfillMsg:
		if msg.err == nil {
			m.tail.Backfill(msg.records)
			m.refreshLogPane()
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}
	if m.confirm != nil {
		return m.renderConfirm()
	}
	if m.upload != nil {
		return m.renderUpload()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}
	if m.confirm != nil {
		return m.handleConfirmKey(msg)
	}
	if m.upload != nil {
		return m.handleUploadKey(msg)
	}
	if m.editing {
		return m.handleEditorKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.prefs.Theme = NextTheme(m.theme.Name)
		m.applyTheme()
		return m, nil

	case key.Matches(msg, m.keys.ToggleContrast):
		m.prefs.HighContrast = !m.prefs.HighContrast
		m.applyTheme()
		return m, nil

	case key.Matches(msg, m.keys.ToggleSpeech):
		m.toggleSpeech()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.currentView = (m.currentView + 1) % 3
		return m, nil

	case key.Matches(msg, m.keys.ViewConfig):
		m.currentView = ViewConfig
		return m, nil

	case key.Matches(msg, m.keys.ViewDocuments):
		m.currentView = ViewDocuments
		return m, nil

	case key.Matches(msg, m.keys.ViewOps):
		m.currentView = ViewOps
		return m, nil
	}

	switch m.currentView {
	case ViewConfig:
		return m.handleConfigKey(msg)
	case ViewDocuments:
		return m.handleDocumentsKey(msg)
	case ViewOps:
		return m.handleOpsKey(msg)
	}

	return m, nil
}

// applyTheme re-resolves the theme from preferences and persists them.
func (m *Model) applyTheme() {
	m.theme = ThemeForPrefs(m.prefs)
	m.styles = m.theme.Styles()
	if m.prefsPath != "" {
		_ = prefs.Save(m.prefsPath, m.prefs)
	}
}

// toggleSpeech flips the spoken-replies preference. The chat viewer
// reads it from the shared prefs file; the console only announces the
// new state.
func (m *Model) toggleSpeech() {
	m.prefs.SpeakReplies = !m.prefs.SpeakReplies
	if m.prefsPath != "" {
		_ = prefs.Save(m.prefsPath, m.prefs)
	}
	if m.prefs.SpeakReplies {
		m.notes.Push(notify.Info, "spoken replies enabled")
	} else {
		m.notes.Push(notify.Info, "spoken replies disabled")
	}
}

// applyOutcome folds an action result into the model: toast, fresh
// data, view switch.
func (m Model) applyOutcome(out dispatch.Outcome) (tea.Model, tea.Cmd) {
	if out.Skipped {
		m.notes.Push(notify.Info, "still working on the previous request")
		return m, nil
	}

	m.notes.Push(out.Level, out.Message)
	if out.RefreshErr != "" {
		m.notes.Push(notify.Warning, out.RefreshErr)
	}

	if out.Config != nil && m.form != nil {
		m.form.Fill(out.Config)
	}
	if out.FilesValid {
		m.store.SetFiles(out.Files)
		m.snapshot = m.store.Snapshot()
		m.clampFileSelection()
	}
	if out.Running != nil {
		m.store.SetStatus(*out.Running, nil)
		m.snapshot = m.store.Snapshot()
	}
	if out.ShowOps {
		m.currentView = ViewOps
		if out.Running != nil && *out.Running && m.config != nil && m.config.ViewerURL != "" {
			m.notes.Push(notify.Info, "chat viewer available at "+m.config.ViewerURL)
		}
	}
	return m, nil
}

// applyStreamEvent feeds a websocket lifecycle event into the tail.
func (m *Model) applyStreamEvent(ev logstream.Event) {
	switch ev.Kind {
	case logstream.EventOpen:
		m.tail.OnOpen()
	case logstream.EventMessage:
		m.tail.OnMessage(ev.Record)
	case logstream.EventClosed:
		m.tail.OnClose()
	case logstream.EventError:
		detail := ""
		if ev.Err != nil {
			detail = ev.Err.Error()
		}
		m.tail.OnError(detail)
	}
	m.refreshLogPane()
}

func (m *Model) clampFileSelection() {
	if n := len(m.snapshot.Files); m.selectedFile >= n {
		m.selectedFile = n - 1
	}
	if m.selectedFile < 0 {
		m.selectedFile = 0
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) snapshotCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func (m Model) backfillCmd() tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		records, err := api.FetchLogs(ctx, logtail.Capacity)
		return backfillMsg{records: records, err: err}
	}
}

// actionCmd runs a dispatcher action off the update loop and delivers
// its outcome as a message.
func (m Model) actionCmd(run func(context.Context) dispatch.Outcome) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return outcomeMsg(run(ctx))
	}
}
