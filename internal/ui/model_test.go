package ui

import (
	"context"
	"os"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragdeck/ragdeck/internal/config"
	"github.com/ragdeck/ragdeck/internal/dispatch"
	"github.com/ragdeck/ragdeck/internal/form"
	"github.com/ragdeck/ragdeck/internal/logtail"
	"github.com/ragdeck/ragdeck/internal/notify"
	"github.com/ragdeck/ragdeck/internal/prefs"
	"github.com/ragdeck/ragdeck/internal/scribe"
	"github.com/ragdeck/ragdeck/internal/state"
)

// countingAPI counts every request so tests can assert nothing was
// sent after a declined confirmation.
type countingAPI struct {
	calls atomic.Int64
}

func (c *countingAPI) bump() { c.calls.Add(1) }

func (c *countingAPI) FetchConfig(context.Context) (map[string]any, error) {
	c.bump()
	return map[string]any{}, nil
}
func (c *countingAPI) SaveConfig(context.Context, map[string]any) error { c.bump(); return nil }
func (c *countingAPI) OptimizeConfig(context.Context) error             { c.bump(); return nil }
func (c *countingAPI) ListFiles(context.Context) ([]scribe.FileEntry, error) {
	c.bump()
	return nil, nil
}
func (c *countingAPI) DeleteFile(context.Context, string) error  { c.bump(); return nil }
func (c *countingAPI) RebuildFile(context.Context, string) error { c.bump(); return nil }
func (c *countingAPI) RebuildAll(context.Context) error          { c.bump(); return nil }
func (c *countingAPI) Upload(context.Context, []scribe.UploadFile, bool) (scribe.UploadResult, error) {
	c.bump()
	return scribe.UploadResult{Envelope: scribe.Envelope{Status: scribe.StatusSuccess}}, nil
}
func (c *countingAPI) StartService(context.Context) error { c.bump(); return nil }
func (c *countingAPI) StopService(context.Context) error  { c.bump(); return nil }
func (c *countingAPI) Shutdown(context.Context) error     { c.bump(); return nil }
func (c *countingAPI) FetchStatus(context.Context) (scribe.StatusResponse, error) {
	c.bump()
	return scribe.StatusResponse{}, nil
}
func (c *countingAPI) FetchLogs(context.Context, int) ([]logtail.Record, error) {
	c.bump()
	return nil, nil
}

var _ scribe.API = (*countingAPI)(nil)

func newTestModel(t *testing.T, api scribe.API) Model {
	t.Helper()
	f, err := form.New(DefaultFields()...)
	require.NoError(t, err)

	cfg := config.Config{ViewerURL: "http://localhost:8000"}
	m := New(Options{
		API:        api,
		Store:      &state.Store{},
		Dispatcher: dispatch.New(api),
		Form:       f,
		Config:     &cfg,
		PrefsPath:  t.TempDir() + "/prefs.toml",
	})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDeclinedDeleteSendsNothing(t *testing.T) {
	api := &countingAPI{}
	m := newTestModel(t, api)
	m.currentView = ViewDocuments
	m.store.SetFiles([]scribe.FileEntry{{Name: "doc.txt"}})

	updated, _ := m.Update(snapshotMsg(m.store.Snapshot()))
	m = updated.(Model)

	updated, cmd := m.Update(keyRune('d'))
	m = updated.(Model)
	require.NotNil(t, m.confirm, "delete must ask for confirmation")
	require.Nil(t, cmd)

	updated, cmd = m.Update(keyRune('n'))
	m = updated.(Model)
	assert.Nil(t, m.confirm)
	assert.Nil(t, cmd)
	assert.Zero(t, api.calls.Load(), "declining must not touch the network")

	notes := m.notes.Active()
	require.NotEmpty(t, notes)
	assert.Equal(t, "cancelled", notes[len(notes)-1].Message)
}

func TestConfirmedDeleteRuns(t *testing.T) {
	api := &countingAPI{}
	m := newTestModel(t, api)
	m.currentView = ViewDocuments
	m.store.SetFiles([]scribe.FileEntry{{Name: "doc.txt"}})

	updated, _ := m.Update(snapshotMsg(m.store.Snapshot()))
	m = updated.(Model)

	updated, _ = m.Update(keyRune('d'))
	m = updated.(Model)
	updated, cmd := m.Update(keyRune('y'))
	m = updated.(Model)
	assert.Nil(t, m.confirm)
	require.NotNil(t, cmd, "accepting must produce the action command")
}

func TestKeymapDrivesNavigation(t *testing.T) {
	m := newTestModel(t, &countingAPI{})
	require.Equal(t, ViewConfig, m.currentView)

	// Special keys resolve through the bindings, not string literals.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	assert.Equal(t, ViewDocuments, m.currentView)

	m.store.SetFiles([]scribe.FileEntry{{Name: "a"}, {Name: "b"}})
	updated, _ = m.Update(snapshotMsg(m.store.Snapshot()))
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Equal(t, 1, m.selectedFile)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	assert.Equal(t, 0, m.selectedFile)
}

func TestSpeakRepliesToggle(t *testing.T) {
	api := &countingAPI{}
	m := newTestModel(t, api)
	require.False(t, m.prefs.SpeakReplies)

	updated, _ := m.Update(keyRune('v'))
	m = updated.(Model)
	assert.True(t, m.prefs.SpeakReplies)

	// The flip is persisted for the chat viewer to pick up.
	saved, err := prefs.Load(m.prefsPath)
	require.NoError(t, err)
	assert.True(t, saved.SpeakReplies)

	notes := m.notes.Active()
	require.NotEmpty(t, notes)
	assert.Contains(t, notes[len(notes)-1].Message, "spoken replies enabled")
}

func TestStopIgnoredWithoutStatus(t *testing.T) {
	m := newTestModel(t, &countingAPI{})
	m.currentView = ViewOps

	updated, cmd := m.Update(keyRune('x'))
	m = updated.(Model)
	assert.Nil(t, m.confirm, "stop must wait for a confirmed running service")
	assert.Nil(t, cmd)
}

func TestStopIgnoredWhileStopped(t *testing.T) {
	m := newTestModel(t, &countingAPI{})
	m.currentView = ViewOps
	m.store.SetStatus(false, nil)

	updated, _ := m.Update(snapshotMsg(m.store.Snapshot()))
	m = updated.(Model)

	updated, cmd := m.Update(keyRune('x'))
	m = updated.(Model)
	assert.Nil(t, m.confirm)
	assert.Nil(t, cmd)
}

func TestStartIgnoredWhileRunning(t *testing.T) {
	api := &countingAPI{}
	m := newTestModel(t, api)
	m.currentView = ViewOps
	m.store.SetStatus(true, nil)

	updated, _ := m.Update(snapshotMsg(m.store.Snapshot()))
	m = updated.(Model)

	updated, cmd := m.Update(keyRune('s'))
	m = updated.(Model)
	assert.Nil(t, m.confirm, "start must be gated while the service runs")
	assert.Nil(t, cmd)
}

func TestOutcomeAppliesFilesAndClampsSelection(t *testing.T) {
	m := newTestModel(t, &countingAPI{})
	m.selectedFile = 5

	out := dispatch.Outcome{
		Action:     dispatch.ActionListFiles,
		Level:      notify.Info,
		Message:    "2 document(s)",
		Files:      []scribe.FileEntry{{Name: "a"}, {Name: "b"}},
		FilesValid: true,
	}
	updated, _ := m.Update(outcomeMsg(out))
	m = updated.(Model)

	assert.Len(t, m.snapshot.Files, 2)
	assert.Equal(t, 1, m.selectedFile)
}

func TestOutcomeShowOpsAnnouncesViewer(t *testing.T) {
	m := newTestModel(t, &countingAPI{})
	running := true

	out := dispatch.Outcome{
		Action:  dispatch.ActionStart,
		Level:   notify.Success,
		Message: "service starting",
		Running: &running,
		ShowOps: true,
	}
	updated, _ := m.Update(outcomeMsg(out))
	m = updated.(Model)

	assert.Equal(t, ViewOps, m.currentView)
	notes := m.notes.Active()
	require.NotEmpty(t, notes)
	assert.Contains(t, notes[len(notes)-1].Message, "http://localhost:8000")
}

func TestSkippedOutcomeOnlyToasts(t *testing.T) {
	m := newTestModel(t, &countingAPI{})

	updated, _ := m.Update(outcomeMsg(dispatch.Outcome{Action: dispatch.ActionDelete, Skipped: true}))
	m = updated.(Model)

	notes := m.notes.Active()
	require.Len(t, notes, 1)
	assert.Equal(t, notify.Info, notes[0].Level)
}

func TestHighContrastOverridesTheme(t *testing.T) {
	m := newTestModel(t, &countingAPI{})
	require.Equal(t, "Dracula", GetTheme("").Name)

	updated, _ := m.Update(keyRune('C'))
	m = updated.(Model)
	assert.Equal(t, "Contrast", m.theme.Name)
	assert.True(t, m.prefs.HighContrast)

	// Cycling the named theme does not defeat high contrast.
	updated, _ = m.Update(keyRune('T'))
	m = updated.(Model)
	assert.Equal(t, "Contrast", m.theme.Name)
}

func TestUploadOverwriteAsksConfirmation(t *testing.T) {
	m := newTestModel(t, &countingAPI{})
	path := t.TempDir() + "/doc.txt"
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	m.openUpload()
	m.upload.input.SetValue(path)
	m.upload.overwrite = true

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	assert.Nil(t, cmd)
	require.NotNil(t, m.confirm, "overwriting upload must be confirmed")
	assert.Contains(t, m.confirm.prompt, "doc.txt")
}

func TestUploadWithoutOverwriteRunsDirectly(t *testing.T) {
	m := newTestModel(t, &countingAPI{})
	path := t.TempDir() + "/doc.txt"
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	m.openUpload()
	m.upload.input.SetValue(path)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	assert.Nil(t, m.confirm)
	require.NotNil(t, cmd)
}

func TestDefaultFieldsAreWellFormed(t *testing.T) {
	f, err := form.New(DefaultFields()...)
	require.NoError(t, err)
	assert.NotEmpty(t, f.Fields())
}

func TestThemeCycleCoversAll(t *testing.T) {
	seen := map[string]bool{}
	name := ThemeNames()[0]
	for range ThemeNames() {
		seen[name] = true
		name = NextTheme(name)
	}
	assert.Len(t, seen, len(ThemeNames()))
}
