package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ragdeck/ragdeck/internal/dispatch"
	"github.com/ragdeck/ragdeck/internal/notify"
	"github.com/ragdeck/ragdeck/internal/scribe"
)

// uploadState holds the upload modal: a local path entry plus an
// overwrite toggle.
type uploadState struct {
	input     textinput.Model
	overwrite bool
}

func (m *Model) openUpload() {
	input := textinput.New()
	input.Placeholder = "/path/to/document"
	input.Focus()
	m.upload = &uploadState{input: input}
}

func (m Model) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.upload = nil
		m.notes.Push(notify.Info, "cancelled")
		return m, nil

	case key.Matches(msg, m.keys.ToggleOverwrite):
		m.upload.overwrite = !m.upload.overwrite
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		path := strings.TrimSpace(m.upload.input.Value())
		if path == "" {
			m.notes.Push(notify.Warning, "enter a file path")
			return m, nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			m.notes.Push(notify.Error, "cannot read file: "+err.Error())
			return m, nil
		}
		file := scribe.UploadFile{Name: filepath.Base(path), Data: data}
		overwrite := m.upload.overwrite
		m.upload = nil
		run := m.actionCmd(func(ctx context.Context) dispatch.Outcome {
			return m.dispatcher.Upload(ctx, []scribe.UploadFile{file}, overwrite)
		})
		if overwrite {
			return m.askConfirm(dispatch.ActionUpload, file.Name, run)
		}
		return m, run
	}

	var cmd tea.Cmd
	m.upload.input, cmd = m.upload.input.Update(msg)
	return m, cmd
}

func (m Model) renderUpload() string {
	overwrite := "[ ] overwrite existing"
	if m.upload.overwrite {
		overwrite = "[x] overwrite existing"
	}
	body := m.styles.Text.Render("Upload a document") + "\n\n" +
		m.upload.input.View() + "\n" +
		m.styles.Text.Render(overwrite) + "\n\n" +
		m.styles.MutedText.Render("enter upload · tab toggle overwrite · esc cancel")
	return m.centered(m.styles.Modal.Render(body))
}
