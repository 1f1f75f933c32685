package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ragdeck/ragdeck/internal/dispatch"
)

// handleDocumentsKey processes keys in the documents view.
func (m Model) handleDocumentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	files := m.snapshot.Files

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selectedFile > 0 {
			m.selectedFile--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selectedFile < len(files)-1 {
			m.selectedFile++
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.selectedFile = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		if len(files) > 0 {
			m.selectedFile = len(files) - 1
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.actionCmd(m.dispatcher.ListFiles)

	case key.Matches(msg, m.keys.Delete):
		if len(files) == 0 {
			return m, nil
		}
		name := files[m.selectedFile].Name
		return m.askConfirm(dispatch.ActionDelete, name, m.actionCmd(func(ctx context.Context) dispatch.Outcome {
			return m.dispatcher.Delete(ctx, name)
		}))

	case key.Matches(msg, m.keys.Rebuild):
		if len(files) == 0 {
			return m, nil
		}
		name := files[m.selectedFile].Name
		return m.askConfirm(dispatch.ActionRebuild, name, m.actionCmd(func(ctx context.Context) dispatch.Outcome {
			return m.dispatcher.RebuildFile(ctx, name)
		}))

	case key.Matches(msg, m.keys.RebuildAll):
		return m.askConfirm(dispatch.ActionRebuildAll, "", m.actionCmd(m.dispatcher.RebuildAll))

	case key.Matches(msg, m.keys.Upload):
		m.openUpload()
		return m, nil
	}

	return m, nil
}

// renderDocumentsView draws the document listing.
func (m Model) renderDocumentsView() string {
	files := m.snapshot.Files

	if !m.snapshot.HasFiles {
		return m.styles.MutedText.Render("Loading document list...")
	}
	if len(files) == 0 {
		return m.styles.MutedText.Render("No documents in the store. Press u to upload one.")
	}

	nameWidth := m.width - 48
	if nameWidth < 20 {
		nameWidth = 20
	}

	var b strings.Builder
	header := fmt.Sprintf("%s %10s %16s  %s",
		padRight("Name", nameWidth), "Size", "Modified", "Splitter")
	b.WriteString(m.styles.AccentText.Render(header))
	b.WriteString("\n")

	for i, f := range files {
		line := fmt.Sprintf("%s %10s %16s  %s",
			padRight(truncate(f.Name, nameWidth), nameWidth),
			f.Size, f.Modified, f.SplitterLabel())
		if i == m.selectedFile {
			line = m.styles.Selected.Render(line)
		} else {
			line = m.styles.Text.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("d delete · b rebuild · B rebuild all · u upload · r refresh"))
	return b.String()
}
