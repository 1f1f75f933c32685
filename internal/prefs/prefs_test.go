package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "prefs.toml"))
	require.NoError(t, err)
	assert.Equal(t, "Dracula", p.Theme)
	assert.False(t, p.HighContrast)
	assert.True(t, p.SpeakReplies)
	assert.True(t, p.ShowLogPane)
}

func TestLoadMalformedFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = [nope"), 0o644))

	p, err := Load(path)
	require.NoError(t, err, "a broken prefs file must not block startup")
	assert.Equal(t, "Dracula", p.Theme)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	saved := Prefs{Theme: "Light", HighContrast: true, SpeakReplies: false, ShowLogPane: false}
	require.NoError(t, Save(path, saved))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, saved, p)
}
