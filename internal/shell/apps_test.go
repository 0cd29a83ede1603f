package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog_MissingFileYieldsDefaults(t *testing.T) {
	apps, err := LoadCatalog(filepath.Join(t.TempDir(), "applications.yaml"))
	require.NoError(t, err)

	names := make([]string, 0, len(apps))
	for _, a := range apps {
		names = append(names, a.Name)
	}
	assert.Contains(t, names, "vscode")
	assert.Contains(t, names, "vlc")
}

func TestLoadCatalog_MergesUserEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "applications.yaml")
	data := `applications:
  - name: vlc
    label: Play in VLC
    extensions: [mp4, m4v]
  - name: obsidian
    label: Open vault in Obsidian
    category: editor
    path: /opt/obsidian/obsidian
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	apps, err := LoadCatalog(path)
	require.NoError(t, err)

	byName := make(map[string]App, len(apps))
	for _, a := range apps {
		byName[a.Name] = a
	}

	vlc := byName["vlc"]
	assert.Equal(t, "Play in VLC", vlc.Label)
	assert.Equal(t, CategoryMedia, vlc.Category, "category survives when the override omits it")
	assert.True(t, vlc.Handles(".m4v"))
	assert.False(t, vlc.Handles(".mkv"), "user extension list replaces the default")

	obsidian := byName["obsidian"]
	assert.Equal(t, CategoryEditor, obsidian.Category)
	assert.True(t, obsidian.Installed())
}

func TestLoadCatalog_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "applications.yaml")
	require.NoError(t, os.WriteFile(path, []byte("applications: {not a list"), 0o644))

	_, err := LoadCatalog(path)
	assert.Error(t, err)
}

func TestCategory_DirectoryAppropriate(t *testing.T) {
	assert.True(t, CategoryEditor.DirectoryAppropriate())
	assert.True(t, CategoryTerminal.DirectoryAppropriate())
	assert.True(t, CategoryVersionControl.DirectoryAppropriate())
	assert.False(t, CategoryMedia.DirectoryAppropriate())
	assert.False(t, CategoryViewer.DirectoryAppropriate())
}

func TestCleanVerbLabel(t *testing.T) {
	label, ok := cleanVerbLabel("@shell32.dll,-8506")
	assert.True(t, ok)
	assert.Equal(t, "Find", label)

	_, ok = cleanVerbLabel("@wsl.exe,-2")
	assert.False(t, ok)

	_, ok = cleanVerbLabel("Open WSL here")
	assert.False(t, ok)

	_, ok = cleanVerbLabel("ms-settings thing")
	assert.False(t, ok)

	label, ok = cleanVerbLabel("  Edit with Foo  ")
	assert.True(t, ok)
	assert.Equal(t, "Edit with Foo", label)
}

func TestCommandExecutable(t *testing.T) {
	assert.Equal(t, `C:\Tools\foo.exe`, commandExecutable(`"C:\Tools\foo.exe" "%1"`))
	assert.Equal(t, "vlc", commandExecutable("vlc --started-from-file %1"))
	assert.Equal(t, "", commandExecutable("   "))
}
