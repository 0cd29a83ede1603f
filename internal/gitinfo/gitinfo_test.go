package gitinfo

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_PlainDirectory(t *testing.T) {
	_, ok := Detect(t.TempDir())
	assert.False(t, ok)
}

func TestDetect_Repository(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	info, ok := Detect(dir)
	require.True(t, ok)
	assert.Equal(t, dir, info.Path)
	assert.Empty(t, info.Branch, "no commits yet")
}

func TestDetect_Subdirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	sub := filepath.Join(dir, "nested", "deep")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	_, ok := Detect(sub)
	assert.True(t, ok, "dot-git discovery walks up")
}
