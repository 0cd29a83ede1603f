package navigation

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaytechpal/FileOrbit/internal/logger"
)

func TestManager_Tabs(t *testing.T) {
	m := NewManager(logger.Nop(), "/home/u")
	first := m.ActiveTab()
	assert.Equal(t, "/home/u", first.Path())

	second := m.NewTab("/tmp")
	assert.Equal(t, second.ID, m.ActiveTab().ID)
	assert.Len(t, m.Tabs(), 2)

	require.NoError(t, m.SwitchTo(first.ID))
	assert.Equal(t, first.ID, m.ActiveTab().ID)

	assert.ErrorIs(t, m.SwitchTo("nope"), ErrUnknownTab)
}

func TestManager_CloseTab(t *testing.T) {
	m := NewManager(logger.Nop(), "/home/u")
	first := m.ActiveTab()

	assert.ErrorIs(t, m.CloseTab(first.ID), ErrLastTab)

	second := m.NewTab("/tmp")
	require.NoError(t, m.CloseTab(second.ID))
	assert.Equal(t, first.ID, m.ActiveTab().ID)
	assert.Len(t, m.Tabs(), 1)

	assert.ErrorIs(t, m.CloseTab(second.ID), ErrUnknownTab)
}

func TestBookmarks(t *testing.T) {
	ctx := context.Background()
	b := NewBookmarks(filepath.Join(t.TempDir(), "bookmarks.json"))

	list, err := b.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, b.Add(ctx, "docs", "/home/u/docs"))
	require.NoError(t, b.Add(ctx, "code", "/home/u/code"))
	assert.ErrorIs(t, b.Add(ctx, "docs", "/elsewhere"), ErrBookmarkExists)

	list, err = b.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "code", list[0].Name, "sorted by name")

	path, err := b.Resolve(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, "/home/u/docs", path)

	require.NoError(t, b.Remove(ctx, "docs"))
	assert.ErrorIs(t, b.Remove(ctx, "docs"), ErrBookmarkNotFound)

	_, err = b.Resolve(ctx, "docs")
	assert.ErrorIs(t, err, ErrBookmarkNotFound)
}
