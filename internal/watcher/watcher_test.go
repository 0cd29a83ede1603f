package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaytechpal/FileOrbit/internal/logger"
)

func newTestWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := New(logger.Nop(), WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func waitChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case c := <-w.Changes():
		return c
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change notification")
		return Change{}
	}
}

func TestWatcher_NotifiesOnCreate(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t)
	w.Watch(dir)
	require.True(t, w.Watching(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0o644))

	c := waitChange(t, w)
	assert.Equal(t, dir, c.Dir)
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t)
	w.Watch(dir)

	for i := 0; i < 10; i++ {
		name := filepath.Join(dir, "f"+string(rune('a'+i)))
		require.NoError(t, os.WriteFile(name, []byte("x"), 0o644))
	}

	c := waitChange(t, w)
	assert.Equal(t, dir, c.Dir)

	// The burst happened well inside one debounce window, so no second
	// notification should follow.
	select {
	case extra := <-w.Changes():
		t.Fatalf("unexpected extra notification for %s", extra.Dir)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_UnwatchableDirIsSkipped(t *testing.T) {
	w := newTestWatcher(t)

	missing := filepath.Join(t.TempDir(), "does-not-exist")
	w.Watch(missing)

	assert.False(t, w.Watching(missing))

	// The watcher stays usable for other directories.
	dir := t.TempDir()
	w.Watch(dir)
	assert.True(t, w.Watching(dir))
}

func TestWatcher_Unwatch(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t)
	w.Watch(dir)
	w.Unwatch(dir)
	assert.False(t, w.Watching(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("x"), 0o644))
	select {
	case c := <-w.Changes():
		t.Fatalf("notification after Unwatch: %s", c.Dir)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_NotifiesWhenWatchedDirRemoved(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "sub")
	require.NoError(t, os.Mkdir(dir, 0o755))

	w := newTestWatcher(t)
	w.Watch(dir)
	require.True(t, w.Watching(dir))

	// The removal event names the watched directory itself, not an entry
	// inside it.
	require.NoError(t, os.Remove(dir))

	c := waitChange(t, w)
	assert.Equal(t, dir, c.Dir)
}

func TestWatcher_CloseClosesChannel(t *testing.T) {
	w, err := New(logger.Nop())
	require.NoError(t, err)
	w.Watch(t.TempDir())
	require.NoError(t, w.Close())

	_, open := <-w.Changes()
	assert.False(t, open)
}
