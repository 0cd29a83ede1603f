// Package navigation tracks the open tabs of a pane, each with its own
// browsing history, and the user's persisted bookmarks.
package navigation

import (
	"path/filepath"

	"github.com/google/uuid"
)

// Tab is one open directory view with back/forward history. Navigating to a
// new path pushes the current one onto the back stack and clears the
// forward stack, the way browser history behaves.
type Tab struct {
	ID      string
	path    string
	back    []string
	forward []string
}

func newTab(path string) *Tab {
	return &Tab{ID: uuid.New().String(), path: path}
}

// Path returns the directory the tab currently shows.
func (t *Tab) Path() string {
	return t.path
}

// NavigateTo moves the tab to path, recording the current location in the
// back history. Navigating to the current path is a no-op.
func (t *Tab) NavigateTo(path string) {
	path = filepath.Clean(path)
	if path == t.path {
		return
	}
	t.back = append(t.back, t.path)
	t.forward = t.forward[:0]
	t.path = path
}

// Back moves one step back in history. It reports false when there is no
// history to go back to.
func (t *Tab) Back() (string, bool) {
	if len(t.back) == 0 {
		return t.path, false
	}
	t.forward = append(t.forward, t.path)
	t.path = t.back[len(t.back)-1]
	t.back = t.back[:len(t.back)-1]
	return t.path, true
}

// Forward undoes the most recent Back.
func (t *Tab) Forward() (string, bool) {
	if len(t.forward) == 0 {
		return t.path, false
	}
	t.back = append(t.back, t.path)
	t.path = t.forward[len(t.forward)-1]
	t.forward = t.forward[:len(t.forward)-1]
	return t.path, true
}

// Up navigates to the parent directory. At a filesystem root it reports
// false and stays put.
func (t *Tab) Up() (string, bool) {
	parent := filepath.Dir(t.path)
	if parent == t.path {
		return t.path, false
	}
	t.NavigateTo(parent)
	return t.path, true
}

// CanBack reports whether Back would move.
func (t *Tab) CanBack() bool { return len(t.back) > 0 }

// CanForward reports whether Forward would move.
func (t *Tab) CanForward() bool { return len(t.forward) > 0 }
