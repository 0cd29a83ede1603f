package navigation

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/jaytechpal/FileOrbit/internal/logger"
)

var (
	// ErrLastTab is returned when closing the only remaining tab
	ErrLastTab = errors.New("cannot close the last tab")
	// ErrUnknownTab is returned for an ID no open tab has
	ErrUnknownTab = errors.New("unknown tab")
)

// Manager owns the tabs of one pane. A pane always has at least one open
// tab.
type Manager struct {
	log logger.Logger

	mu     sync.Mutex
	tabs   []*Tab
	active int
}

// NewManager creates a manager with a single tab at startPath.
func NewManager(log logger.Logger, startPath string) *Manager {
	return &Manager{
		log:  log.WithGroup("navigation"),
		tabs: []*Tab{newTab(filepath.Clean(startPath))},
	}
}

// NewTab opens a tab at path and makes it active.
func (m *Manager) NewTab(path string) *Tab {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := newTab(filepath.Clean(path))
	m.tabs = append(m.tabs, t)
	m.active = len(m.tabs) - 1
	m.log.Debug("tab opened", "id", t.ID, "path", t.Path())
	return t
}

// CloseTab closes the tab with the given ID. The last tab cannot be closed.
func (m *Manager) CloseTab(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tabs) == 1 {
		return ErrLastTab
	}
	for i, t := range m.tabs {
		if t.ID != id {
			continue
		}
		m.tabs = append(m.tabs[:i], m.tabs[i+1:]...)
		if m.active >= len(m.tabs) {
			m.active = len(m.tabs) - 1
		} else if m.active > i {
			m.active--
		}
		m.log.Debug("tab closed", "id", id)
		return nil
	}
	return ErrUnknownTab
}

// SwitchTo makes the tab with the given ID active.
func (m *Manager) SwitchTo(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tabs {
		if t.ID == id {
			m.active = i
			return nil
		}
	}
	return ErrUnknownTab
}

// ActiveTab returns the currently active tab.
func (m *Manager) ActiveTab() *Tab {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tabs[m.active]
}

// Tabs returns the open tabs in display order.
func (m *Manager) Tabs() []*Tab {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Tab, len(m.tabs))
	copy(out, m.tabs)
	return out
}
