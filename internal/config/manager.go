// Package config provides configuration management for FileOrbit.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jaytechpal/FileOrbit/internal/filestore"
)

const (
	// AppDir is the directory name under the user config dir
	AppDir = "fileorbit"
	// ConfigFile is the filename for the FileOrbit configuration
	ConfigFile = "config.json"
	// BookmarksFile is the filename for persisted bookmarks
	BookmarksFile = "bookmarks.json"
	// ApplicationsFile is the filename for the context-menu application catalog
	ApplicationsFile = "applications.yaml"
)

// Manager handles FileOrbit configuration
type Manager struct {
	configDir  string
	configPath string
	store      *filestore.Store[Config]
}

// NewManager creates a configuration manager rooted at the platform config dir
func NewManager() (*Manager, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return NewManagerAt(filepath.Join(base, AppDir)), nil
}

// NewManagerAt creates a configuration manager rooted at an explicit directory
func NewManagerAt(configDir string) *Manager {
	return &Manager{
		configDir:  configDir,
		configPath: filepath.Join(configDir, ConfigFile),
		store:      filestore.NewStore[Config](),
	}
}

// Load reads the configuration from disk. Values present in the file override
// defaults field by field; absent keys keep their defaults. A missing file
// yields the defaults; there is no migration logic.
func (m *Manager) Load(ctx context.Context) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := ValidateJSON(data); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Unmarshaling into the defaults-populated struct merges section by
	// section: only keys the file carries are replaced.
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to disk
func (m *Manager) Save(ctx context.Context, cfg *Config) error {
	if err := m.store.Write(ctx, m.configPath, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Update applies fn to the stored configuration under the store's CAS loop
func (m *Manager) Update(ctx context.Context, fn func(*Config) error) error {
	return m.store.Update(ctx, m.configPath, fn)
}

// ConfigDir returns the directory holding all FileOrbit state files
func (m *Manager) ConfigDir() string {
	return m.configDir
}

// ConfigPath returns the path of the configuration file
func (m *Manager) ConfigPath() string {
	return m.configPath
}

// BookmarksPath returns the path of the bookmarks file
func (m *Manager) BookmarksPath() string {
	return filepath.Join(m.configDir, BookmarksFile)
}

// ApplicationsPath returns the path of the application catalog file
func (m *Manager) ApplicationsPath() string {
	return filepath.Join(m.configDir, ApplicationsFile)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
