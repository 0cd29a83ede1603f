package shell

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category classifies a discovered application. It decides whether the
// application's menu entry makes sense for a directory target or only for
// individual files.
type Category string

const (
	CategoryEditor         Category = "editor"
	CategoryTerminal       Category = "terminal"
	CategoryVersionControl Category = "version_control"
	CategoryDevelopment    Category = "development"
	CategoryCompression    Category = "compression"
	CategoryMedia          Category = "media"
	CategoryViewer         Category = "viewer"
	CategorySystem         Category = "system"
	CategoryOther          Category = "application"
)

// DirectoryAppropriate reports whether an application of this category
// should appear in the menu for a folder. Development tools, terminals and
// version control operate on trees; media players and viewers only ever take
// single files.
func (c Category) DirectoryAppropriate() bool {
	switch c {
	case CategoryEditor, CategoryTerminal, CategoryVersionControl,
		CategoryDevelopment, CategoryCompression:
		return true
	default:
		return false
	}
}

// App describes an installed third-party application that can contribute a
// context-menu entry.
type App struct {
	Name       string   `yaml:"name"`
	Label      string   `yaml:"label"`
	Path       string   `yaml:"path,omitempty"`
	Category   Category `yaml:"category"`
	Extensions []string `yaml:"extensions,omitempty"`
	Priority   int      `yaml:"priority,omitempty"`
}

// Installed reports whether discovery resolved a concrete executable.
func (a App) Installed() bool {
	return a.Path != ""
}

// Handles reports whether the app claims file extension ext (with or
// without a leading dot). An app without an extension list handles nothing
// specifically and contributes a generic entry instead.
func (a App) Handles(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, e := range a.Extensions {
		if strings.ToLower(strings.TrimPrefix(e, ".")) == ext {
			return true
		}
	}
	return false
}

// Discovery resolves the apps present on this machine.
type Discovery interface {
	Discover() []App
}

// defaultApps is the built-in catalog. Entries without a Path are resolved
// by platform discovery; unresolved ones are dropped from menus.
func defaultApps() []App {
	return []App{
		{Name: "vscode", Label: "Open with Code", Category: CategoryEditor},
		{Name: "sublime", Label: "Open with Sublime Text", Category: CategoryEditor},
		{Name: "git", Label: "Open Git GUI here", Category: CategoryVersionControl},
		{Name: "terminal", Label: "Open Terminal here", Category: CategoryTerminal},
		{Name: "vlc", Label: "Open with VLC media player", Category: CategoryMedia,
			Extensions: []string{"mp4", "mkv", "avi", "mp3", "flac", "ogg", "wav", "webm"}},
		{Name: "mpc", Label: "Add to MPC-HC playlist", Category: CategoryMedia,
			Extensions: []string{"mp4", "mkv", "avi", "mp3"}},
		{Name: "7zip", Label: "Add to archive", Category: CategoryCompression},
	}
}

// catalogFile is the on-disk shape of the user applications catalog.
type catalogFile struct {
	Applications []App `yaml:"applications"`
}

// LoadCatalog returns the application catalog: the built-in defaults with
// the user's YAML catalog merged over them by app name. A missing file
// yields just the defaults; a malformed file is an error.
func LoadCatalog(path string) ([]App, error) {
	apps := defaultApps()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return apps, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read applications catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse applications catalog: %w", err)
	}

	byName := make(map[string]int, len(apps))
	for i, a := range apps {
		byName[a.Name] = i
	}
	for _, a := range file.Applications {
		if a.Name == "" {
			continue
		}
		if i, ok := byName[a.Name]; ok {
			apps[i] = mergeApp(apps[i], a)
		} else {
			apps = append(apps, a)
		}
	}
	sort.SliceStable(apps, func(i, j int) bool { return apps[i].Name < apps[j].Name })
	return apps, nil
}

// mergeApp overlays the user entry onto the built-in one, field by field.
func mergeApp(base, over App) App {
	if over.Label != "" {
		base.Label = over.Label
	}
	if over.Path != "" {
		base.Path = over.Path
	}
	if over.Category != "" {
		base.Category = over.Category
	}
	if len(over.Extensions) > 0 {
		base.Extensions = over.Extensions
	}
	if over.Priority != 0 {
		base.Priority = over.Priority
	}
	return base
}
