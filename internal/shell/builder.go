package shell

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/jaytechpal/FileOrbit/internal/gitinfo"
	"github.com/jaytechpal/FileOrbit/internal/logger"
)

// Target is the selection a context menu is built for. IsDir applies to the
// whole selection; mixed selections are treated as files.
type Target struct {
	Paths []string
	IsDir bool
}

// Builder assembles context menus from built-in actions and the application
// catalog. Building never fails: an application whose probe failed is simply
// absent from the catalog, so it never reaches the menu.
type Builder struct {
	log  logger.Logger
	apps []App
}

// NewBuilder creates a builder over the given catalog. Apps without a
// resolved executable path are ignored.
func NewBuilder(log logger.Logger, apps []App) *Builder {
	installed := make([]App, 0, len(apps))
	for _, a := range apps {
		if a.Installed() {
			installed = append(installed, a)
		}
	}
	return &Builder{log: log.WithGroup("shell"), apps: installed}
}

// Build returns the ordered menu for the target. The same target against an
// unchanged file system always yields the same list.
func (b *Builder) Build(t Target) []Action {
	if len(t.Paths) == 0 {
		return nil
	}
	primary := t.Paths[0]

	actions := b.openActions(t, primary)
	actions = append(actions, b.appActions(t, primary)...)
	actions = append(actions, standardActions(t)...)

	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Priority < actions[j].Priority
	})
	return withSeparators(actions)
}

func (b *Builder) openActions(t Target, primary string) []Action {
	if t.IsDir {
		return []Action{
			{Label: "Open", Icon: "folder", Kind: KindOpen, Command: primary, Priority: PriorityOpen},
			{Label: "Open in New Tab", Icon: "tab_new", Kind: KindOpenNewTab, Command: primary, Priority: PriorityOpen + 1},
		}
	}
	return []Action{
		{Label: "Open", Icon: "open", Kind: KindOpen, Command: primary, Priority: PriorityOpen},
		{Label: "Open with...", Icon: "open_with", Kind: KindOpenWith, Command: primary, Priority: PriorityOpen + 1},
	}
}

// appActions turns catalog entries into menu items, filtered by whether they
// make sense for the target.
func (b *Builder) appActions(t Target, primary string) []Action {
	var (
		actions []Action
		repo    *gitinfo.Info
		isRepo  bool
	)
	if t.IsDir {
		repo, isRepo = gitinfo.Detect(primary)
	}

	ext := filepath.Ext(primary)
	for _, app := range b.apps {
		if t.IsDir {
			if !app.Category.DirectoryAppropriate() {
				continue
			}
			// Version control entries only appear inside a repository.
			if app.Category == CategoryVersionControl && !isRepo {
				continue
			}
		} else {
			if len(app.Extensions) > 0 && !app.Handles(ext) {
				continue
			}
			if app.Category == CategoryVersionControl || app.Category == CategoryTerminal {
				continue
			}
		}
		label := app.Label
		if app.Category == CategoryVersionControl && repo != nil && repo.Branch != "" {
			label = fmt.Sprintf("%s (%s)", app.Label, repo.Branch)
		}
		actions = append(actions, Action{
			Label:    label,
			Icon:     app.Name,
			Kind:     KindAppCommand,
			Command:  fmt.Sprintf("%q %q", app.Path, primary),
			Priority: appPriority(app),
		})
	}
	return actions
}

func appPriority(app App) int {
	if app.Priority != 0 {
		return app.Priority
	}
	switch app.Category {
	case CategoryVersionControl:
		return PriorityGit
	case CategoryEditor:
		return PriorityEditors
	case CategoryTerminal:
		return PriorityEditors + 2
	case CategoryMedia, CategoryCompression, CategoryViewer:
		return PriorityThirdParty
	default:
		return PriorityDefault
	}
}

// standardActions are the clipboard/delete/rename block plus system actions.
func standardActions(t Target) []Action {
	primary := t.Paths[0]
	actions := []Action{
		{Label: "Cut", Icon: "cut", Kind: KindCut, Command: primary, Priority: PriorityFileOps},
		{Label: "Copy", Icon: "copy", Kind: KindCopy, Command: primary, Priority: PriorityFileOps + 1},
	}
	if t.IsDir {
		actions = append(actions,
			Action{Label: "Paste", Icon: "paste", Kind: KindPaste, Command: primary, Priority: PriorityFileOps + 2})
	}
	actions = append(actions,
		Action{Label: "Create shortcut", Icon: "shortcut", Kind: KindCreateShortcut, Command: primary, Priority: PriorityFileOps + 3},
		Action{Label: "Delete", Icon: "delete", Kind: KindDelete, Command: primary, Priority: PriorityFileOps + 4},
		Action{Label: "Rename", Icon: "rename", Kind: KindRename, Command: primary, Priority: PriorityFileOps + 5},
		Action{Label: "Send to", Icon: "send_to", Kind: KindSendTo, Command: primary, Priority: PriorityThirdParty + 2},
		Action{Label: "Properties", Icon: "properties", Kind: KindProperties, Command: primary, Priority: PrioritySystem},
	)
	return actions
}

// withSeparators inserts a divider wherever consecutive items belong to
// different priority bands.
func withSeparators(actions []Action) []Action {
	if len(actions) == 0 {
		return actions
	}
	result := make([]Action, 0, len(actions)+4)
	lastBand := -1
	for _, a := range actions {
		b := band(a.Priority)
		if lastBand >= 0 && b != lastBand {
			result = append(result, Action{Kind: KindSeparator, Priority: a.Priority - 1})
		}
		result = append(result, a)
		lastBand = b
	}
	return result
}
