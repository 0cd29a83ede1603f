//go:build !windows

package shell

import (
	"os"
	"os/exec"

	"github.com/jaytechpal/FileOrbit/internal/logger"
)

// executableCandidates maps catalog names to the binaries discovery probes
// for on PATH, in order.
var executableCandidates = map[string][]string{
	"vscode":   {"code", "code-insiders"},
	"sublime":  {"subl", "sublime_text"},
	"git":      {"git"},
	"terminal": {"x-terminal-emulator", "gnome-terminal", "konsole", "xterm"},
	"vlc":      {"vlc"},
	"7zip":     {"7z", "7za"},
}

type pathDiscovery struct {
	log     logger.Logger
	catalog []App
}

// NewDiscovery resolves catalog entries against the PATH. An entry whose
// probe fails keeps an empty Path and is left out of menus.
func NewDiscovery(log logger.Logger, catalog []App) Discovery {
	return &pathDiscovery{log: log.WithGroup("shell"), catalog: catalog}
}

func (d *pathDiscovery) Discover() []App {
	out := make([]App, 0, len(d.catalog))
	for _, app := range d.catalog {
		if app.Path != "" {
			if _, err := os.Stat(app.Path); err != nil {
				d.log.Warn("configured application missing, omitting", "app", app.Name, "path", app.Path)
				app.Path = ""
			}
			out = append(out, app)
			continue
		}
		for _, bin := range executableCandidates[app.Name] {
			if p, err := exec.LookPath(bin); err == nil {
				app.Path = p
				break
			}
		}
		out = append(out, app)
	}
	return out
}
