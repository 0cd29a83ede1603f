//go:build windows

package shell

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/windows/registry"

	"github.com/jaytechpal/FileOrbit/internal/logger"
)

// windowsExecutables maps catalog names to the executable names probed in
// the registry and on PATH.
var windowsExecutables = map[string][]string{
	"vscode":   {"Code.exe"},
	"sublime":  {"sublime_text.exe", "subl.exe"},
	"git":      {"git.exe"},
	"terminal": {"wt.exe", "powershell.exe", "cmd.exe"},
	"vlc":      {"vlc.exe"},
	"mpc":      {"mpc-hc64.exe", "mpc-hc.exe"},
	"7zip":     {"7zFM.exe", "7z.exe"},
}

var appPathsKeys = []string{
	`SOFTWARE\Microsoft\Windows\CurrentVersion\App Paths\`,
	`SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\App Paths\`,
}

var uninstallKeys = []string{
	`SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`,
	`SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`,
}

type registryDiscovery struct {
	log     logger.Logger
	catalog []App
}

// NewDiscovery resolves catalog entries through the registry, read-only.
// Every probe failure is logged at warning level and the entry left
// unresolved; menu construction itself never fails.
func NewDiscovery(log logger.Logger, catalog []App) Discovery {
	return &registryDiscovery{log: log.WithGroup("shell"), catalog: catalog}
}

func (d *registryDiscovery) Discover() []App {
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
		path, err := d.resolve(app)
		if err != nil {
			d.log.Warn("application probe failed, omitting", "app", app.Name, "error", err)
		} else {
			app.Path = path
		}
		out = append(out, app)
	}
	return out
}

func (d *registryDiscovery) resolve(app App) (string, error) {
	for _, exe := range windowsExecutables[app.Name] {
		if p, err := appPathsLookup(exe); err == nil {
			return p, nil
		}
		if p, err := exec.LookPath(exe); err == nil {
			return p, nil
		}
	}
	if p, err := uninstallLookup(app); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("no executable found for %s", app.Name)
}

// appPathsLookup reads the App Paths registration for an executable name.
func appPathsLookup(exe string) (string, error) {
	for _, root := range []registry.Key{registry.LOCAL_MACHINE, registry.CURRENT_USER} {
		for _, base := range appPathsKeys {
			k, err := registry.OpenKey(root, base+exe, registry.QUERY_VALUE)
			if err != nil {
				continue
			}
			v, _, err := k.GetStringValue("")
			k.Close()
			if err != nil || v == "" {
				continue
			}
			p := strings.Trim(v, `"`)
			if _, err := os.Stat(p); err == nil {
				return p, nil
			}
		}
	}
	return "", fmt.Errorf("%s not registered under App Paths", exe)
}

// uninstallLookup scans the Uninstall hives for a display name matching the
// app and derives an executable from its install metadata.
func uninstallLookup(app App) (string, error) {
	needle := strings.ToLower(app.Name)
	for _, base := range uninstallKeys {
		k, err := registry.OpenKey(registry.LOCAL_MACHINE, base, registry.READ)
		if err != nil {
			continue
		}
		names, err := k.ReadSubKeyNames(-1)
		k.Close()
		if err != nil {
			continue
		}
		for _, name := range names {
			sub, err := registry.OpenKey(registry.LOCAL_MACHINE, base+`\`+name, registry.QUERY_VALUE)
			if err != nil {
				continue
			}
			display, _, _ := sub.GetStringValue("DisplayName")
			if !strings.Contains(strings.ToLower(display), needle) {
				sub.Close()
				continue
			}
			for _, value := range []string{"DisplayIcon", "InstallLocation"} {
				v, _, err := sub.GetStringValue(value)
				if err != nil || v == "" {
					continue
				}
				p := strings.Trim(strings.SplitN(v, ",", 2)[0], `"`)
				if info, err := os.Stat(p); err == nil && !info.IsDir() {
					sub.Close()
					return p, nil
				}
			}
			sub.Close()
		}
	}
	return "", fmt.Errorf("%s not found in uninstall registrations", app.Name)
}

// ExtensionVerbs resolves the progid registered for a file extension and
// returns its shell verbs. Unregistered extensions yield nothing.
func ExtensionVerbs(log logger.Logger, ext string) []Action {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	k, err := registry.OpenKey(registry.CLASSES_ROOT, ext, registry.QUERY_VALUE)
	if err != nil {
		return nil
	}
	progid, _, err := k.GetStringValue("")
	k.Close()
	if err != nil || progid == "" {
		return nil
	}
	return ClassVerbs(log, progid)
}

// ClassVerbs enumerates the shell verbs registered for a file class, such
// as "Directory" or a progid, returning ready-made menu actions. Unreadable
// verbs are skipped.
func ClassVerbs(log logger.Logger, class string) []Action {
	k, err := registry.OpenKey(registry.CLASSES_ROOT, class+`\shell`, registry.READ)
	if err != nil {
		return nil
	}
	defer k.Close()

	verbs, err := k.ReadSubKeyNames(-1)
	if err != nil {
		return nil
	}

	var actions []Action
	for _, verb := range verbs {
		vk, err := registry.OpenKey(registry.CLASSES_ROOT, class+`\shell\`+verb, registry.QUERY_VALUE)
		if err != nil {
			log.Warn("unreadable shell verb, omitting", "class", class, "verb", verb, "error", err)
			continue
		}
		label, _, _ := vk.GetStringValue("")
		vk.Close()
		if label == "" {
			label = verb
		}
		label, ok := cleanVerbLabel(label)
		if !ok {
			continue
		}

		ck, err := registry.OpenKey(registry.CLASSES_ROOT, class+`\shell\`+verb+`\command`, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		command, _, err := ck.GetStringValue("")
		ck.Close()
		if err != nil || command == "" {
			continue
		}
		if exe := strings.ToLower(commandExecutable(command)); strings.Contains(exe, "wsl.exe") {
			continue
		}
		actions = append(actions, Action{
			Label:    label,
			Icon:     verb,
			Kind:     KindAppCommand,
			Command:  command,
			Priority: PriorityDefault,
		})
	}
	return actions
}
