package shell

import "strings"

// systemResourceLabels resolves indirect labels like "@shell32.dll,-8506"
// to display text. An empty mapping means the entry is dropped entirely.
var systemResourceLabels = map[string]string{
	"@shell32.dll,-8506":  "Find",
	"@shell32.dll,-8508":  "Find",
	"@wsl.exe,-2":         "",
	"@shell32.dll,-30315": "Send to",
	"@shell32.dll,-31374": "Copy",
	"@shell32.dll,-31375": "Cut",
	"@shell32.dll,-10210": "",
	"@shell32.dll,-10211": "",
	"@shell32.dll,-31233": "",
}

var (
	filterPatterns = []string{
		"wsl", "windows subsystem", "microsoft store",
		"debugger", "profiler", "analyzer",
	}
	filterPrefixes = []string{"@", "ms-"}
)

const minLabelLength = 2

// cleanVerbLabel normalizes a shell verb's display text. The second return
// is false when the entry should be omitted from menus.
func cleanVerbLabel(label string) (string, bool) {
	label = strings.TrimSpace(label)
	if resolved, ok := systemResourceLabels[label]; ok {
		label = resolved
	}
	if len(label) < minLabelLength {
		return "", false
	}
	lower := strings.ToLower(label)
	for _, p := range filterPatterns {
		if strings.Contains(lower, p) {
			return "", false
		}
	}
	for _, p := range filterPrefixes {
		if strings.HasPrefix(lower, p) {
			return "", false
		}
	}
	return label, true
}

// commandExecutable extracts the executable path from a shell command
// string, honoring a leading quoted segment.
func commandExecutable(command string) string {
	command = strings.TrimSpace(command)
	if command == "" {
		return ""
	}
	if strings.HasPrefix(command, `"`) {
		if end := strings.Index(command[1:], `"`); end >= 0 {
			return command[1 : end+1]
		}
	}
	return strings.Fields(command)[0]
}
