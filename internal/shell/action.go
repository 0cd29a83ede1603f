// Package shell builds the ordered list of context-menu actions a native
// file explorer would present for a selection, combining built-in actions
// with discovered third-party applications.
package shell

// Priority bands controlling menu order. Lower values sort first; a
// separator goes between consecutive bands.
const (
	PriorityOpen       = 1
	PriorityGit        = 10
	PriorityEditors    = 20
	PriorityFileOps    = 100
	PriorityThirdParty = 200
	PriorityDefault    = 400
	PrioritySystem     = 900
)

// ActionKind is the closed set of things a menu entry can do. Dispatch is a
// single switch over this type; there are no string-keyed handlers.
type ActionKind int

const (
	KindSeparator ActionKind = iota
	KindOpen
	KindOpenWith
	KindOpenNewTab
	KindAppCommand
	KindCut
	KindCopy
	KindPaste
	KindCreateShortcut
	KindDelete
	KindRename
	KindSendTo
	KindProperties
)

func (k ActionKind) String() string {
	switch k {
	case KindSeparator:
		return "separator"
	case KindOpen:
		return "open"
	case KindOpenWith:
		return "open-with"
	case KindOpenNewTab:
		return "open-new-tab"
	case KindAppCommand:
		return "app-command"
	case KindCut:
		return "cut"
	case KindCopy:
		return "copy"
	case KindPaste:
		return "paste"
	case KindCreateShortcut:
		return "create-shortcut"
	case KindDelete:
		return "delete"
	case KindRename:
		return "rename"
	case KindSendTo:
		return "send-to"
	case KindProperties:
		return "properties"
	default:
		return "unknown"
	}
}

// Action is one entry of a built context menu.
type Action struct {
	Label    string
	Icon     string
	Kind     ActionKind
	Command  string
	Priority int
}

// IsSeparator reports whether the entry is a visual divider rather than an
// invokable item.
func (a Action) IsSeparator() bool {
	return a.Kind == KindSeparator
}

// band groups priorities the way the menu is visually sectioned.
func band(priority int) int {
	switch {
	case priority <= PriorityOpen+10:
		return 0
	case priority <= PriorityGit+10:
		return 1
	case priority <= PriorityEditors+10:
		return 2
	case priority <= PriorityFileOps+50:
		return 3
	case priority <= PriorityThirdParty+100:
		return 4
	case priority <= PriorityDefault+100:
		return 5
	default:
		return 6
	}
}
