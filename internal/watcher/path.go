package watcher

import "path/filepath"

// eventDirs maps an event path to the directories it may concern. Events
// usually name a changed entry, so its parent is what panes care about, but
// an event can also name a watched directory itself (removal, rename); both
// candidates are scheduled and the unwatched one is discarded there.
func eventDirs(name string) (string, string) {
	clean := filepath.Clean(name)
	return clean, filepath.Dir(clean)
}
