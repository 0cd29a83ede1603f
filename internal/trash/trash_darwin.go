//go:build darwin

package trash

import (
	"fmt"
	"os/exec"
	"path/filepath"
)

// put asks Finder to trash the item so "Put Back" keeps working.
func put(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	script := fmt.Sprintf(`tell application "Finder" to delete POSIX file %q`, abs)
	cmd := exec.Command("osascript", "-e", script)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to move %s to trash: %v: %s", abs, err, out)
	}
	return nil
}
