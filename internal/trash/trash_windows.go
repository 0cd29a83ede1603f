//go:build windows

package trash

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// put routes the item through the Windows Recycle Bin via the
// Microsoft.VisualBasic FileIO API.
func put(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fn := "DeleteFile"
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		fn = "DeleteDirectory"
	}
	script := fmt.Sprintf(`Add-Type -AssemblyName Microsoft.VisualBasic; [Microsoft.VisualBasic.FileIO.FileSystem]::%s($args[0], [Microsoft.VisualBasic.FileIO.UIOption]::OnlyErrorDialogs, [Microsoft.VisualBasic.FileIO.RecycleOption]::SendToRecycleBin)`, fn)

	cmd := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script, abs)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to move %s to recycle bin: %v: %s", abs, err, out)
	}
	return nil
}
