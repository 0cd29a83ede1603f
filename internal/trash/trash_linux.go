//go:build linux

package trash

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// put implements the freedesktop.org Trash specification: the file moves to
// ~/.local/share/Trash/files and a matching .trashinfo record is written.
func put(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ErrUnsupported
	}
	trashDir := filepath.Join(home, ".local", "share", "Trash")
	filesDir := filepath.Join(trashDir, "files")
	infoDir := filepath.Join(trashDir, "info")
	for _, d := range []string{filesDir, infoDir} {
		if err := os.MkdirAll(d, 0o700); err != nil {
			return fmt.Errorf("failed to create trash directory: %w", err)
		}
	}

	name := uniqueName(filesDir, filepath.Base(abs))
	info := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		abs, time.Now().Format("2006-01-02T15:04:05"))
	infoPath := filepath.Join(infoDir, name+".trashinfo")
	if err := os.WriteFile(infoPath, []byte(info), 0o600); err != nil {
		return fmt.Errorf("failed to write trash info: %w", err)
	}

	if err := os.Rename(abs, filepath.Join(filesDir, name)); err != nil {
		_ = os.Remove(infoPath)
		return fmt.Errorf("failed to move %s to trash: %w", abs, err)
	}
	return nil
}

// uniqueName appends a numeric suffix until the name is free in dir.
func uniqueName(dir, base string) string {
	name := base
	for i := 2; ; i++ {
		if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
			return name
		}
		ext := filepath.Ext(base)
		name = fmt.Sprintf("%s.%d%s", base[:len(base)-len(ext)], i, ext)
	}
}
