// Package trash moves files to the platform recycle bin instead of deleting
// them permanently. Callers fall back to permanent deletion when it fails.
package trash

import (
	"errors"
	"os"
)

// ErrUnsupported is returned on platforms without a usable trash location
var ErrUnsupported = errors.New("trash is not supported on this platform")

// Put moves the file or directory at path to the platform trash.
func Put(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	return put(path)
}
