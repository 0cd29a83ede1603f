// Package checksum computes streaming file digests used to verify copies.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// File returns the hex-encoded SHA-256 digest of the file at path.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Equal reports whether two files have identical content.
func Equal(a, b string) (bool, error) {
	ha, err := File(a)
	if err != nil {
		return false, err
	}
	hb, err := File(b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}
