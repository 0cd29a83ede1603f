//go:build !linux && !darwin && !windows

package trash

func put(path string) error {
	return ErrUnsupported
}
