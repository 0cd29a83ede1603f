// Package filestore provides process-safe persistence for FileOrbit's JSON
// state files (configuration, bookmarks) with CAS support.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrConcurrentModification is returned when a file has been modified since it was read
var ErrConcurrentModification = errors.New("file was modified concurrently")

// ErrLockTimeout is returned when acquiring a file lock times out
var ErrLockTimeout = errors.New("timeout acquiring file lock")

// FileInfo represents metadata about a file used for CAS operations
type FileInfo struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// UpdateFunc is a function that modifies data in-place
type UpdateFunc[T any] func(data *T) error

// Store provides thread-safe and process-safe JSON file operations with CAS support
type Store[T any] struct {
	// lockTimeout is the maximum time to wait for a file lock
	lockTimeout time.Duration
}

// NewStore creates a new store with default settings
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		lockTimeout: 5 * time.Second,
	}
}

// NewStoreWithTimeout creates a new store with a custom lock timeout
func NewStoreWithTimeout[T any](timeout time.Duration) *Store[T] {
	return &Store[T]{
		lockTimeout: timeout,
	}
}

// Read reads a file with a shared lock
func (s *Store[T]) Read(ctx context.Context, path string) (*T, *FileInfo, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, err
	}

	lock := createLock(path)

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	locked, err := lock.TryRLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to acquire read lock: %w", err)
	}
	if !locked {
		return nil, nil, ErrLockTimeout
	}
	defer func() { _ = lock.Unlock() }()

	data, err := readFileWithRetry(path)
	if err != nil {
		return nil, nil, err
	}

	// Stat again under the lock so the CAS token matches what was read
	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	info := &FileInfo{
		Path:    path,
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
	}

	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal json: %w", err)
	}

	return &result, info, nil
}

// Write writes a file with an exclusive lock (no CAS check)
func (s *Store[T]) Write(ctx context.Context, path string, data *T) error {
	return s.write(ctx, path, data, nil)
}

// WriteWithCAS writes a file only if it hasn't changed since the provided FileInfo
func (s *Store[T]) WriteWithCAS(ctx context.Context, path string, data *T, expectedInfo *FileInfo) error {
	return s.write(ctx, path, data, expectedInfo)
}

func (s *Store[T]) write(ctx context.Context, path string, data *T, expectedInfo *FileInfo) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	lock := createLock(path)

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	if !locked {
		return ErrLockTimeout
	}
	defer func() { _ = lock.Unlock() }()

	if expectedInfo != nil {
		stat, err := os.Stat(path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat file: %w", err)
		}
		if err == nil {
			if !stat.ModTime().Equal(expectedInfo.ModTime) || stat.Size() != expectedInfo.Size {
				return ErrConcurrentModification
			}
		}
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal json: %w", err)
	}
	jsonData = append(jsonData, '\n')

	// Write atomically using temp file + rename.
	// Use a unique temp file name to avoid conflicts on Windows.
	tempFile := fmt.Sprintf("%s.%d.%d.tmp", path, os.Getpid(), time.Now().UnixNano())
	if err := os.WriteFile(tempFile, jsonData, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	// Sync to ensure data is written to disk
	if f, err := os.OpenFile(tempFile, os.O_RDWR, 0o644); err == nil {
		_ = f.Sync()
		_ = f.Close()
	}

	if err := atomicRename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

// Update reads a file, applies an update function, and writes it back with CAS
func (s *Store[T]) Update(ctx context.Context, path string, updateFunc UpdateFunc[T]) error {
	const maxRetries = 10

	for i := 0; i < maxRetries; i++ {
		data, info, err := s.Read(ctx, path)
		if err != nil {
			if os.IsNotExist(err) {
				// File doesn't exist, create new
				var newData T
				if err := updateFunc(&newData); err != nil {
					return fmt.Errorf("update function failed: %w", err)
				}
				if err := s.Write(ctx, path, &newData); err != nil {
					if errors.Is(err, ErrConcurrentModification) {
						continue
					}
					return err
				}
				return nil
			}
			return fmt.Errorf("failed to read file: %w", err)
		}

		if err := updateFunc(data); err != nil {
			return fmt.Errorf("update function failed: %w", err)
		}

		if err := s.WriteWithCAS(ctx, path, data, info); err != nil {
			if errors.Is(err, ErrConcurrentModification) {
				continue
			}
			return err
		}

		return nil
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, ErrConcurrentModification)
}

// Delete removes a file with an exclusive lock
func (s *Store[T]) Delete(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to stat file: %w", err)
	}

	lock := createLock(path)

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	if !locked {
		return ErrLockTimeout
	}

	// Unlock before removing on Windows to avoid file handle issues
	if err := lock.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock file: %w", err)
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	cleanupLockFile(path)

	return nil
}
