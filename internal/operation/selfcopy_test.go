package operation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RejectsCopyIntoSource(t *testing.T) {
	svc := newTestService()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), 128)

	t.Run("directory into itself", func(t *testing.T) {
		_, err := svc.Dispatch(context.Background(), Request{
			Sources: []string{dir},
			Dest:    dir,
			Kind:    Copy,
		}, nil)
		assert.ErrorIs(t, err, ErrDestInsideSource)

		// Nothing was created inside the source.
		entries, reerr := os.ReadDir(dir)
		require.NoError(t, reerr)
		assert.Len(t, entries, 1)
	})

	t.Run("directory into its own subtree", func(t *testing.T) {
		sub := filepath.Join(dir, "nested", "deep")
		require.NoError(t, os.MkdirAll(sub, 0o755))

		_, err := svc.Dispatch(context.Background(), Request{
			Sources: []string{dir},
			Dest:    sub,
			Kind:    Copy,
		}, nil)
		assert.ErrorIs(t, err, ErrDestInsideSource)
	})

	t.Run("move into own subtree", func(t *testing.T) {
		sub := filepath.Join(dir, "nested")

		_, err := svc.Dispatch(context.Background(), Request{
			Sources: []string{dir},
			Dest:    sub,
			Kind:    Move,
		}, nil)
		assert.ErrorIs(t, err, ErrDestInsideSource)
	})

	t.Run("relative notation does not mask the overlap", func(t *testing.T) {
		_, err := svc.Dispatch(context.Background(), Request{
			Sources: []string{dir},
			Dest:    filepath.Join(dir, "nested", ".."),
			Kind:    Copy,
		}, nil)
		assert.ErrorIs(t, err, ErrDestInsideSource)
	})

	t.Run("sibling destination is fine", func(t *testing.T) {
		sibling := t.TempDir()
		id, err := svc.Dispatch(context.Background(), Request{
			Sources: []string{dir},
			Dest:    sibling,
			Kind:    Copy,
		}, nil)
		require.NoError(t, err)

		result, err := svc.Wait(id)
		require.NoError(t, err)
		assert.Equal(t, StatusSuccess, result.Status)
	})

	t.Run("file into its own parent is fine", func(t *testing.T) {
		src := filepath.Join(dir, "a.txt")
		id, err := svc.Dispatch(context.Background(), Request{
			Sources:   []string{src},
			Dest:      dir,
			Kind:      Copy,
			Overwrite: PolicyRename,
		}, nil)
		require.NoError(t, err)

		result, err := svc.Wait(id)
		require.NoError(t, err)
		assert.Equal(t, StatusSuccess, result.Status)
		_, err = os.Stat(filepath.Join(dir, "a (2).txt"))
		assert.NoError(t, err)
	})
}

func TestDestWithin(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	tests := []struct {
		name   string
		src    string
		dest   string
		within bool
	}{
		{"same path", dir, dir, true},
		{"child", dir, sub, true},
		{"parent", sub, dir, false},
		{"sibling", sub, t.TempDir(), false},
		{"dotdot back inside", dir, filepath.Join(sub, ".."), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := destWithin(tt.src, tt.dest)
			require.NoError(t, err)
			assert.Equal(t, tt.within, got)
		})
	}
}
