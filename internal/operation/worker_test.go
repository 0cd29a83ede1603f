package operation

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaytechpal/FileOrbit/internal/checksum"
	"github.com/jaytechpal/FileOrbit/internal/logger"
	"github.com/jaytechpal/FileOrbit/internal/platform"
)

// smallBuffer forces many chunks so cancellation and progress have
// observable granularity in tests.
func smallBuffer(int64) int { return 4 * 1024 }

func newTestService() *Service {
	return NewService(logger.Nop(), platform.Capabilities{TotalMemory: 8 << 30, Is64Bit: true})
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	data := bytes.Repeat([]byte{0xAB}, size)
	// Vary the content so identical sizes still differ
	copy(data, path)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

type progressRecorder struct {
	mu        sync.Mutex
	snapshots []Progress
}

func (r *progressRecorder) record(p Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, p)
}

func (r *progressRecorder) all() []Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Progress, len(r.snapshots))
	copy(out, r.snapshots)
	return out
}

func TestCopy_ProgressMonotoneAndComplete(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	sizes := []int{64 * 1024, 10 * 1024, 1}
	var sources []string
	var total int64
	for i, size := range sizes {
		path := filepath.Join(srcDir, string(rune('a'+i))+".bin")
		writeFile(t, path, size)
		sources = append(sources, path)
		total += int64(size)
	}

	rec := &progressRecorder{}
	w := &worker{
		req:       Request{Sources: sources, Dest: dstDir, Kind: Copy},
		bufferFor: smallBuffer,
		progress:  rec.record,
		log:       logger.Nop(),
	}

	result := w.run(context.Background())
	require.Equal(t, StatusSuccess, result.Status)
	require.NoError(t, result.Err)

	snaps := rec.all()
	require.NotEmpty(t, snaps)

	var prev int64
	for _, p := range snaps {
		assert.GreaterOrEqual(t, p.BytesDone, prev, "progress must not go backwards")
		assert.Equal(t, total, p.BytesTotal)
		prev = p.BytesDone
	}
	assert.Equal(t, total, snaps[len(snaps)-1].BytesDone)
	assert.InDelta(t, 100.0, snaps[len(snaps)-1].Percent, 0.001)

	// Files processed strictly in input order
	firstSeen := map[string]int{}
	for i, p := range snaps {
		if _, ok := firstSeen[p.CurrentFile]; !ok {
			firstSeen[p.CurrentFile] = i
		}
	}
	require.Less(t, firstSeen[sources[0]], firstSeen[sources[1]])
	require.Less(t, firstSeen[sources[1]], firstSeen[sources[2]])

	for _, src := range sources {
		dst := filepath.Join(dstDir, filepath.Base(src))
		same, err := checksum.Equal(src, dst)
		require.NoError(t, err)
		assert.True(t, same, "%s must match its source", dst)
	}
}

func TestCopy_CancelPreservesCompletedFiles(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	first := filepath.Join(srcDir, "first.bin")
	second := filepath.Join(srcDir, "second.bin")
	writeFile(t, first, 8*1024)
	writeFile(t, second, 256*1024)

	ctx, cancel := context.WithCancel(context.Background())

	// Cancel partway through the second file
	var cancelOnce sync.Once
	progress := func(p Progress) {
		if p.CurrentFile == second && p.BytesDone > 8*1024+32*1024 {
			cancelOnce.Do(cancel)
		}
	}

	w := &worker{
		req:       Request{Sources: []string{first, second}, Dest: dstDir, Kind: Copy},
		bufferFor: smallBuffer,
		progress:  progress,
		log:       logger.Nop(),
	}

	result := w.run(ctx)
	assert.Equal(t, StatusCancelled, result.Status)

	// The file completed before cancellation is byte-identical
	same, err := checksum.Equal(first, filepath.Join(dstDir, "first.bin"))
	require.NoError(t, err)
	assert.True(t, same)

	// The in-flight file is left partial, no rollback
	info, err := os.Stat(filepath.Join(dstDir, "second.bin"))
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(256*1024))

	// Sources are untouched
	srcInfo, err := os.Stat(second)
	require.NoError(t, err)
	assert.Equal(t, int64(256*1024), srcInfo.Size())
}

func TestCopy_DirectoryTree(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	tree := filepath.Join(srcDir, "project")
	require.NoError(t, os.MkdirAll(filepath.Join(tree, "nested"), 0o755))
	writeFile(t, filepath.Join(tree, "top.txt"), 1024)
	writeFile(t, filepath.Join(tree, "nested", "deep.txt"), 2048)

	w := &worker{
		req:       Request{Sources: []string{tree}, Dest: dstDir, Kind: Copy},
		bufferFor: smallBuffer,
		log:       logger.Nop(),
	}
	result := w.run(context.Background())
	require.Equal(t, StatusSuccess, result.Status)

	same, err := checksum.Equal(
		filepath.Join(tree, "nested", "deep.txt"),
		filepath.Join(dstDir, "project", "nested", "deep.txt"))
	require.NoError(t, err)
	assert.True(t, same)
}

func TestCopy_OverwritePolicies(t *testing.T) {
	t.Run("skip", func(t *testing.T) {
		srcDir, dstDir := t.TempDir(), t.TempDir()
		src := filepath.Join(srcDir, "a.txt")
		writeFile(t, src, 512)
		existing := filepath.Join(dstDir, "a.txt")
		require.NoError(t, os.WriteFile(existing, []byte("keep me"), 0o644))

		w := &worker{
			req:       Request{Sources: []string{src}, Dest: dstDir, Kind: Copy, Overwrite: PolicySkip},
			bufferFor: smallBuffer,
			log:       logger.Nop(),
		}
		result := w.run(context.Background())
		require.Equal(t, StatusSuccess, result.Status)

		data, err := os.ReadFile(existing)
		require.NoError(t, err)
		assert.Equal(t, "keep me", string(data))
	})

	t.Run("overwrite", func(t *testing.T) {
		srcDir, dstDir := t.TempDir(), t.TempDir()
		src := filepath.Join(srcDir, "a.txt")
		writeFile(t, src, 512)
		existing := filepath.Join(dstDir, "a.txt")
		require.NoError(t, os.WriteFile(existing, []byte("replace me"), 0o644))

		w := &worker{
			req:       Request{Sources: []string{src}, Dest: dstDir, Kind: Copy, Overwrite: PolicyOverwrite},
			bufferFor: smallBuffer,
			log:       logger.Nop(),
		}
		result := w.run(context.Background())
		require.Equal(t, StatusSuccess, result.Status)

		same, err := checksum.Equal(src, existing)
		require.NoError(t, err)
		assert.True(t, same)
	})

	t.Run("rename", func(t *testing.T) {
		srcDir, dstDir := t.TempDir(), t.TempDir()
		src := filepath.Join(srcDir, "a.txt")
		writeFile(t, src, 512)
		existing := filepath.Join(dstDir, "a.txt")
		require.NoError(t, os.WriteFile(existing, []byte("keep me"), 0o644))

		w := &worker{
			req:       Request{Sources: []string{src}, Dest: dstDir, Kind: Copy, Overwrite: PolicyRename},
			bufferFor: smallBuffer,
			log:       logger.Nop(),
		}
		result := w.run(context.Background())
		require.Equal(t, StatusSuccess, result.Status)

		data, err := os.ReadFile(existing)
		require.NoError(t, err)
		assert.Equal(t, "keep me", string(data))

		same, err := checksum.Equal(src, filepath.Join(dstDir, "a (2).txt"))
		require.NoError(t, err)
		assert.True(t, same)
	})
}

func TestMove_SameVolume(t *testing.T) {
	base := t.TempDir()
	srcDir := filepath.Join(base, "src")
	dstDir := filepath.Join(base, "dst")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	require.NoError(t, os.MkdirAll(dstDir, 0o755))

	src := filepath.Join(srcDir, "a.txt")
	writeFile(t, src, 4096)
	origSum, err := checksum.File(src)
	require.NoError(t, err)

	rec := &progressRecorder{}
	w := &worker{
		req:       Request{Sources: []string{src}, Dest: dstDir, Kind: Move},
		bufferFor: smallBuffer,
		progress:  rec.record,
		log:       logger.Nop(),
	}
	result := w.run(context.Background())
	require.Equal(t, StatusSuccess, result.Status)

	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err), "source should be gone after move")

	movedSum, err := checksum.File(filepath.Join(dstDir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, origSum, movedSum)

	snaps := rec.all()
	require.NotEmpty(t, snaps)
	assert.Equal(t, int64(4096), snaps[len(snaps)-1].BytesDone)
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "gone.txt")
	sub := filepath.Join(dir, "subdir")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	writeFile(t, file, 1024)
	writeFile(t, filepath.Join(sub, "inner.txt"), 1024)

	w := &worker{
		req:       Request{Sources: []string{file, sub}, Kind: Delete},
		bufferFor: smallBuffer,
		log:       logger.Nop(),
	}
	result := w.run(context.Background())
	require.Equal(t, StatusSuccess, result.Status)

	_, err := os.Stat(file)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(sub)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_IOErrorAbortsBatch(t *testing.T) {
	srcDir, dstDir := t.TempDir(), t.TempDir()

	good := filepath.Join(srcDir, "good.txt")
	writeFile(t, good, 1024)
	vanishing := filepath.Join(srcDir, "vanishing.txt")
	writeFile(t, vanishing, 1024)
	never := filepath.Join(srcDir, "never.txt")
	writeFile(t, never, 1024)

	// Remove the second source after the size pass would have seen it by
	// deleting it from inside the progress callback of the first file.
	w := &worker{
		req:       Request{Sources: []string{good, vanishing, never}, Dest: dstDir, Kind: Copy},
		bufferFor: smallBuffer,
		log:       logger.Nop(),
	}
	w.progress = func(p Progress) {
		if p.CurrentFile == good {
			_ = os.Remove(vanishing)
		}
	}

	result := w.run(context.Background())
	assert.Equal(t, StatusFailed, result.Status)
	require.Error(t, result.Err)

	// The file completed before the failure stays on disk
	_, err := os.Stat(filepath.Join(dstDir, "good.txt"))
	assert.NoError(t, err)
	// The file after the failure was never started
	_, err = os.Stat(filepath.Join(dstDir, "never.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestCopy_VerifyChecksums(t *testing.T) {
	srcDir, dstDir := t.TempDir(), t.TempDir()
	src := filepath.Join(srcDir, "a.bin")
	writeFile(t, src, 32*1024)

	w := &worker{
		req:       Request{Sources: []string{src}, Dest: dstDir, Kind: Copy, Verify: true},
		bufferFor: smallBuffer,
		log:       logger.Nop(),
	}
	result := w.run(context.Background())
	assert.Equal(t, StatusSuccess, result.Status)
}

func TestRenamedTarget(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644))
	assert.Equal(t, filepath.Join(dir, "a (2).txt"), renamedTarget(dir, "a.txt"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a (2).txt"), nil, 0o644))
	assert.Equal(t, filepath.Join(dir, "a (3).txt"), renamedTarget(dir, "a.txt"))

	assert.Equal(t, filepath.Join(dir, "noext (2)"), renamedTarget(dir, "noext"))
}
