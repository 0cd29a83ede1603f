package operation

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jaytechpal/FileOrbit/internal/checksum"
	"github.com/jaytechpal/FileOrbit/internal/logger"
	"github.com/jaytechpal/FileOrbit/internal/trash"
)

// worker executes exactly one Request. Sources are processed strictly in
// request order; the first I/O error aborts the whole operation and
// already-completed entries stay on disk.
type worker struct {
	req       Request
	bufferFor func(fileSize int64) int
	progress  ProgressFunc
	log       logger.Logger

	bytesDone  int64
	bytesTotal int64
}

func (w *worker) run(ctx context.Context) Result {
	total, err := totalSize(w.req)
	if err != nil {
		return Result{Status: StatusFailed, Err: err}
	}
	w.bytesTotal = total

	for _, src := range w.req.Sources {
		if err := ctx.Err(); err != nil {
			return Result{Status: StatusCancelled}
		}

		var opErr error
		switch w.req.Kind {
		case Copy:
			opErr = w.copyEntry(ctx, src)
		case Move:
			opErr = w.moveEntry(ctx, src)
		case Delete:
			opErr = w.deleteEntry(ctx, src)
		default:
			opErr = fmt.Errorf("unknown operation kind %d", w.req.Kind)
		}

		if opErr != nil {
			if ctx.Err() != nil {
				return Result{Status: StatusCancelled}
			}
			return Result{Status: StatusFailed, Err: opErr}
		}
	}

	if ctx.Err() != nil {
		return Result{Status: StatusCancelled}
	}
	return Result{Status: StatusSuccess}
}

// copyEntry copies one source path (file or directory tree) into Dest.
func (w *worker) copyEntry(ctx context.Context, src string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	target, skip, err := w.resolveTarget(w.req.Dest, filepath.Base(src))
	if err != nil {
		return err
	}
	if skip {
		w.advance(entrySize(src, info), src)
		return nil
	}

	if info.IsDir() {
		return w.copyTree(ctx, src, target)
	}
	return w.copyFile(ctx, src, target, info.Size())
}

// copyTree mirrors a directory recursively, applying the overwrite policy at
// the root only; nested collisions follow the already-resolved root target.
func (w *worker) copyTree(ctx context.Context, srcRoot, dstRoot string) error {
	return filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}

		rel, err := filepath.Rel(srcRoot, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dstRoot, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return w.copyFile(ctx, path, target, info.Size())
	})
}

// copyFile streams one file in buffer-sized chunks, emitting a progress
// update after every chunk and honoring cancellation between chunks. On
// cancellation the partially written target is left in place.
func (w *worker) copyFile(ctx context.Context, src, dst string, size int64) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	buf := make([]byte, w.bufferFor(size))
	w.emit(src)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, rerr := in.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return fmt.Errorf("failed to write %s: %w", dst, werr)
			}
			w.bytesDone += int64(n)
			w.emit(src)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("failed to read %s: %w", src, rerr)
		}
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}

	if w.req.Verify {
		same, err := checksum.Equal(src, dst)
		if err != nil {
			return fmt.Errorf("failed to verify %s: %w", dst, err)
		}
		if !same {
			return fmt.Errorf("checksum mismatch copying %s to %s", src, dst)
		}
	}
	return nil
}

// moveEntry renames when the destination is on the same volume; otherwise it
// copies and removes the source only after the copy succeeded.
func (w *worker) moveEntry(ctx context.Context, src string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	size := entrySize(src, info)

	target, skip, err := w.resolveTarget(w.req.Dest, filepath.Base(src))
	if err != nil {
		return err
	}
	if skip {
		w.advance(size, src)
		return nil
	}

	w.emit(src)
	if err := os.Rename(src, target); err == nil {
		// Whole entry accounted at once on the same-volume fast path
		w.advance(size, src)
		return nil
	}

	// Cross-volume fallback
	if info.IsDir() {
		if err := w.copyTree(ctx, src, target); err != nil {
			return err
		}
	} else {
		if err := w.copyFile(ctx, src, target, info.Size()); err != nil {
			return err
		}
	}
	if err := os.RemoveAll(src); err != nil {
		return fmt.Errorf("failed to remove %s after move: %w", src, err)
	}
	return nil
}

// deleteEntry removes one source, via the recycle bin when requested. A trash
// failure falls back to permanent deletion.
func (w *worker) deleteEntry(ctx context.Context, src string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	size := entrySize(src, info)

	w.emit(src)
	if w.req.UseTrash {
		if terr := trash.Put(src); terr == nil {
			w.advance(size, src)
			return nil
		} else {
			w.log.Warn("trash failed, deleting permanently", "path", src, "error", terr)
		}
	}

	if err := os.RemoveAll(src); err != nil {
		return fmt.Errorf("failed to delete %s: %w", src, err)
	}
	w.advance(size, src)
	return nil
}

// resolveTarget applies the overwrite policy for a destination entry.
func (w *worker) resolveTarget(destDir, base string) (target string, skip bool, err error) {
	target = filepath.Join(destDir, base)
	if _, serr := os.Lstat(target); serr != nil {
		if os.IsNotExist(serr) {
			return target, false, nil
		}
		return "", false, fmt.Errorf("failed to stat %s: %w", target, serr)
	}

	switch w.req.Overwrite {
	case PolicySkip:
		return "", true, nil
	case PolicyOverwrite:
		return target, false, nil
	case PolicyRename:
		return renamedTarget(destDir, base), false, nil
	default:
		return "", false, fmt.Errorf("unknown overwrite policy %d", w.req.Overwrite)
	}
}

// advance moves progress forward by the full size of an entry that was
// handled without streaming (skipped, renamed in place, or deleted).
func (w *worker) advance(size int64, current string) {
	w.bytesDone += size
	w.emit(current)
}

// entrySize resolves the byte size of a path before it is touched.
func entrySize(src string, info os.FileInfo) int64 {
	if !info.IsDir() {
		return info.Size()
	}
	if s, err := treeSize(src); err == nil {
		return s
	}
	return info.Size()
}

func (w *worker) emit(current string) {
	if w.progress == nil {
		return
	}
	p := Progress{
		BytesDone:   w.bytesDone,
		BytesTotal:  w.bytesTotal,
		CurrentFile: current,
	}
	if w.bytesTotal > 0 {
		p.Percent = float64(w.bytesDone) / float64(w.bytesTotal) * 100
	} else {
		p.Percent = 100
	}
	w.progress(p)
}

// renamedTarget finds the first free "name (2).ext" style path in destDir.
func renamedTarget(destDir, base string) string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for i := 2; ; i++ {
		candidate := filepath.Join(destDir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// totalSize sums the byte sizes of every source up front so progress can be
// reported against a fixed total.
func totalSize(req Request) (int64, error) {
	var total int64
	for _, src := range req.Sources {
		info, err := os.Stat(src)
		if err != nil {
			return 0, fmt.Errorf("failed to stat %s: %w", src, err)
		}
		if info.IsDir() {
			s, err := treeSize(src)
			if err != nil {
				return 0, err
			}
			total += s
		} else {
			total += info.Size()
		}
	}
	return total, nil
}

func treeSize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}
