package operation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jaytechpal/FileOrbit/internal/logger"
	"github.com/jaytechpal/FileOrbit/internal/platform"
)

// Precondition errors returned by Dispatch before any worker starts.
var (
	ErrNoSources        = errors.New("operation has no sources")
	ErrUnknownID        = errors.New("unknown operation id")
	ErrSourceMissing    = errors.New("source does not exist")
	ErrDestNotDir       = errors.New("destination is not a directory")
	ErrDestNotWritable  = errors.New("destination is not writable")
	ErrDestInsideSource = errors.New("destination is inside a source directory")
)

// Service dispatches operations, one goroutine per request, and tracks them
// by ID. There is no pool and no queue: every dispatched operation runs
// immediately and independently.
type Service struct {
	caps           platform.Capabilities
	bufferOverride int
	log            logger.Logger

	mu  sync.Mutex
	ops map[string]*activeOp
}

type activeOp struct {
	cancel context.CancelFunc
	done   chan struct{}
	result Result
}

// Option configures a Service
type Option func(*Service)

// WithBufferSize pins the copy buffer to a fixed size instead of the
// adaptive table. Used for the copy_buffer_size config override.
func WithBufferSize(n int) Option {
	return func(s *Service) {
		s.bufferOverride = n
	}
}

// NewService creates an operation service using the host capabilities for
// buffer sizing.
func NewService(log logger.Logger, caps platform.Capabilities, opts ...Option) *Service {
	s := &Service{
		caps: caps,
		log:  log.WithGroup("operation"),
		ops:  make(map[string]*activeOp),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) bufferFor(fileSize int64) int {
	if s.bufferOverride > 0 {
		return s.bufferOverride
	}
	return s.caps.BufferSize(fileSize)
}

// Dispatch validates req and starts a worker goroutine for it. Precondition
// violations are returned synchronously and no operation is recorded. The
// returned ID identifies the operation for Cancel and Wait. onProgress may be
// nil.
func (s *Service) Dispatch(ctx context.Context, req Request, onProgress ProgressFunc) (string, error) {
	if err := validate(req); err != nil {
		return "", err
	}

	id := uuid.New().String()
	opCtx, cancel := context.WithCancel(ctx)
	op := &activeOp{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	s.ops[id] = op
	s.mu.Unlock()

	w := &worker{
		req:       req,
		bufferFor: s.bufferFor,
		progress:  onProgress,
		log:       s.log.With("operation_id", id),
	}

	s.log.Info("operation dispatched", "operation_id", id, "kind", req.Kind.String(), "sources", len(req.Sources))

	go func() {
		defer cancel()
		result := w.run(opCtx)
		switch result.Status {
		case StatusFailed:
			s.log.Error("operation failed", "operation_id", id, "error", result.Err)
		case StatusCancelled:
			s.log.Info("operation cancelled", "operation_id", id)
		default:
			s.log.Info("operation completed", "operation_id", id)
		}

		s.mu.Lock()
		op.result = result
		s.mu.Unlock()
		close(op.done)
	}()

	return id, nil
}

// Cancel requests cooperative cancellation of a running operation. It returns
// false when the ID is unknown. Cancellation of an already-finished operation
// is a no-op.
func (s *Service) Cancel(id string) bool {
	s.mu.Lock()
	op, ok := s.ops[id]
	s.mu.Unlock()
	if !ok {
		return false
	}
	op.cancel()
	return true
}

// Wait blocks until the operation finishes and returns its result. The
// operation record is released afterwards.
func (s *Service) Wait(id string) (Result, error) {
	s.mu.Lock()
	op, ok := s.ops[id]
	s.mu.Unlock()
	if !ok {
		return Result{}, ErrUnknownID
	}

	<-op.done

	s.mu.Lock()
	result := op.result
	delete(s.ops, id)
	s.mu.Unlock()
	return result, nil
}

// Active returns the IDs of operations that have not been waited on yet.
func (s *Service) Active() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.ops))
	for id := range s.ops {
		ids = append(ids, id)
	}
	return ids
}

// CancelAll requests cancellation of every tracked operation.
func (s *Service) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, op := range s.ops {
		op.cancel()
	}
}

// validate checks the request preconditions: sources must exist and be
// readable, and Copy/Move destinations must be writable directories.
func validate(req Request) error {
	if len(req.Sources) == 0 {
		return ErrNoSources
	}

	for _, src := range req.Sources {
		info, err := os.Stat(src)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: %s", ErrSourceMissing, src)
			}
			return fmt.Errorf("failed to stat %s: %w", src, err)
		}
		if !info.IsDir() {
			f, err := os.Open(src)
			if err != nil {
				return fmt.Errorf("source %s is not readable: %w", src, err)
			}
			_ = f.Close()
		}
	}

	if req.Kind == Copy || req.Kind == Move {
		info, err := os.Stat(req.Dest)
		if err != nil {
			return fmt.Errorf("destination %s: %w", req.Dest, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrDestNotDir, req.Dest)
		}
		probe, err := os.CreateTemp(req.Dest, ".fileorbit-probe-*")
		if err != nil {
			return fmt.Errorf("%w: %s", ErrDestNotWritable, req.Dest)
		}
		_ = probe.Close()
		_ = os.Remove(probe.Name())

		// A directory copied into itself or into its own subtree would
		// recurse into the copy it is producing.
		for _, src := range req.Sources {
			inside, err := destWithin(src, req.Dest)
			if err != nil {
				return err
			}
			if inside {
				return fmt.Errorf("%w: %s -> %s", ErrDestInsideSource, src, req.Dest)
			}
		}
	}

	return nil
}

// destWithin reports whether dest equals src or lies anywhere under it,
// resolving both paths first so relative notation and symlinks cannot mask
// the overlap.
func destWithin(src, dest string) (bool, error) {
	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return false, err
	}
	destAbs, err := filepath.Abs(dest)
	if err != nil {
		return false, err
	}
	if resolved, err := filepath.EvalSymlinks(srcAbs); err == nil {
		srcAbs = resolved
	}
	if resolved, err := filepath.EvalSymlinks(destAbs); err == nil {
		destAbs = resolved
	}

	rel, err := filepath.Rel(srcAbs, destAbs)
	if err != nil {
		return false, nil
	}
	if rel == "." {
		return true, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}
