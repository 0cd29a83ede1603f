// Package operation executes file copy/move/delete requests off the calling
// goroutine with chunked progress reporting and cooperative cancellation.
package operation

import "fmt"

// Kind identifies what an operation does to its sources
type Kind int

const (
	// Copy duplicates sources into the destination directory
	Copy Kind = iota
	// Move transfers sources into the destination directory
	Move
	// Delete removes sources
	Delete
)

// String implements fmt.Stringer
func (k Kind) String() string {
	switch k {
	case Copy:
		return "copy"
	case Move:
		return "move"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// OverwritePolicy decides what happens when a destination entry already exists
type OverwritePolicy int

const (
	// PolicySkip leaves the existing destination untouched and skips the source
	PolicySkip OverwritePolicy = iota
	// PolicyOverwrite replaces the existing destination
	PolicyOverwrite
	// PolicyRename writes the source under a "name (2).ext" style name
	PolicyRename
)

// String implements fmt.Stringer
func (p OverwritePolicy) String() string {
	switch p {
	case PolicySkip:
		return "skip"
	case PolicyOverwrite:
		return "overwrite"
	case PolicyRename:
		return "rename"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// Request describes one user-issued operation. It is immutable once
// dispatched; the worker never mutates it.
type Request struct {
	// Sources are processed strictly in this order
	Sources []string
	// Dest is the destination directory for Copy and Move
	Dest string
	// Kind selects copy, move or delete
	Kind Kind
	// Overwrite applies when a destination entry already exists
	Overwrite OverwritePolicy
	// UseTrash routes Delete through the platform recycle bin when possible
	UseTrash bool
	// Verify re-reads each copied file and compares checksums
	Verify bool
}

// Progress is a point-in-time snapshot of a running operation. BytesDone is
// monotonically non-decreasing over the life of the operation.
type Progress struct {
	BytesDone   int64
	BytesTotal  int64
	CurrentFile string
	Percent     float64
}

// Status is the terminal state of an operation
type Status int

const (
	// StatusSuccess means every source was processed
	StatusSuccess Status = iota
	// StatusCancelled means the caller cancelled mid-operation; partially
	// written output is left in place
	StatusCancelled
	// StatusFailed means an I/O error aborted the operation
	StatusFailed
)

// String implements fmt.Stringer
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is produced exactly once per dispatched operation
type Result struct {
	Status Status
	Err    error
}

// ProgressFunc receives progress snapshots from a worker. It is called on the
// worker goroutine and must not block for long.
type ProgressFunc func(Progress)
