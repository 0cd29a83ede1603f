// Package platform probes host capabilities that tune file transfers.
// Copy buffers scale with installed memory: small systems copy with small
// buffers, large-memory systems with larger ones, between 1MiB and 32MiB.
package platform

import (
	"math"
	"sync"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/jaytechpal/FileOrbit/internal/logger"
)

const (
	// MinBufferSize is the smallest copy buffer ever used
	MinBufferSize = 1 * 1024 * 1024
	// MaxBufferSize is the largest copy buffer ever used
	MaxBufferSize = 32 * 1024 * 1024

	gib = 1024 * 1024 * 1024
)

// Capabilities describes the host characteristics relevant to file transfers
type Capabilities struct {
	// TotalMemory is the installed physical memory in bytes
	TotalMemory uint64
	// Is64Bit reports whether the process runs with 64-bit pointers
	Is64Bit bool
}

var (
	probeOnce sync.Once
	probed    Capabilities
)

// Detect probes the host once and caches the result. A failed memory probe
// falls back to a conservative 4GiB assumption and logs a warning.
func Detect(log logger.Logger) Capabilities {
	probeOnce.Do(func() {
		probed = Capabilities{
			TotalMemory: 4 * gib,
			Is64Bit:     math.MaxUint == math.MaxUint64,
		}
		vm, err := mem.VirtualMemory()
		if err != nil {
			log.Warn("memory probe failed, assuming 4GiB", "error", err)
			return
		}
		probed.TotalMemory = vm.Total
	})
	return probed
}

// BufferSize returns the copy buffer size for a file of the given size.
// The table favors throughput on large-memory hosts while keeping small
// systems responsive.
func (c Capabilities) BufferSize(fileSize int64) int {
	if !c.Is64Bit {
		return MinBufferSize
	}

	const baseBuffer = 4 * 1024 * 1024

	switch {
	case c.TotalMemory >= 16*gib:
		switch {
		case fileSize > 10*gib:
			return MaxBufferSize
		case fileSize > gib:
			return 16 * 1024 * 1024
		default:
			return 8 * 1024 * 1024
		}
	case c.TotalMemory >= 8*gib:
		if fileSize > gib {
			return 8 * 1024 * 1024
		}
		return baseBuffer
	default:
		return baseBuffer / 2
	}
}
