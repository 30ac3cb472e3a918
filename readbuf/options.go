// SPDX-License-Identifier: EPL-2.0

package readbuf

import (
	"fmt"
	"log/slog"
)

// Options fixes the geometry of a Buffer. All sizes are in bytes and are
// set once at construction; nothing here is runtime-mutable.
type Options struct {
	// BufferSize is the capacity of the contiguous window handed to the
	// consumer.
	BufferSize int

	// FillThreshold triggers an automatic refill whenever a shift leaves
	// fewer buffered bytes than this. Zero disables automatic refills
	// (every Fill is caller-driven); a value equal to BufferSize refills
	// on every shift, which works but compacts the window constantly.
	FillThreshold int

	// SlotSize is the capacity of one transfer slot, i.e. the unit the
	// background reader moves per storage read.
	SlotSize int

	// SlotCount is the number of slots in the pool. It also fixes the
	// transfer queue's capacity; the two being equal is what makes slot
	// reuse safe (see the package documentation).
	SlotCount int

	// Logger receives debug and failure events. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns a geometry tuned for streaming audio from slow
// media: an 8 KiB window refilled in 4 KiB slots from a pool of four, with
// the refill threshold at one slot.
func DefaultOptions() Options {
	return Options{
		BufferSize:    8192,
		FillThreshold: 4096,
		SlotSize:      4096,
		SlotCount:     4,
	}
}

// Validate checks the geometry. Beyond simple positivity it enforces the
// sustain rule: the pool must hold at least a full window's worth of bytes,
// otherwise the reader cannot keep the window topped up.
func (o Options) Validate() error {
	switch {
	case o.BufferSize <= 0:
		return fmt.Errorf("%w: buffer size %d", ErrInvalidOptions, o.BufferSize)
	case o.SlotSize <= 0:
		return fmt.Errorf("%w: slot size %d", ErrInvalidOptions, o.SlotSize)
	case o.SlotCount <= 0:
		return fmt.Errorf("%w: slot count %d", ErrInvalidOptions, o.SlotCount)
	case o.FillThreshold < 0 || o.FillThreshold > o.BufferSize:
		return fmt.Errorf("%w: fill threshold %d outside [0, %d]",
			ErrInvalidOptions, o.FillThreshold, o.BufferSize)
	case o.SlotSize > o.BufferSize:
		return fmt.Errorf("%w: slot size %d exceeds buffer size %d",
			ErrInvalidOptions, o.SlotSize, o.BufferSize)
	case o.SlotCount*o.SlotSize < o.BufferSize:
		return fmt.Errorf("%w: pool of %d x %d cannot sustain a %d byte window",
			ErrInvalidOptions, o.SlotCount, o.SlotSize, o.BufferSize)
	}

	return nil
}
