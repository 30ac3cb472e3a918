// SPDX-License-Identifier: EPL-2.0

package readbuf

import "sync/atomic"

// counters are updated from both sides of the pipeline, so every field is
// atomic. Snapshot gives callers a consistent plain-value copy.
type counters struct {
	binds          atomic.Uint64
	seeks          atomic.Uint64
	fills          atomic.Uint64
	eagerFills     atomic.Uint64
	underruns      atomic.Uint64
	slotsPublished atomic.Uint64
	slotsDiscarded atomic.Uint64
	bytesPublished atomic.Uint64
}

// Stats is a point-in-time copy of the pipeline counters.
type Stats struct {
	// Binds counts successful stream activations, including the rebind
	// half of every seek.
	Binds uint64

	// Seeks counts completed Seek calls.
	Seeks uint64

	// Fills counts slots spliced into the window; EagerFills counts the
	// subset triggered automatically by Shift.
	Fills      uint64
	EagerFills uint64

	// Underruns counts fills that found the transfer queue empty and had
	// to wait for the producer.
	Underruns uint64

	// SlotsPublished and BytesPublished count the producer's output.
	// SlotsDiscarded counts published slots thrown away by unbinds.
	SlotsPublished uint64
	SlotsDiscarded uint64
	BytesPublished uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Binds:          c.binds.Load(),
		Seeks:          c.seeks.Load(),
		Fills:          c.fills.Load(),
		EagerFills:     c.eagerFills.Load(),
		Underruns:      c.underruns.Load(),
		SlotsPublished: c.slotsPublished.Load(),
		SlotsDiscarded: c.slotsDiscarded.Load(),
		BytesPublished: c.bytesPublished.Load(),
	}
}
