// SPDX-License-Identifier: EPL-2.0

// Package readbuf keeps a contiguous, always-valid window of file bytes in
// front of a decoder while a background goroutine refills storage-backed
// chunks behind it.
//
// The design is the classic dual-core player split: one core decodes, the
// other reads the memory card, and the two meet over a fixed set of
// transfer slots. This package keeps that shape (fixed allocation, strict
// FIFO transfer, bounded read-ahead, cancellation by unbind) and renders
// it with goroutines and channels.
//
// # Pipeline
//
// A Buffer owns three pieces:
//
//   - the slot pool, a fixed arena the producer reads into, reused in
//     round-robin order;
//   - the transport, a set of channels moving slot references and bind
//     requests between the two sides;
//   - the window, one contiguous byte region the consumer reads from.
//
// Bind attaches an open storage.Handle and blocks until the read-ahead is
// primed, so the first decoder read never waits on the card. From then on
// the producer keeps reading ahead as far as the pool allows, and every
// Fill splices exactly one published slot into the window: unread bytes
// are compacted to the front, the new bytes appended, the tail zeroed.
//
//	buf, err := readbuf.New(readbuf.DefaultOptions())
//	if err != nil {
//	    // Handle error
//	}
//	defer buf.Close()
//
//	if err := buf.Bind(storage.NewMem(data)); err != nil {
//	    // Handle error
//	}
//	frame := buf.Peek()[:frameSize]
//	// decode frame ...
//	buf.Shift(frameSize)
//
// # Refill
//
// Shift consumes bytes from the window. Whenever the remainder drops below
// Options.FillThreshold, Shift tops the window up on its own; the caller
// never schedules refills explicitly. A threshold of zero turns this off
// for callers that want full control, at the cost of calling Fill
// themselves before the window runs dry.
//
// # Slot ownership
//
// The transfer queue's capacity equals the pool size, and the producer
// takes a vacancy token before reading into a slot. A token returns to the
// pool only after the consumer has copied that slot's bytes out of the
// arena. Because slots are filled in round-robin order and consumed in
// FIFO order, the producer can only reach a slot index again after the
// consumer is done with its previous contents; the pipeline needs no
// locks around the arena at all. Changing either capacity independently
// would break this; New asserts they match.
//
// # Seeking
//
// Seek is a protocol, not a pointer move: the consumer unbinds (the
// producer discards everything in flight and acknowledges), repositions
// the handle, rebinds and re-primes. The window afterwards holds bytes
// from the new position only. StreamReader layers io.ReadSeeker on top of
// this, turning forward in-window seeks into cheap shifts, so format
// decoders can walk container metadata without tearing the stream down.
//
// # Failure
//
// Soft failures (filling at end of stream, shifting more than is
// buffered, operating unbound) come back as sentinel errors and leave the
// window untouched. A storage failure is different: the producer halts
// for good, Err reports the cause, and every later operation fails with
// ErrProducerFailed. A halted pipeline stays down; after a failed card
// read the handle's position is no longer trustworthy.
package readbuf
