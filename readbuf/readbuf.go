// SPDX-License-Identifier: EPL-2.0

package readbuf

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/audpod/audpod/storage"
)

// Buffer is the consumer side of the pipeline: a contiguous window of
// file bytes kept topped up by a background reader. Construct one with
// New, attach a file with Bind, then consume through Peek and Shift (or
// through the io.ReadSeeker view returned by Reader).
//
// A Buffer is owned by a single consuming goroutine. Close may be called
// from anywhere, everything else must not be called concurrently.
type Buffer struct {
	opts Options
	tr   *transport
	pool *pool
	prod *producer
	log  *slog.Logger
	st   counters

	win   []byte
	start int
	left  int
	eof   bool
	pos   int64

	handle storage.Handle
	bound  bool

	pending atomic.Bool
	closed  atomic.Bool
	once    sync.Once
	wg      sync.WaitGroup
}

// New validates the geometry, allocates the window and the slot pool, and
// starts the background reader. The returned Buffer holds no stream until
// Bind is called.
func New(opts Options) (*Buffer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	p := newPool(opts.SlotCount, opts.SlotSize)
	tr := newTransport(opts.SlotCount)
	// Round-robin slot reuse relies on the transfer queue holding exactly
	// one entry per pool slot.
	if cap(tr.filled) != p.count {
		panic("readbuf: transfer queue capacity must equal slot count")
	}

	b := &Buffer{
		opts: opts,
		tr:   tr,
		pool: p,
		log:  log,
		win:  make([]byte, opts.BufferSize),
	}
	b.prod = &producer{tr: tr, pool: p, log: log, st: &b.st}
	b.wg.Add(1)
	go b.prod.run(&b.wg)

	return b, nil
}

// Bind attaches an open handle and starts streaming from its current
// offset. It returns once the read-ahead is primed and the window holds at
// least one slot's worth of bytes, unless the handle is already at EOF.
// Binding over an active stream first cancels it, discarding anything
// still in flight.
func (b *Buffer) Bind(h storage.Handle) error {
	if b.closed.Load() {
		return ErrClosed
	}
	if b.bound {
		if err := b.deactivate(); err != nil {
			return err
		}
	}

	return b.activate(h)
}

// Fill splices exactly one published slot into the window: unread bytes
// are compacted to the front, the slot's bytes appended after them, and
// the remaining capacity zeroed. It blocks until a slot is available.
//
// Soft failures: ErrEndOfStream once the binding is exhausted, ErrNotBound
// without an active stream, ErrWindowFull when less than one slot of
// capacity is free.
func (b *Buffer) Fill() error {
	if b.closed.Load() {
		return ErrClosed
	}
	if b.eof {
		return ErrEndOfStream
	}
	if !b.bound {
		return ErrNotBound
	}
	// Room for a whole slot is required even if the arriving slot turns
	// out shorter: the length is unknown until it is dequeued, and a
	// dequeued slot cannot be pushed back.
	if b.opts.BufferSize-b.left < b.opts.SlotSize {
		return ErrWindowFull
	}

	var ref slotRef
	select {
	case ref = <-b.tr.filled:
	default:
		// The read-ahead fell behind. Prefer real data over the failure
		// signal: the producer may have published slots before halting.
		b.st.underruns.Add(1)
		select {
		case ref = <-b.tr.filled:
		case <-b.tr.fatal:
			return b.failure()
		case <-b.tr.shutdown:
			return ErrClosed
		}
	}

	copy(b.win, b.win[b.start:b.start+b.left])
	b.start = 0
	copy(b.win[b.left:], b.pool.slot(ref.index)[:ref.length])
	// Copy done, the slot may be rewritten now.
	b.tr.vacant <- struct{}{}

	b.left += ref.length
	b.pos = ref.pos
	b.eof = ref.eof
	clear(b.win[b.left:])
	b.st.fills.Add(1)

	return nil
}

// Shift consumes n buffered bytes. When the remainder drops below the fill
// threshold and the stream is not exhausted, it tops the window up again
// before returning; errors from that eager refill are not surfaced, the
// shift itself has already succeeded.
func (b *Buffer) Shift(n int) error {
	if n < 0 || n > b.left {
		return ErrShiftBeyondWindow
	}
	b.start += n
	b.left -= n

	if b.left < b.opts.FillThreshold && !b.eof {
		if err := b.Fill(); err != nil {
			b.log.Debug("readbuf: eager refill skipped", "err", err)
		} else {
			b.st.eagerFills.Add(1)
		}
	}

	return nil
}

// ShiftAll consumes every buffered byte.
func (b *Buffer) ShiftAll() error {
	return b.Shift(b.left)
}

// Left reports how many unread bytes the window holds.
func (b *Buffer) Left() int { return b.left }

// Tell reports the file offset of the next byte the consumer will read.
func (b *Buffer) Tell() int64 { return b.pos - int64(b.left) }

// EOF reports whether the final slot of the binding has been spliced in.
// Bytes may still be buffered; the stream is fully drained only when EOF
// is true and Left is zero.
func (b *Buffer) EOF() bool { return b.eof }

// Peek returns the unread bytes as a read-only view into the window. The
// slice is valid only until the next Fill or Shift.
func (b *Buffer) Peek() []byte { return b.win[b.start : b.start+b.left] }

// Seek cancels the stream, repositions the handle to the absolute offset
// filePos and rebinds, repriming exactly as Bind does. Afterwards the
// window reflects bytes starting at filePos, never stale pre-seek bytes.
// If repositioning the handle fails the stream is left unbound; Bind again
// to recover.
func (b *Buffer) Seek(filePos int64) error {
	if b.closed.Load() {
		return ErrClosed
	}
	if !b.bound {
		return ErrNotBound
	}
	if err := b.deactivate(); err != nil {
		return err
	}
	if err := b.handle.Seek(filePos); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := b.activate(b.handle); err != nil {
		return err
	}
	b.st.seeks.Add(1)

	return nil
}

// Err reports the storage failure that halted the background reader, or
// nil while it is still running.
func (b *Buffer) Err() error {
	select {
	case <-b.tr.fatal:
		return b.prod.fatalErr
	default:
		return nil
	}
}

// Stats returns a snapshot of the pipeline counters.
func (b *Buffer) Stats() Stats { return b.st.snapshot() }

// Close stops the background reader and waits for it to exit. It is
// idempotent and safe to call from any goroutine; all other operations
// fail with ErrClosed afterwards.
func (b *Buffer) Close() error {
	b.once.Do(func() {
		b.closed.Store(true)
		close(b.tr.shutdown)
		b.wg.Wait()
	})

	return nil
}

// activate sends the start request, resets the window from the ack and
// waits for the read-ahead to prime, finishing with one fill so the
// window is immediately usable.
func (b *Buffer) activate(h storage.Handle) error {
	ack, err := b.request(h, true)
	if err != nil {
		return err
	}

	b.handle = h
	b.bound = true
	b.start, b.left = 0, 0
	b.pos, b.eof = ack.pos, ack.eof
	b.st.binds.Add(1)

	if ack.eof {
		// Empty or fully consumed handle: nothing will be published.
		return nil
	}

	select {
	case <-b.tr.primed:
	case <-b.tr.fatal:
		return b.failure()
	case <-b.tr.shutdown:
		return ErrClosed
	}

	return b.Fill()
}

// deactivate cancels the current binding; the producer drains anything in
// flight before acknowledging.
func (b *Buffer) deactivate() error {
	if _, err := b.request(b.handle, false); err != nil {
		return err
	}
	b.bound = false

	return nil
}

// request performs one mailbox round-trip. Exactly one request may be
// outstanding; a second concurrent attempt fails with ErrRequestPending.
func (b *Buffer) request(h storage.Handle, activate bool) (bindAck, error) {
	if !b.pending.CompareAndSwap(false, true) {
		return bindAck{}, ErrRequestPending
	}
	defer b.pending.Store(false)

	req := bindRequest{token: uuid.New(), handle: h, activate: activate}
	select {
	case b.tr.bindReq <- req:
	case <-b.tr.fatal:
		return bindAck{}, b.failure()
	case <-b.tr.shutdown:
		return bindAck{}, ErrClosed
	}

	select {
	case ack := <-b.tr.bindAck:
		if ack.token != req.token {
			return bindAck{}, fmt.Errorf("readbuf: stale ack for request %s", req.token)
		}
		return ack, nil
	case <-b.tr.fatal:
		return bindAck{}, b.failure()
	case <-b.tr.shutdown:
		return bindAck{}, ErrClosed
	}
}

func (b *Buffer) failure() error {
	if err := b.prod.fatalErr; err != nil {
		return fmt.Errorf("%w: %v", ErrProducerFailed, err)
	}

	return ErrProducerFailed
}

// size reports the bound handle's total size when it is known.
func (b *Buffer) size() (int64, bool) {
	if !b.bound {
		return 0, false
	}
	s, ok := b.handle.(storage.Sizer)
	if !ok {
		return 0, false
	}

	return s.Size(), true
}
