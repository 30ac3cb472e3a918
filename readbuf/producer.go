// SPDX-License-Identifier: EPL-2.0

package readbuf

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/audpod/audpod/storage"
)

// producer is the background half of the pipeline. It owns the bound
// handle, reads it one slot at a time and publishes the slots through the
// transport. All of its fields are confined to its goroutine; the single
// exception is fatalErr, which is written once before the fatal channel is
// closed and read only after that close is observed.
type producer struct {
	tr   *transport
	pool *pool
	log  *slog.Logger
	st   *counters

	handle     storage.Handle
	pos        int64
	eof        bool
	sentPrimed bool

	fatalErr error
}

func (p *producer) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		// Idle: nothing bound, wait for a request.
		select {
		case req := <-p.tr.bindReq:
			if !req.activate {
				// Stop-while-stopped. Drain anyway: a binding that ran
				// to EOF parks here with its leftovers still queued.
				p.drain()
				p.ack(req)
				continue
			}
			p.adopt(req)
			if p.eof {
				// The handle was already exhausted at bind time; there
				// is nothing to stream.
				continue
			}
			if !p.stream() {
				return
			}
		case <-p.tr.shutdown:
			return
		}
	}
}

// adopt resets producer state around a newly activated handle and acks
// with the captured position and EOF flag.
func (p *producer) adopt(req bindRequest) {
	p.handle = req.handle
	p.pos = p.handle.Tell()
	p.eof = p.handle.EOF()
	p.sentPrimed = false
	p.log.Debug("readbuf: stream bound", "pos", p.pos, "eof", p.eof)
	p.ack(req)
}

// stream publishes slots until the binding ends. It returns false when the
// goroutine must exit (shutdown or storage failure) and true when control
// should go back to the idle state.
func (p *producer) stream() bool {
	for {
		select {
		case req := <-p.tr.bindReq:
			if !req.activate {
				p.drain()
				p.ack(req)
				p.log.Debug("readbuf: stream unbound", "pos", p.pos)
				return true
			}
			// Activate while already streaming: acknowledged and
			// ignored, the current binding continues.
			p.ack(req)
		case <-p.tr.vacant:
			if !p.publish() {
				return false
			}
			if p.eof {
				// Nothing more to publish. Park in idle; the binding
				// stays live until the consumer unbinds.
				return true
			}
		case <-p.tr.shutdown:
			return false
		}
	}
}

// publish reads one chunk into the next round-robin slot and hands it to
// the consumer. The caller has already taken a vacancy token.
func (p *producer) publish() bool {
	idx := p.pool.nextSlot()
	n, atEOF, err := p.handle.Read(p.pool.slot(idx))
	if err != nil {
		p.fail(fmt.Errorf("reading slot at %d: %w", p.pos, err))
		return false
	}
	if n == 0 && !atEOF {
		p.fail(ErrShortRead)
		return false
	}

	p.pos += int64(n)
	p.eof = atEOF
	// Count before publishing so a consumer that just drained slot k
	// already sees k reflected in the stats.
	p.st.slotsPublished.Add(1)
	p.st.bytesPublished.Add(uint64(n))
	p.tr.filled <- slotRef{index: idx, length: n, pos: p.pos, eof: atEOF}

	if p.eof || len(p.tr.filled) == cap(p.tr.filled) {
		p.signalPrimed()
	}

	return true
}

// signalPrimed tells the consumer the read-ahead is as full as it will
// get. Exactly one signal is sent per binding, and the bind call consumes
// exactly one, so the non-blocking send never actually drops.
func (p *producer) signalPrimed() {
	if p.sentPrimed {
		return
	}
	p.sentPrimed = true
	select {
	case p.tr.primed <- struct{}{}:
	default:
	}
}

// drain discards every published-but-unconsumed slot and returns the
// vacancy tokens. The consumer is blocked waiting for our ack here, so no
// fill can race the drain.
func (p *producer) drain() {
	for {
		select {
		case <-p.tr.filled:
			p.tr.vacant <- struct{}{}
			p.st.slotsDiscarded.Add(1)
		default:
			return
		}
	}
}

func (p *producer) ack(req bindRequest) {
	p.tr.bindAck <- bindAck{token: req.token, pos: p.pos, eof: p.eof}
}

// fail records the cause and closes the fatal channel. The handle's state
// is unreliable after a failed read, so the producer halts instead of
// retrying; the pipeline is permanently down until the process restarts.
func (p *producer) fail(err error) {
	p.fatalErr = err
	p.log.Error("readbuf: producer halted", "err", err, "pos", p.pos)
	close(p.tr.fatal)
}
