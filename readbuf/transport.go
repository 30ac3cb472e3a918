// SPDX-License-Identifier: EPL-2.0

package readbuf

import (
	"github.com/google/uuid"

	"github.com/audpod/audpod/storage"
)

// bindRequest asks the producer to start streaming a handle (activate) or
// to stop and discard everything in flight (deactivate, the cancellation
// half of a seek). The token correlates the request with its ack.
type bindRequest struct {
	token    uuid.UUID
	handle   storage.Handle
	activate bool
}

// bindAck echoes the request token and carries the handle state the
// producer captured while adopting it, so the consumer can reset its
// window without touching the handle itself.
type bindAck struct {
	token uuid.UUID
	pos   int64
	eof   bool
}

// transport is the full channel set between the two sides.
//
//   - bindReq/bindAck are the single-entry request and response mailboxes.
//   - filled carries published slot references, capacity equal to the pool
//     size.
//   - vacant holds one token per pool slot; the producer takes a token
//     before reading into a slot and the consumer returns it only after
//     copying the slot's bytes out. Waiting on it is how the producer
//     blocks when the read-ahead is full.
//   - primed fires once per binding when the read-ahead first reaches full
//     capacity or publishes the final slot.
//   - fatal is closed when the producer halts on a storage failure;
//     shutdown is closed by Close.
type transport struct {
	bindReq  chan bindRequest
	bindAck  chan bindAck
	filled   chan slotRef
	vacant   chan struct{}
	primed   chan struct{}
	fatal    chan struct{}
	shutdown chan struct{}
}

func newTransport(slots int) *transport {
	tr := &transport{
		bindReq:  make(chan bindRequest, 1),
		bindAck:  make(chan bindAck, 1),
		filled:   make(chan slotRef, slots),
		vacant:   make(chan struct{}, slots),
		primed:   make(chan struct{}, 1),
		fatal:    make(chan struct{}),
		shutdown: make(chan struct{}),
	}
	for range slots {
		tr.vacant <- struct{}{}
	}

	return tr
}
