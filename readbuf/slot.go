// SPDX-License-Identifier: EPL-2.0

package readbuf

// slotRef describes one published chunk: which pool slot holds the bytes,
// how many of them are valid, the absolute file offset just past them, and
// whether the file ended there. The bytes themselves stay in the pool; a
// slotRef is what travels through the transfer queue.
type slotRef struct {
	index  int
	length int
	pos    int64
	eof    bool
}

// pool is the fixed arena the producer reads into, carved into SlotCount
// regions of SlotSize bytes each. Slots are written in round-robin order;
// the transport's token channel guarantees a slot is never rewritten
// before the consumer has copied the previous contents out.
type pool struct {
	arena []byte
	size  int
	count int
	next  int
}

func newPool(count, size int) *pool {
	return &pool{
		arena: make([]byte, count*size),
		size:  size,
		count: count,
	}
}

// slot returns the backing bytes of slot i at full capacity. The slice is
// capped so a stray append cannot spill into the neighbouring slot.
func (p *pool) slot(i int) []byte {
	return p.arena[i*p.size : (i+1)*p.size : (i+1)*p.size]
}

// nextSlot returns the index to fill next and advances the round-robin
// cursor, wrapping at the pool size.
func (p *pool) nextSlot() int {
	i := p.next
	p.next = (p.next + 1) % p.count

	return i
}
