package readbuf

import (
	"math/rand/v2"
	"time"

	"github.com/audpod/audpod/storage"
)

// jitterHandle delays every read by a small random amount to shake out
// scheduling assumptions between the two sides of the pipeline.
type jitterHandle struct {
	storage.Handle
	rng *rand.Rand
}

func newJitterHandle(data []byte, seed uint64) *jitterHandle {
	return &jitterHandle{
		Handle: storage.NewMem(data),
		rng:    rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
	}
}

func (h *jitterHandle) Read(p []byte) (int, bool, error) {
	time.Sleep(time.Duration(h.rng.IntN(150)) * time.Microsecond)
	return h.Handle.Read(p)
}

// failingHandle serves a fixed number of successful reads, then reports a
// permanent storage error.
type failingHandle struct {
	storage.Handle
	okReads int
	err     error
}

func (h *failingHandle) Read(p []byte) (int, bool, error) {
	if h.okReads == 0 {
		return 0, false, h.err
	}
	h.okReads--

	return h.Handle.Read(p)
}

// stallingHandle serves a fixed number of successful reads, then returns
// zero bytes without reporting end of file.
type stallingHandle struct {
	storage.Handle
	okReads int
}

func (h *stallingHandle) Read(p []byte) (int, bool, error) {
	if h.okReads == 0 {
		return 0, false, nil
	}
	h.okReads--
	n, _, err := h.Handle.Read(p)

	// Never admit EOF; the stall must come first.
	return n, false, err
}

// lateEOFHandle never flags EOF on a read that returns data; the flag
// only appears on the trailing zero-byte read, the way plain io.Reader
// adapters behave.
type lateEOFHandle struct {
	inner *storage.Mem
}

func (h *lateEOFHandle) Read(p []byte) (int, bool, error) {
	n, atEOF, err := h.inner.Read(p)
	if n > 0 {
		return n, false, err
	}

	return n, atEOF, err
}

func (h *lateEOFHandle) Seek(offset int64) error { return h.inner.Seek(offset) }
func (h *lateEOFHandle) Tell() int64             { return h.inner.Tell() }
func (h *lateEOFHandle) EOF() bool               { return false }

// opaqueHandle hides everything but the core interface, in particular the
// optional size method.
type opaqueHandle struct {
	storage.Handle
}
