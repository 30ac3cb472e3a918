// SPDX-License-Identifier: EPL-2.0

package storage

import "fmt"

// Mem is an in-memory Handle over a byte slice. Useful for tests and for
// playing embedded assets without touching a filesystem.
type Mem struct {
	data []byte
	off  int64
}

// NewMem wraps data; the handle starts at offset zero. The slice is not
// copied, the caller must not mutate it while the handle is in use.
func NewMem(data []byte) *Mem {
	return &Mem{data: data}
}

func (h *Mem) Read(p []byte) (int, bool, error) {
	if h.off >= int64(len(h.data)) {
		return 0, true, nil
	}
	n := copy(p, h.data[h.off:])
	h.off += int64(n)

	return n, h.EOF(), nil
}

func (h *Mem) Seek(offset int64) error {
	if offset < 0 || offset > int64(len(h.data)) {
		return fmt.Errorf("%w: offset %d, size %d", ErrSeekOutOfRange, offset, len(h.data))
	}
	h.off = offset

	return nil
}

func (h *Mem) Tell() int64 { return h.off }

func (h *Mem) EOF() bool { return h.off >= int64(len(h.data)) }

func (h *Mem) Size() int64 { return int64(len(h.data)) }
