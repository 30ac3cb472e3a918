// SPDX-License-Identifier: EPL-2.0

package readbuf

import (
	"fmt"
	"io"
)

// StreamReader is an io.ReadSeeker view of a Buffer, the shape format
// decoders expect. Read drains the window and refills it as needed; Seek
// consumes forward within the buffered window when it can and falls back
// to a full Buffer.Seek otherwise.
//
// The reader shares the Buffer's single-goroutine ownership rule.
type StreamReader struct {
	b *Buffer
}

// Reader returns the io.ReadSeeker view of the buffer. All views share the
// underlying window; use one at a time.
func (b *Buffer) Reader() *StreamReader {
	return &StreamReader{b: b}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for r.b.Left() == 0 {
		if r.b.EOF() {
			return 0, io.EOF
		}
		if err := r.b.Fill(); err != nil {
			return 0, fmt.Errorf("%w", err)
		}
	}

	n := copy(p, r.b.Peek())
	if err := r.b.Shift(n); err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	return n, nil
}

func (r *StreamReader) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = r.b.Tell() + offset
	case io.SeekEnd:
		size, ok := r.b.size()
		if !ok {
			return 0, ErrUnknownSize
		}
		target = size + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if target < 0 {
		return 0, fmt.Errorf("negative position: %d", target)
	}

	// Forward seeks that land inside the buffered window are a plain
	// shift; everything else restarts the stream at the target.
	if d := target - r.b.Tell(); d >= 0 && d <= int64(r.b.Left()) {
		if d > 0 {
			if err := r.b.Shift(int(d)); err != nil {
				return 0, fmt.Errorf("%w", err)
			}
		}
		return target, nil
	}

	if err := r.b.Seek(target); err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	return target, nil
}
