// SPDX-License-Identifier: EPL-2.0

package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// File adapts an *os.File to the Handle interface. The size is captured
// once at construction; files that grow or shrink while bound are not
// supported.
type File struct {
	f    *os.File
	off  int64
	size int64
}

// NewFile wraps an already-open file. The handle starts at the file's
// current offset; closing the file remains the caller's job.
func NewFile(f *os.File) (*File, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, f.Name())
	}
	off, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &File{f: f, off: off, size: info.Size()}, nil
}

func (h *File) Read(p []byte) (int, bool, error) {
	n, err := h.f.Read(p)
	h.off += int64(n)
	if errors.Is(err, io.EOF) {
		return n, true, nil
	}
	if err != nil {
		return n, h.off >= h.size, fmt.Errorf("%w", err)
	}

	return n, h.off >= h.size, nil
}

func (h *File) Seek(offset int64) error {
	if offset < 0 || offset > h.size {
		return fmt.Errorf("%w: offset %d, size %d", ErrSeekOutOfRange, offset, h.size)
	}
	if _, err := h.f.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}
	h.off = offset

	return nil
}

func (h *File) Tell() int64 { return h.off }

func (h *File) EOF() bool { return h.off >= h.size }

func (h *File) Size() int64 { return h.size }
