// SPDX-License-Identifier: EPL-2.0

package storage

// Handle is a narrow view of an already-open file: the streaming pipeline
// reads and repositions it, while opening and closing the underlying
// resource stays with the caller.
//
// Read fills p with up to len(p) bytes from the current offset and reports
// whether the offset sits at the end of the file afterwards. Seek moves to
// an absolute offset. Tell reports the current absolute offset.
//
// A Handle is not safe for concurrent use. While bound to a pipeline the
// producing side owns it exclusively; callers may touch it again only
// between an unbind and the next bind (the window a seek runs in).
type Handle interface {
	Read(p []byte) (n int, atEOF bool, err error)
	Seek(offset int64) error
	Tell() int64
	EOF() bool
}

// Sizer is implemented by handles that know their total length up front.
// It is optional; end-relative seeks through a stream reader require it.
type Sizer interface {
	Size() int64
}
