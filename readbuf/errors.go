// SPDX-License-Identifier: EPL-2.0

package readbuf

import "errors"

var (
	// ErrInvalidOptions indicates a rejected Options value; the wrapped
	// message names the offending field.
	ErrInvalidOptions = errors.New("invalid buffer options")

	// ErrNotBound indicates an operation that needs an active stream was
	// called without one.
	ErrNotBound = errors.New("no stream bound")

	// ErrEndOfStream indicates the bound file is exhausted and no further
	// slots will arrive for this binding.
	ErrEndOfStream = errors.New("end of stream")

	// ErrWindowFull indicates the window cannot take a whole slot; shift
	// some bytes out first.
	ErrWindowFull = errors.New("window cannot take a full slot")

	// ErrShiftBeyondWindow indicates a shift past the buffered bytes. The
	// window is left untouched.
	ErrShiftBeyondWindow = errors.New("shift beyond buffered bytes")

	// ErrRequestPending indicates a bind or unbind request was issued
	// while another one was still outstanding.
	ErrRequestPending = errors.New("bind request already outstanding")

	// ErrProducerFailed indicates the background reader halted on a
	// storage failure. The pipeline is unusable afterwards; Err reports
	// the cause.
	ErrProducerFailed = errors.New("producer halted")

	// ErrClosed indicates the buffer was closed.
	ErrClosed = errors.New("buffer closed")

	// ErrShortRead is the recorded cause when storage returns zero bytes
	// without reporting end of file.
	ErrShortRead = errors.New("storage returned no bytes before end of file")

	// ErrUnknownSize indicates an end-relative seek on a handle that does
	// not know its total size.
	ErrUnknownSize = errors.New("stream size unknown")
)
