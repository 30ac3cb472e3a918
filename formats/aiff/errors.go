package aiff

import "errors"

var (
	// ErrNotAiffFile indicates that the input has no FORM/AIFF container.
	ErrNotAiffFile = errors.New("no FORM/AIFF container")

	// ErrOnlyPCM16bitSupported indicates a sample depth the decoder
	// does not read.
	ErrOnlyPCM16bitSupported = errors.New("AIFF decode supports 16-bit PCM only")

	// ErrUnsupportedAiffLayout indicates a header go-audio could not
	// make sense of.
	ErrUnsupportedAiffLayout = errors.New("unreadable AIFF header")
)
