package wav

import "errors"

var (
	// ErrNotWavFile indicates that the input has no RIFF/WAVE container.
	ErrNotWavFile = errors.New("no RIFF/WAVE container")

	// ErrUnsupportedWavLayout indicates a fmt chunk the decoder cannot
	// work with.
	ErrUnsupportedWavLayout = errors.New("unusable WAV fmt chunk")

	// ErrOnlyPCM16bitSupported indicates a sample depth the decoder
	// does not read.
	ErrOnlyPCM16bitSupported = errors.New("WAV decode supports 16-bit PCM only")

	// ErrNotSeekable indicates that SeekFrame was asked of a stream
	// whose reader cannot reposition.
	ErrNotSeekable = errors.New("stream is not seekable")
)
