// SPDX-License-Identifier: EPL-2.0

package audpod

import "errors"

var (
	// ErrNoSink indicates the player was built without an output sink.
	ErrNoSink = errors.New("no output sink")

	// ErrNoTrack indicates a playback operation with nothing loaded.
	ErrNoTrack = errors.New("no track loaded")

	// ErrUnknownFormat indicates the file extension matches no
	// registered decoder.
	ErrUnknownFormat = errors.New("unknown audio format")

	// ErrSeekUnsupported indicates the loaded format cannot jump to an
	// arbitrary position. Only PCM streams address frames directly.
	ErrSeekUnsupported = errors.New("seeking is not supported for this format")

	// ErrPlayerClosed indicates use after Close.
	ErrPlayerClosed = errors.New("player is closed")
)
