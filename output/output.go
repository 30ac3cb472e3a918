// SPDX-License-Identifier: EPL-2.0

package output

import (
	"github.com/audpod/audpod/audio"
)

// Sink plays an audio source.
type Sink interface {
	// Start begins playback of src. A sink plays one source at a time;
	// starting a new source replaces the current one.
	Start(src audio.Source) error

	// Pause suspends playback, keeping the source attached.
	Pause()

	// Resume continues playback after Pause.
	Resume()

	// Playing reports whether samples are currently being consumed.
	Playing() bool

	// SetVolume sets the playback volume. Values outside [0, 1] are
	// clamped.
	SetVolume(v float64)

	// Close stops playback and releases the sink. A closed sink cannot
	// be restarted.
	Close() error
}
