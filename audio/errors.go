// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrInvalidDstSize indicates a ReadSamples buffer that cannot hold
	// whole frames.
	ErrInvalidDstSize = errors.New("dst length is not a multiple of the channel count")

	// ErrUnsupportedChannels indicates a channel layout the stage does
	// not handle.
	ErrUnsupportedChannels = errors.New("unsupported channel count")
)
