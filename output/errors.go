// SPDX-License-Identifier: EPL-2.0

package output

import "errors"

var (
	// ErrSinkClosed indicates that playback was requested on a closed sink.
	ErrSinkClosed = errors.New("sink is closed")

	// ErrNoSource indicates that playback was requested without a source.
	ErrNoSource = errors.New("no source to play")
)
