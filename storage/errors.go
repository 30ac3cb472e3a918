// SPDX-License-Identifier: EPL-2.0

package storage

import "errors"

var (
	// ErrSeekOutOfRange indicates a seek to a negative offset or past the
	// end of the file.
	ErrSeekOutOfRange = errors.New("seek offset out of range")

	// ErrNotRegularFile indicates an attempt to wrap something that cannot
	// be streamed, such as a directory.
	ErrNotRegularFile = errors.New("not a regular file")
)
