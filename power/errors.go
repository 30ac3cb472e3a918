// SPDX-License-Identifier: EPL-2.0

package power

import "errors"

var (
	// ErrNoSampler indicates that the monitor has no voltage source.
	ErrNoSampler = errors.New("no battery sampler")

	// ErrAlreadyRunning indicates that the monitor was started twice.
	ErrAlreadyRunning = errors.New("monitor already running")
)
