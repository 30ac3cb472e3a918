// SPDX-License-Identifier: EPL-2.0

package config

import "errors"

// ErrInvalidProfile indicates a profile value the player cannot run
// with. The wrapped message names the offending field.
var ErrInvalidProfile = errors.New("invalid profile")
