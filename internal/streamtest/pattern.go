// SPDX-License-Identifier: EPL-2.0

package streamtest

import (
	xxhash "github.com/cespare/xxhash/v2"
)

// Pattern returns n deterministic pseudo-random bytes. The generator is a
// fixed-seed xorshift, so fixtures are identical across runs and
// platforms and any corruption shows up as a digest mismatch.
func Pattern(n int) []byte {
	b := make([]byte, n)
	state := uint64(0x9e3779b97f4a7c15)
	for i := range b {
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		b[i] = byte(state)
	}

	return b
}

// Digest returns the 64-bit xxHash of b. Tests compare digests where
// printing whole buffers would drown the failure output.
func Digest(b []byte) uint64 {
	return xxhash.Sum64(b)
}
