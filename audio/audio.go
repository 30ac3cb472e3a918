// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

// Source is the pull stream the player is assembled from: decoders
// produce one, processing stages wrap one, the output sink drains one.
type Source interface {
	// SampleRate reports the stream rate in Hz.
	SampleRate() int

	// Channels reports how many interleaved channels each frame holds.
	Channels() int

	// ReadSamples fills dst with interleaved float32 values in [-1, 1]
	// and reports how many it wrote. Counts are values, not frames. A
	// zero count together with io.EOF ends the stream.
	ReadSamples(dst []float32) (n int, err error)

	// BufSize is the read size the source works best with, in values.
	BufSize() int

	// Close releases whatever the source holds open.
	Close() error
}

// Decoder turns an encoded stream into a Source. Decode takes a
// ReadSeeker because container probing and duration queries rewind the
// input before samples flow.
type Decoder interface {
	Decode(r io.ReadSeeker) (Source, error)
}

// Registry maps format keys, usually file extensions, to decoders.
// Safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	byFormat map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{byFormat: make(map[string]Decoder)}
}

// Register binds a decoder to a format key. Registering the same key
// again replaces the earlier decoder.
func (r *Registry) Register(format string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byFormat[format] = d
}

// Get looks up the decoder bound to a format key.
func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byFormat[format]
	return d, ok
}
