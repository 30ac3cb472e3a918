// SPDX-License-Identifier: EPL-2.0

package streamtest

import (
	"io"
	"math"
)

// MockSource feeds deterministic samples to whatever consumes an
// audio.Source. It satisfies the interface without importing the audio
// package, so every package in the tree can use it freely.
type MockSource struct {
	rate     int
	channels int
	total    int // frames this source will produce
	pos      int // frames produced so far
	gen      func(frame, channel int) float32
}

// NewMockSource returns a source that produces total frames, asking gen
// for the value at each frame and channel.
func NewMockSource(rate, channels, total int, gen func(frame, channel int) float32) *MockSource {
	return &MockSource{
		rate:     rate,
		channels: channels,
		total:    total,
		gen:      gen,
	}
}

// NewSilentSource generates silence.
func NewSilentSource(rate, channels, total int) *MockSource {
	return NewMockSource(rate, channels, total, func(int, int) float32 { return 0 })
}

// NewSineSource generates a sine wave at the given frequency, the same
// wave on every channel.
func NewSineSource(rate, channels, total int, frequency float64) *MockSource {
	return NewMockSource(rate, channels, total, func(frame, _ int) float32 {
		t := float64(frame) / float64(rate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource generates a fixed value, handy for checking gain
// staging arithmetic.
func NewConstantSource(rate, channels, total int, value float32) *MockSource {
	return NewMockSource(rate, channels, total, func(int, int) float32 { return value })
}

// NewRampSource generates a linear ramp from 0 toward 1, one step per
// frame. Useful when a test needs to locate a specific sample.
func NewRampSource(rate, channels, total int) *MockSource {
	return NewMockSource(rate, channels, total, func(frame, _ int) float32 {
		return float32(frame) / float32(total)
	})
}

func (m *MockSource) SampleRate() int { return m.rate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds the source so it can be read again.
func (m *MockSource) Reset() { m.pos = 0 }

// ReadSamples fills dst with whole frames. io.EOF arrives together with
// the final batch, matching how the real decoders end their streams.
func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.pos >= m.total {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.total-m.pos)
	for i := range frames * m.channels {
		dst[i] = m.gen(m.pos+i/m.channels, i%m.channels)
	}
	m.pos += frames

	if m.pos >= m.total {
		return frames * m.channels, io.EOF
	}

	return frames * m.channels, nil
}
