// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// StereoMixer adapts a Source to the two channel interleaved layout the
// playback sinks expect. Stereo input passes through untouched; mono input
// is duplicated into both channels. Anything wider fails with
// ErrUnsupportedChannels.
type StereoMixer struct {
	src Source
	tmp []float32
}

func NewStereoMixer(src Source) *StereoMixer {
	return &StereoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *StereoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *StereoMixer) Channels() int   { return 2 }
func (m *StereoMixer) BufSize() int    { return m.src.BufSize() }

func (m *StereoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *StereoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%2 != 0 {
		return 0, ErrInvalidDstSize
	}

	switch m.src.Channels() {
	case 2:
		// Pass-through: already interleaved stereo
		return m.src.ReadSamples(dst)
	case 1:
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedChannels, m.src.Channels())
	}

	frames := len(dst) / 2

	// tmp only grows; smaller reads reuse the same backing
	if cap(m.tmp) < frames {
		m.tmp = make([]float32, max(frames, 8192))
	}

	n, err := m.src.ReadSamples(m.tmp[:frames])
	if n == 0 {
		return 0, err
	}

	// Duplicate each mono sample into the left and right slots
	for f := range n {
		dst[f*2] = m.tmp[f]
		dst[f*2+1] = m.tmp[f]
	}

	return n * 2, err
}
