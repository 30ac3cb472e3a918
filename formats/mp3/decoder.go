// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/audpod/audpod/audio"
)

// mp3Reader is the slice of go-mp3's decoder the source needs; tests
// substitute their own.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
	Length() int64
}

type source struct {
	dec        mp3Reader
	sampleRate int
	channels   int
	scratch    []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.scratch) / 2 } // in samples, not bytes

// Duration reports the total decoded length of the stream, or 0 when
// go-mp3 cannot size the underlying reader.
func (s *source) Duration() time.Duration {
	total := s.dec.Length()
	if total <= 0 || s.sampleRate <= 0 {
		return 0
	}

	// Decoded output is 16-bit stereo, 4 bytes per frame
	frames := total / 4
	return time.Duration(frames) * time.Second / time.Duration(s.sampleRate)
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	// go-mp3 hands out 16-bit little-endian PCM, two bytes per value
	need := len(dst) * 2
	if cap(s.scratch) < need {
		s.scratch = make([]byte, need)
	}
	s.scratch = s.scratch[:need]

	n, err := s.dec.Read(s.scratch)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	samples := n / 2
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.scratch[2*i:]))
		dst[i] = float32(v) / 32768.0
	}

	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	// go-mp3 always decodes to two interleaved channels, mono input included
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   2,
		scratch:    make([]byte, 8192),
	}, nil
}
