package aiff

import (
	"io"
	"time"

	goaiff "github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/audpod/audpod/audio"
)

// aiffReader is the slice of go-audio's decoder the source needs; tests
// substitute their own.
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
	Duration() (time.Duration, error)
}

// source adapts an AIFF parser to the audio.Source contract.
type source struct {
	dec        aiffReader
	sampleRate int
	channels   int
	bitDepth   int
	staging    *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) BufSize() int {
	if s.staging != nil {
		return cap(s.staging.Data)
	}
	return 4096
}

// Duration reports the total length of the stream, computed from the
// header's sample frame count. It returns 0 when the header is unreadable.
func (s *source) Duration() time.Duration {
	d, err := s.dec.Duration()
	if err != nil {
		return 0
	}
	return d
}

// pcmScale returns the divisor that maps ints of the given bit depth onto
// [-1, 1].
func pcmScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 1 << 7
	case 24:
		return 1 << 23
	case 32:
		return 1 << 31
	default:
		// 16-bit, the only depth Decode lets through
		return 1 << 15
	}
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.staging == nil || cap(s.staging.Data) < len(dst) {
		s.staging = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.staging.Data = s.staging.Data[:len(dst)]
	}

	// go-audio reports exhaustion as a zero-sample read, not io.EOF
	n, err := s.dec.PCMBuffer(s.staging)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	scale := pcmScale(s.bitDepth)
	for i := range n {
		dst[i] = float32(s.staging.Data[i]) / scale
	}

	// A short read with no error means the SSND chunk ran out
	if n < len(dst) && err == nil {
		return n, io.EOF
	}

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec := goaiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	// The COMM chunk decides up front; only 16-bit PCM moves on
	if dec.BitDepth != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   int(dec.BitDepth),
	}, nil
}
