package vorbis

import (
	"fmt"
	"io"
	"time"

	"github.com/jfreymuth/oggvorbis"

	"github.com/audpod/audpod/audio"
)

// oggReader is the slice of oggvorbis.Reader the source needs; tests
// substitute their own.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
	Length() int64
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

// Duration reports the total track length. It returns 0 when the stream
// does not end with a proper end-of-stream page or is not seekable.
func (s *source) Duration() time.Duration {
	frames := s.dec.Length()
	if frames <= 0 || s.sampleRate <= 0 {
		return 0
	}
	return time.Duration(frames) * time.Second / time.Duration(s.sampleRate)
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	// oggvorbis counts interleaved values, not frames, and only ever
	// hands back whole frames. Trim the request to a frame boundary and
	// decode straight into dst.
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, nil
	}

	return s.dec.Read(dst[:want])
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
