package wav

import (
	"fmt"
	"io"
	"time"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/audpod/audpod/audio"
)

// wavReader is the slice of go-audio's decoder the source needs; tests
// substitute their own.
type wavReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
	Duration() (time.Duration, error)
}

// source adapts a WAV parser to the audio.Source contract. It keeps the
// concrete decoder and the raw input around because frame seeking has to
// move both in step.
type source struct {
	dec        wavReader
	gd         *gowav.Decoder // nil when dec is a test double
	rs         io.ReadSeeker
	dataStart  int64 // absolute offset of the data chunk payload
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

// Duration reports the total length of the stream, or 0 when the header
// does not carry enough to compute it.
func (s *source) Duration() time.Duration {
	d, err := s.dec.Duration()
	if err != nil {
		return 0
	}
	return d
}

// SeekFrame repositions the stream so the next read starts at the given
// sample frame, returning the frame it actually landed on. PCM frames
// map to fixed byte offsets inside the data chunk, so this is an exact
// reposition, not a re-decode. Frames past the end clamp to the last
// whole frame and the next read reports io.EOF.
func (s *source) SeekFrame(frame int64) (int64, error) {
	if frame < 0 {
		return 0, fmt.Errorf("%w: frame %d", ErrNotSeekable, frame)
	}
	if s.gd == nil || s.rs == nil {
		return 0, ErrNotSeekable
	}
	chunk := s.gd.PCMChunk

	stride := int64(s.channels) * int64(s.bitDepth/8)
	if maxFrames := int64(chunk.Size) / stride; frame > maxFrames {
		frame = maxFrames
	}
	off := frame * stride
	if _, err := s.rs.Seek(s.dataStart+off, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	// The chunk reads through a limit reader that knows nothing about the
	// reposition; rebuild it over the remaining chunk bytes.
	chunk.Pos = int(off)
	chunk.R = io.LimitReader(s.rs, int64(chunk.Size)-off)

	return frame, nil
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

	// A short read with no error means the data chunk ran out
	if n < len(dst) && err == nil {
		return n, io.EOF
	}

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec := gowav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	// The fmt chunk decides up front; only 16-bit PCM moves on
	if dec.BitDepth != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedWavLayout
	}

	// Forward to the PCM data now and remember where it starts; frame
	// seeking repositions against this origin.
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	dataStart, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		gd:         dec,
		rs:         r,
		dataStart:  dataStart,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   int(dec.BitDepth),
	}, nil
}
