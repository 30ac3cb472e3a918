// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Resampler converts src to the target sample rate using cubic
// interpolation over a sliding four frame window. Works on interleaved
// samples and preserves the channel count. When downsampling, a one-pole
// low-pass tames aliasing above the destination Nyquist.
type Resampler struct {
	src      Source
	srcRate  float64
	dstRate  float64
	step     float64 // source frames consumed per output frame
	channels int

	// Interpolation window: win[0] = t-1, win[1] = t0, win[2] = t+1,
	// win[3] = t+2. Output frames fall between win[1] and win[2] at the
	// fractional position pos.
	win    [4][]float32
	have   [4]bool
	pos    float64
	primed bool
	done   bool

	// Staging buffer of decoded source samples, consumed frame by frame
	buf    []float32
	bufOff int
	bufLen int
	eof    bool

	// Low-pass filter state, one value per channel
	lp      []float32
	lpAlpha float32
	useLP   bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		srcRate:  float64(src.SampleRate()),
		dstRate:  float64(dstRate),
		step:     step,
		channels: channels,
		buf:      make([]float32, 1024*channels),
		useLP:    step > 1.0,
		lpAlpha:  0.5,
		lp:       make([]float32, channels),
	}
	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// take returns the next source frame, refilling the staging buffer when it
// runs dry. A nil frame with a nil error means the source is drained.
func (r *Resampler) take() ([]float32, error) {
	if r.bufLen-r.bufOff < r.channels {
		if r.eof {
			return nil, nil
		}

		n, err := r.src.ReadSamples(r.buf)
		n -= n % r.channels // whole frames only
		r.bufOff, r.bufLen = 0, n

		if err == io.EOF {
			r.eof = true
			if n == 0 {
				return nil, nil
			}
		} else if err != nil {
			return nil, fmt.Errorf("%w", err)
		} else if n == 0 {
			return nil, nil
		}
	}

	f := r.buf[r.bufOff : r.bufOff+r.channels]
	r.bufOff += r.channels

	return f, nil
}

// smooth runs the low-pass over one frame in place.
func (r *Resampler) smooth(frame []float32) {
	if !r.useLP {
		return
	}
	for c, v := range frame {
		// One-pole low-pass: y[n] = alpha * x[n] + (1-alpha) * y[n-1]
		f := r.lpAlpha*v + (1-r.lpAlpha)*r.lp[c]
		frame[c] = f
		r.lp[c] = f
	}
}

// prime fills the interpolation window with the first source frames. A
// source shorter than the window gets its last frame duplicated across the
// remaining slots.
func (r *Resampler) prime() error {
	for i := range 4 {
		frame, err := r.take()
		if err != nil {
			return err
		}
		if frame == nil {
			if i == 0 {
				return io.EOF
			}
			for j := i; j < 4; j++ {
				copy(r.win[j], r.win[i-1])
				r.have[j] = true
			}
			break
		}

		copy(r.win[i], frame)
		r.have[i] = true
		if i == 0 && r.useLP {
			// Seed the filter state to avoid a warm-up transient
			copy(r.lp, frame)
		}
	}
	r.primed = true

	return nil
}

// advance slides the window one source frame to the left and decodes the
// next frame into the freed slot.
func (r *Resampler) advance() error {
	copy(r.win[0], r.win[1])
	copy(r.win[1], r.win[2])
	copy(r.win[2], r.win[3])
	r.have[0], r.have[1], r.have[2] = r.have[1], r.have[2], r.have[3]

	frame, err := r.take()
	if err != nil {
		return err
	}
	if frame == nil {
		r.have[3] = false
		return io.EOF
	}

	copy(r.win[3], frame)
	r.smooth(r.win[3])
	r.have[3] = true

	return nil
}

// cubic evaluates a Catmull-Rom spline through four consecutive samples
// at fractional position x in [0, 1] between y1 and y2. The curve passes
// through y1 at x=0 and y2 at x=1.
func cubic(y0, y1, y2, y3, x float32) float32 {
	return y1 + 0.5*x*(y2-y0+x*(2*y0-5*y1+4*y2-y3+x*(3*(y1-y2)+y3-y0)))
}

// ReadSamples produces dst samples at the destination rate.
// dst length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.done {
		return 0, io.EOF
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			if err == io.EOF {
				r.done = true
			}
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				if err == io.EOF {
					r.done = true
					return written * r.channels, io.EOF
				}
				return written * r.channels, err
			}
		}

		if !r.have[1] || !r.have[2] {
			r.done = true
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)
		base := written * r.channels
		for c := range r.channels {
			// Duplicate the edge frames when the window is not full
			y0, y3 := r.win[1][c], r.win[2][c]
			if r.have[0] {
				y0 = r.win[0][c]
			}
			if r.have[3] {
				y3 = r.win[3][c]
			}
			dst[base+c] = cubic(y0, r.win[1][c], r.win[2][c], y3, alpha)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
