// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/audpod/audpod/audio"
)

// Oto plays audio through the default device using ebitengine/oto.
//
// The operating system allows a single oto context per process, so
// create one Oto and reuse it across tracks.
type Oto struct {
	mu         sync.Mutex
	ctx        *oto.Context
	player     *oto.Player
	sampleRate int
	volume     float64
	closed     bool
}

// NewOto opens the default audio device at the given sample rate. The
// device runs in stereo; Start adapts sources with other layouts.
func NewOto(sampleRate int) (*Oto, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	return &Oto{
		ctx:        ctx,
		sampleRate: sampleRate,
		volume:     1.0,
	}, nil
}

// Start begins playback of src, replacing any current source. Sources
// whose rate or channel count differ from the device are wrapped in
// audio.Resampler and audio.StereoMixer.
func (o *Oto) Start(src audio.Source) error {
	if src == nil {
		return ErrNoSource
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrSinkClosed
	}

	if src.SampleRate() != o.sampleRate {
		src = audio.NewResampler(src, o.sampleRate)
	}
	if src.Channels() != 2 {
		src = audio.NewStereoMixer(src)
	}

	if o.player != nil {
		o.player.Close()
	}

	r := &sourceReader{
		src:       src,
		sampleBuf: make([]float32, 4096),
	}

	o.player = o.ctx.NewPlayer(r)
	o.player.SetVolume(o.volume)
	o.player.Play()

	return nil
}

func (o *Oto) Pause() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil {
		o.player.Pause()
	}
}

func (o *Oto) Resume() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil {
		o.player.Play()
	}
}

func (o *Oto) Playing() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.player != nil && o.player.IsPlaying()
}

func (o *Oto) SetVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.volume = v
	if o.player != nil {
		o.player.SetVolume(v)
	}
}

// Volume returns the current playback volume.
func (o *Oto) Volume() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.volume
}

// Close stops playback. The device context itself stays open until the
// process exits; oto does not support tearing it down.
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}
	o.closed = true

	if o.player != nil {
		err := o.player.Close()
		o.player = nil
		if err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// sourceReader adapts an audio.Source to the io.Reader an oto player
// pulls from, encoding samples as little-endian float32.
type sourceReader struct {
	src       audio.Source
	sampleBuf []float32
}

func (r *sourceReader) Read(p []byte) (int, error) {
	// The device is stereo; hand the source whole frames only.
	numSamples := len(p) / 4
	numSamples -= numSamples % 2
	if numSamples == 0 {
		return 0, nil
	}

	if len(r.sampleBuf) < numSamples {
		r.sampleBuf = make([]float32, numSamples)
	}
	samples := r.sampleBuf[:numSamples]

	n, err := r.src.ReadSamples(samples)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(samples[i]))
	}

	if err != nil && err != io.EOF {
		return n * 4, fmt.Errorf("%w", err)
	}

	return n * 4, err
}
