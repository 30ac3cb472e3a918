// SPDX-License-Identifier: EPL-2.0

package output

import (
	"io"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/audpod/audpod/audio"
)

// Null consumes a source without an audio device. It backs the player's
// headless mode and most tests.
type Null struct {
	// Pace is the delay between drain chunks, set before the first
	// Start. Zero drains the source as fast as it can be read.
	Pace time.Duration

	mu     sync.Mutex
	stop   chan struct{}
	done   chan struct{}
	closed bool

	paused  atomic.Bool
	volume  atomic.Uint64
	drained atomic.Int64
}

// NewNull creates a sink that discards samples.
func NewNull() *Null {
	n := &Null{}
	n.volume.Store(math.Float64bits(1.0))

	return n
}

// Start begins draining src on a background goroutine, replacing any
// source started earlier.
func (s *Null) Start(src audio.Source) error {
	if src == nil {
		return ErrNoSource
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSinkClosed
	}

	s.stopDrain()

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.paused.Store(false)

	go s.drain(src, s.stop, s.done)

	return nil
}

// stopDrain stops the current drain goroutine and waits for it to exit.
// Callers hold mu.
func (s *Null) stopDrain() {
	if s.stop == nil {
		return
	}

	close(s.stop)
	<-s.done
	s.stop = nil
	s.done = nil
}

// drain pulls samples from src until the source ends, a read fails, or
// the sink is stopped. It never takes mu.
func (s *Null) drain(src audio.Source, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	buf := make([]float32, src.BufSize())

	for {
		select {
		case <-stop:
			return
		default:
		}

		if s.paused.Load() {
			time.Sleep(time.Millisecond)
			continue
		}

		n, err := src.ReadSamples(buf)
		s.drained.Add(int64(n))

		if err == io.EOF {
			return
		}
		if err != nil {
			slog.Error("output: drain failed", "err", err)
			return
		}

		if s.Pace > 0 {
			select {
			case <-time.After(s.Pace):
			case <-stop:
				return
			}
		}
	}
}

func (s *Null) Pause() {
	s.paused.Store(true)
}

func (s *Null) Resume() {
	s.paused.Store(false)
}

// Playing reports whether the drain goroutine is running and not paused.
func (s *Null) Playing() bool {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done == nil || s.paused.Load() {
		return false
	}

	select {
	case <-done:
		return false
	default:
		return true
	}
}

func (s *Null) SetVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}

	s.volume.Store(math.Float64bits(v))
}

// Volume returns the current volume setting. Null does not apply it to
// anything; it only records it.
func (s *Null) Volume() float64 {
	return math.Float64frombits(s.volume.Load())
}

// Drained returns the total number of samples consumed since the sink
// was created.
func (s *Null) Drained() int64 {
	return s.drained.Load()
}

// Done returns a channel closed when the current source has been fully
// drained or the sink stopped. It is nil before the first Start.
func (s *Null) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.done
}

// Close stops the drain goroutine. Closing twice is a no-op.
func (s *Null) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.stopDrain()

	return nil
}
