// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Gain scales every sample from src by a level in [0, 1]. The level may be
// changed from any goroutine while another one reads, so a volume control
// can be wired straight to the playback path.
type Gain struct {
	src   Source
	level atomic.Uint64 // math.Float64bits of the current level
}

func NewGain(src Source, level float64) *Gain {
	g := &Gain{src: src}
	g.SetLevel(level)

	return g
}

// SetLevel replaces the scaling factor, clamping it to [0, 1].
func (g *Gain) SetLevel(level float64) {
	g.level.Store(math.Float64bits(min(max(level, 0), 1)))
}

// Level reports the current scaling factor.
func (g *Gain) Level() float64 {
	return math.Float64frombits(g.level.Load())
}

func (g *Gain) SampleRate() int { return g.src.SampleRate() }
func (g *Gain) Channels() int   { return g.src.Channels() }
func (g *Gain) BufSize() int    { return g.src.BufSize() }

func (g *Gain) Close() error {
	err := g.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (g *Gain) ReadSamples(dst []float32) (int, error) {
	n, err := g.src.ReadSamples(dst)

	lv := float32(g.Level())
	if lv == 1.0 {
		// Unity gain: leave the samples untouched
		return n, err
	}
	for i := range n {
		dst[i] *= lv
	}

	return n, err
}
