// SPDX-License-Identifier: EPL-2.0

package power

const (
	// DefaultHighLevel is the backlight PWM level while the user is
	// active.
	DefaultHighLevel = 128

	// DefaultLowLevel is the dimmed PWM level after the idle timeout.
	DefaultLowLevel = 16

	// DefaultDimAfter is the idle timeout in ticks. At the usual 50 ms
	// UI cycle this is ten seconds.
	DefaultDimAfter = 200

	maxLevel = 255
)

// Backlight dims the display after a stretch of ticks without input.
// Tick advances the idle counter once per UI cycle and Poke resets it
// whenever the user presses something.
//
// Levels are raw PWM steps in [0, 255]. Callers that drive real PWM
// hardware should square the level before applying it so brightness
// appears linear to the eye.
//
// Backlight is not safe for concurrent use; like the rest of the UI
// state it belongs to the tick loop.
type Backlight struct {
	high     int
	low      int
	dimAfter int

	idle int
}

// NewBacklight returns a backlight that holds high until dimAfter idle
// ticks have passed and low from then on. Levels are clamped to
// [0, 255]; a negative dimAfter dims immediately.
func NewBacklight(high, low, dimAfter int) *Backlight {
	return &Backlight{
		high:     clampLevel(high),
		low:      clampLevel(low),
		dimAfter: max(dimAfter, 0),
	}
}

// Poke resets the idle counter, restoring the high level.
func (b *Backlight) Poke() {
	b.idle = 0
}

// Tick advances the idle counter by one UI cycle.
func (b *Backlight) Tick() {
	// The counter saturates just past the timeout; only "before" versus
	// "after" matters.
	if b.idle <= b.dimAfter {
		b.idle++
	}
}

// Level returns the PWM level for the current idle state.
func (b *Backlight) Level() int {
	if b.idle < b.dimAfter {
		return b.high
	}
	return b.low
}

// Idle returns the number of ticks since the last Poke.
func (b *Backlight) Idle() int {
	return b.idle
}

func clampLevel(v int) int {
	if v < 0 {
		return 0
	}
	if v > maxLevel {
		return maxLevel
	}
	return v
}
