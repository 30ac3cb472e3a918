// SPDX-License-Identifier: EPL-2.0

package display

import (
	"fmt"
	"time"
)

// View identifies which screen the canvas is showing.
type View int

const (
	ViewList View = iota
	ViewPlay
	ViewPowerOff
)

// Icon runes for list items and play view labels.
const (
	IconNone   rune = 0
	IconFolder rune = '/'
	IconFile   rune = '.'
	IconTitle  rune = 'T'
	IconArtist rune = 'A'
	IconAlbum  rune = 'L'
)

const (
	DefaultRows = 5
	DefaultCols = 20

	// ListItems is the number of rows in the list view.
	ListItems = 5

	minRows = 5
	minCols = 12

	// The play view shows the title group for the first playChange
	// ticks of each playCycle, then the message group for the rest.
	playCycle  = 400
	playChange = 350

	// Blinking boxes flip between visible and hidden every blinkPhase
	// ticks.
	blinkPhase = 8

	// Bottom-row split in the play view: track number on the left,
	// play time right-aligned in the remainder.
	trackWidth = 7
)

// Canvas is the player's status display model: a rows-by-cols grid of
// runes holding a list view, a play view, and a power-off view. It is
// pure state with no rendering backend; callers print what Render
// returns. Not safe for concurrent use.
type Canvas struct {
	rows int
	cols int
	view View
	tick int

	list [ListItems]*ScrollBox

	volume   *TextBox
	playTime *TextBox
	track    *TextBox
	title    *ScrollBox
	artist   *ScrollBox
	album    *ScrollBox
	msg      *TextBox

	battery int
}

// NewCanvas creates a canvas with the given geometry. Dimensions below
// the minimum (5 rows, 12 columns) are raised to it.
func NewCanvas(rows, cols int) *Canvas {
	if rows < minRows {
		rows = minRows
	}
	if cols < minCols {
		cols = minCols
	}

	c := &Canvas{
		rows: rows,
		cols: cols,
		view: ViewList,
	}

	for i := range c.list {
		c.list[i] = NewScrollBox(cols-1, IconNone)
	}

	c.volume = NewTextBox(cols, AlignLeft)
	c.playTime = NewTextBox(cols-trackWidth, AlignRight)
	c.track = NewTextBox(trackWidth, AlignLeft)
	c.title = NewScrollBox(cols, IconTitle)
	c.artist = NewScrollBox(cols, IconArtist)
	c.album = NewScrollBox(cols, IconAlbum)
	c.msg = NewTextBox(cols, AlignCenter)

	// Metadata lines always marquee when too long; list items only
	// while focused.
	c.title.SetScroll(true)
	c.artist.SetScroll(true)
	c.album.SetScroll(true)

	return c
}

func (c *Canvas) Rows() int  { return c.rows }
func (c *Canvas) Cols() int  { return c.cols }
func (c *Canvas) View() View { return c.view }

// SetListItem fills one list row. The focused item is marked and its
// text scrolls when too long. Columns outside [0, ListItems) are
// ignored.
func (c *Canvas) SetListItem(column int, text string, icon rune, focused bool) {
	if column < 0 || column >= ListItems {
		return
	}

	item := c.list[column]
	item.SetIcon(icon)
	item.SetText(text)
	item.SetScroll(focused)
}

// SetVolume updates the volume readout on the play view.
func (c *Canvas) SetVolume(value int) {
	c.volume.SetText(fmt.Sprintf("V %3d", value))
}

// SetPlayTime updates the position readout. When the total is known and
// fits, the readout shows "position / total"; otherwise position only.
// Blink is used while playback is paused.
func (c *Canvas) SetPlayTime(pos, total time.Duration, blink bool) {
	c.playTime.SetText(formatPlayTime(pos, total, c.cols-trackWidth))
	c.playTime.SetBlink(blink)
}

func (c *Canvas) SetTrack(text string)  { c.track.SetText(text) }
func (c *Canvas) SetTitle(text string)  { c.title.SetText(text) }
func (c *Canvas) SetArtist(text string) { c.artist.SetText(text) }
func (c *Canvas) SetAlbum(text string)  { c.album.SetText(text) }

// SetMessage sets the message shown by the play view's alternate group
// and the power-off view.
func (c *Canvas) SetMessage(text string, blink bool) {
	c.msg.SetText(text)
	c.msg.SetBlink(blink)
}

// SetBatteryVoltage records the battery reading. 2900 mV reads as
// empty and 4100 mV as full, the cell's usable range.
func (c *Canvas) SetBatteryVoltage(millivolts int) {
	const empty, full = 2900, 4100

	pct := (millivolts - empty) * 100 / (full - empty)
	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}
	c.battery = pct
}

// BatteryPercent returns the last battery reading as a percentage.
func (c *Canvas) BatteryPercent() int {
	return c.battery
}

func (c *Canvas) SwitchToList() {
	c.view = ViewList
	c.msg.SetText("")
}

func (c *Canvas) SwitchToPlay() {
	c.view = ViewPlay
	c.msg.SetText("")
	c.tick = 0
}

// SwitchToPowerOff shows a centered farewell. An empty msg defaults to
// "Bye".
func (c *Canvas) SwitchToPowerOff(msg string) {
	c.view = ViewPowerOff
	if msg == "" {
		msg = "Bye"
	}
	c.msg.SetText(msg)
}

// Tick advances the canvas by one UI cycle: marquees move, blink and
// play view alternation progress.
func (c *Canvas) Tick() {
	c.tick++

	switch c.view {
	case ViewList:
		for _, item := range c.list {
			item.Tick()
		}
	case ViewPlay:
		if c.playMode() == 0 {
			c.title.Tick()
			c.artist.Tick()
			c.album.Tick()
		}
	}
}

// playMode returns 0 for the title/artist/album group and 1 for the
// message group. The groups alternate only while a message is set.
func (c *Canvas) playMode() int {
	if c.msg.Text() == "" {
		return 0
	}
	if c.tick%playCycle >= playChange {
		return 1
	}

	return 0
}

// Render returns the current screen as rows strings of exactly cols
// runes each.
func (c *Canvas) Render() []string {
	grid := make([][]rune, c.rows)
	for i := range grid {
		grid[i] = blankRow(c.cols)
	}

	hidden := (c.tick/blinkPhase)%2 == 1

	switch c.view {
	case ViewList:
		for i, item := range c.list {
			if i >= c.rows {
				break
			}

			row := grid[i]
			if item.Scroll() {
				row[0] = '>'
			}
			copy(row[1:], item.Render())
		}

	case ViewPlay:
		copy(grid[0], c.volume.Render(hidden))

		if c.playMode() == 0 {
			copy(grid[1], c.title.Render())
			copy(grid[2], c.artist.Render())
			copy(grid[3], c.album.Render())
		} else {
			copy(grid[c.rows/2], c.msg.Render(hidden))
		}

		bottom := grid[c.rows-1]
		copy(bottom, c.track.Render(hidden))
		copy(bottom[trackWidth:], c.playTime.Render(hidden))

	case ViewPowerOff:
		copy(grid[c.rows/2], c.msg.Render(hidden))
	}

	out := make([]string, c.rows)
	for i, row := range grid {
		out[i] = string(row)
	}

	return out
}

func formatPlayTime(pos, total time.Duration, width int) string {
	s := clock(pos)
	if total > 0 {
		full := s + " / " + clock(total)
		if len(full) <= width {
			return full
		}
	}

	return s
}

func clock(d time.Duration) string {
	sec := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
