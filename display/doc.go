// SPDX-License-Identifier: EPL-2.0

// Package display models the player's status display as a grid of
// runes.
//
// Canvas holds three views: a file list, a playback screen, and a
// power-off farewell. It is a pure view model; callers drive it with
// setters, advance it with Tick, and print whatever Render returns.
// There is no rendering backend and no goroutine.
//
// # Views
//
// The list view shows up to five focusable items, each with an icon
// column. The focused item is marked and its text scrolls when it is
// wider than the display:
//
//	canvas := display.NewCanvas(display.DefaultRows, display.DefaultCols)
//	canvas.SetListItem(0, "song.mp3", display.IconFile, true)
//	for _, row := range canvas.Render() {
//	    fmt.Println(row)
//	}
//
// The play view shows the volume, the track number and play time, and
// alternates between the title/artist/album group and a message group
// on a fixed cycle while a message is set. The power-off view centers
// a farewell message.
//
// # Ticking
//
// Call Tick once per UI cycle. It advances the marquees, the blink
// phase, and the play view's group alternation. Render never mutates
// state, so it can be called any number of times between ticks.
//
// # Geometry
//
// The canvas is rows strings of exactly cols runes. Text wider than
// its box is truncated (TextBox) or scrolled (ScrollBox). Dimensions
// come from the caller; 5 by 20 matches a 16-pixel font on a 160x80
// panel.
package display
