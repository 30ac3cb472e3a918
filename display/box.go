// SPDX-License-Identifier: EPL-2.0

package display

// Align selects where TextBox content sits within its width.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// scrollGap separates the tail of a long text from its wrapped head
// while a marquee is running.
const scrollGap = 3

// TextBox is a fixed-width single-row text element. Text longer than
// the width is truncated.
type TextBox struct {
	width int
	align Align
	text  []rune
	blink bool
}

func NewTextBox(width int, align Align) *TextBox {
	return &TextBox{width: width, align: align}
}

func (b *TextBox) SetText(text string) {
	b.text = []rune(text)
}

func (b *TextBox) Text() string {
	return string(b.text)
}

// SetBlink makes the box alternate between visible and blank phases.
func (b *TextBox) SetBlink(blink bool) {
	b.blink = blink
}

func (b *TextBox) Blink() bool {
	return b.blink
}

// Render returns the box contents padded to its width. A blinking box
// renders blank during the hidden phase.
func (b *TextBox) Render(hidden bool) []rune {
	out := blankRow(b.width)
	if b.blink && hidden {
		return out
	}

	text := b.text
	if len(text) > b.width {
		text = text[:b.width]
	}

	var start int
	switch b.align {
	case AlignCenter:
		start = (b.width - len(text)) / 2
	case AlignRight:
		start = b.width - len(text)
	}
	copy(out[start:], text)

	return out
}

// ScrollBox is a fixed-width single-row text element with a leading
// icon column. When scrolling is enabled and the text is wider than the
// box, each Tick advances a wrap-around marquee.
type ScrollBox struct {
	width  int
	icon   rune
	text   []rune
	scroll bool
	offset int
}

func NewScrollBox(width int, icon rune) *ScrollBox {
	return &ScrollBox{width: width, icon: icon}
}

func (b *ScrollBox) SetIcon(icon rune) {
	b.icon = icon
}

// SetText replaces the box text. Changing the text rewinds the marquee;
// setting the same text keeps its position.
func (b *ScrollBox) SetText(text string) {
	if string(b.text) == text {
		return
	}

	b.text = []rune(text)
	b.offset = 0
}

func (b *ScrollBox) Text() string {
	return string(b.text)
}

// SetScroll enables or disables the marquee. Disabling rewinds it.
func (b *ScrollBox) SetScroll(on bool) {
	b.scroll = on
	if !on {
		b.offset = 0
	}
}

func (b *ScrollBox) Scroll() bool {
	return b.scroll
}

// textWidth is the room left after the icon column and its separator.
func (b *ScrollBox) textWidth() int {
	return b.width - 2
}

// Tick advances the marquee by one column. Text that fits does not
// move.
func (b *ScrollBox) Tick() {
	if !b.scroll || len(b.text) <= b.textWidth() {
		return
	}

	b.offset = (b.offset + 1) % (len(b.text) + scrollGap)
}

func (b *ScrollBox) Render() []rune {
	out := blankRow(b.width)
	if b.icon != 0 {
		out[0] = b.icon
	}

	w := b.textWidth()
	if w <= 0 {
		return out
	}

	if len(b.text) <= w {
		copy(out[2:], b.text)
		return out
	}

	// Window into the text followed by the wrap gap
	ringLen := len(b.text) + scrollGap
	for i := 0; i < w; i++ {
		j := (b.offset + i) % ringLen
		if j < len(b.text) {
			out[2+i] = b.text[j]
		}
	}

	return out
}

func blankRow(width int) []rune {
	row := make([]rune, width)
	for i := range row {
		row[i] = ' '
	}

	return row
}
