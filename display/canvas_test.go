package display

import (
	"strings"
	"testing"
	"time"
)

func TestNewCanvas_Defaults(t *testing.T) {
	t.Parallel()

	c := NewCanvas(DefaultRows, DefaultCols)

	if c.Rows() != 5 {
		t.Errorf("Rows() = %d, want 5", c.Rows())
	}

	if c.Cols() != 20 {
		t.Errorf("Cols() = %d, want 20", c.Cols())
	}

	if c.View() != ViewList {
		t.Errorf("View() = %v, want ViewList", c.View())
	}
}

func TestNewCanvas_ClampsMinimums(t *testing.T) {
	t.Parallel()

	c := NewCanvas(1, 3)

	if c.Rows() != 5 {
		t.Errorf("Rows() = %d, want 5", c.Rows())
	}

	if c.Cols() != 12 {
		t.Errorf("Cols() = %d, want 12", c.Cols())
	}
}

func TestCanvas_RenderDimensions(t *testing.T) {
	t.Parallel()

	c := NewCanvas(5, 20)
	c.SetListItem(0, "a file with a very long name.mp3", IconFile, true)
	c.SetTitle("a title that is longer than the display")

	views := []func(){
		c.SwitchToList,
		c.SwitchToPlay,
		func() { c.SwitchToPowerOff("") },
	}

	for _, switchTo := range views {
		switchTo()

		for i := 0; i < 3; i++ {
			rows := c.Render()

			if len(rows) != 5 {
				t.Fatalf("Render() returned %d rows, want 5", len(rows))
			}

			for r, row := range rows {
				if got := len([]rune(row)); got != 20 {
					t.Errorf("row %d has %d runes, want 20 (%q)", r, got, row)
				}
			}

			c.Tick()
		}
	}
}

func TestCanvas_ListView(t *testing.T) {
	t.Parallel()

	c := NewCanvas(5, 20)
	c.SetListItem(0, "song.mp3", IconFile, false)
	c.SetListItem(1, "albums", IconFolder, true)

	rows := c.Render()

	if want := " . song.mp3         "; rows[0] != want {
		t.Errorf("row 0 = %q, want %q", rows[0], want)
	}

	if want := ">/ albums           "; rows[1] != want {
		t.Errorf("row 1 = %q, want %q", rows[1], want)
	}

	// Unset rows stay blank
	if want := strings.Repeat(" ", 20); rows[4] != want {
		t.Errorf("row 4 = %q, want blank", rows[4])
	}
}

func TestCanvas_ListItemOutOfRange(t *testing.T) {
	t.Parallel()

	c := NewCanvas(5, 20)

	c.SetListItem(-1, "below", IconFile, false)
	c.SetListItem(ListItems, "above", IconFile, false)

	for i, row := range c.Render() {
		if row != strings.Repeat(" ", 20) {
			t.Errorf("row %d = %q, want blank", i, row)
		}
	}
}

func TestCanvas_FocusedItemScrolls(t *testing.T) {
	t.Parallel()

	c := NewCanvas(5, 20)
	long := "a very long file name indeed.mp3"
	c.SetListItem(0, long, IconFile, true)
	c.SetListItem(1, long, IconFile, false)

	before := c.Render()
	c.Tick()
	after := c.Render()

	if before[0] == after[0] {
		t.Error("focused item did not scroll")
	}

	if before[1][1:] != after[1][1:] {
		t.Error("unfocused item scrolled")
	}
}

func TestCanvas_PlayView(t *testing.T) {
	t.Parallel()

	c := NewCanvas(5, 20)
	c.SwitchToPlay()
	c.SetVolume(42)
	c.SetTitle("Song")
	c.SetArtist("Band")
	c.SetAlbum("Record")
	c.SetTrack("3/12")
	c.SetPlayTime(225*time.Second, 250*time.Second, false)

	rows := c.Render()

	if want := "V  42               "; rows[0] != want {
		t.Errorf("row 0 = %q, want %q", rows[0], want)
	}

	if want := "T Song              "; rows[1] != want {
		t.Errorf("row 1 = %q, want %q", rows[1], want)
	}

	if want := "A Band              "; rows[2] != want {
		t.Errorf("row 2 = %q, want %q", rows[2], want)
	}

	if want := "L Record            "; rows[3] != want {
		t.Errorf("row 3 = %q, want %q", rows[3], want)
	}

	if want := "3/12     3:45 / 4:10"; rows[4] != want {
		t.Errorf("row 4 = %q, want %q", rows[4], want)
	}
}

func TestCanvas_PlayTimeWithoutTotal(t *testing.T) {
	t.Parallel()

	c := NewCanvas(5, 20)
	c.SwitchToPlay()
	c.SetPlayTime(225*time.Second, 0, false)

	rows := c.Render()

	if want := "                3:45"; rows[4] != want {
		t.Errorf("row 4 = %q, want %q", rows[4], want)
	}
}

func TestCanvas_PlayTimeBlinks(t *testing.T) {
	t.Parallel()

	c := NewCanvas(5, 20)
	c.SwitchToPlay()
	c.SetTrack("1/1")
	c.SetPlayTime(65*time.Second, 0, true)

	visible := c.Render()
	if !strings.Contains(visible[4], "1:05") {
		t.Fatalf("row 4 = %q, want the play time visible", visible[4])
	}

	// Enter the hidden blink phase
	for i := 0; i < blinkPhase; i++ {
		c.Tick()
	}

	hidden := c.Render()
	if strings.Contains(hidden[4], "1:05") {
		t.Errorf("row 4 = %q, want the play time blanked", hidden[4])
	}

	// The track readout does not blink
	if !strings.Contains(hidden[4], "1/1") {
		t.Errorf("row 4 = %q, want the track readout visible", hidden[4])
	}

	// Back to the visible phase
	for i := 0; i < blinkPhase; i++ {
		c.Tick()
	}

	if got := c.Render(); !strings.Contains(got[4], "1:05") {
		t.Errorf("row 4 = %q, want the play time visible again", got[4])
	}
}

func TestCanvas_MessageAlternation(t *testing.T) {
	t.Parallel()

	c := NewCanvas(5, 20)
	c.SwitchToPlay()
	c.SetTitle("Song")
	c.SetMessage("Paused", false)

	// Title group first
	rows := c.Render()
	if !strings.Contains(rows[1], "Song") {
		t.Fatalf("row 1 = %q, want the title group", rows[1])
	}

	// The message group takes over at tick 350
	for i := 0; i < playChange; i++ {
		c.Tick()
	}

	rows = c.Render()
	if !strings.Contains(rows[2], "Paused") {
		t.Errorf("row 2 = %q, want the message group", rows[2])
	}
	if strings.Contains(rows[1], "Song") {
		t.Errorf("row 1 = %q, want the title group hidden", rows[1])
	}

	// And hands back at the end of the cycle
	for i := 0; i < playCycle-playChange; i++ {
		c.Tick()
	}

	rows = c.Render()
	if !strings.Contains(rows[1], "Song") {
		t.Errorf("row 1 = %q, want the title group back", rows[1])
	}
}

func TestCanvas_NoAlternationWithoutMessage(t *testing.T) {
	t.Parallel()

	c := NewCanvas(5, 20)
	c.SwitchToPlay()
	c.SetTitle("Song")

	for i := 0; i < playChange+10; i++ {
		c.Tick()
	}

	rows := c.Render()
	if !strings.Contains(rows[1], "Song") {
		t.Errorf("row 1 = %q, want the title group without a message set", rows[1])
	}
}

func TestCanvas_SwitchToPlayResets(t *testing.T) {
	t.Parallel()

	c := NewCanvas(5, 20)
	c.SwitchToPlay()
	c.SetTitle("Song")
	c.SetMessage("Paused", false)

	for i := 0; i < playChange+5; i++ {
		c.Tick()
	}

	// Switching again clears the message and rewinds the cycle
	c.SwitchToPlay()

	rows := c.Render()
	if !strings.Contains(rows[1], "Song") {
		t.Errorf("row 1 = %q, want the title group after SwitchToPlay", rows[1])
	}

	for i := 0; i < playChange+5; i++ {
		c.Tick()
	}

	rows = c.Render()
	if !strings.Contains(rows[1], "Song") {
		t.Errorf("row 1 = %q, want no alternation after the message was cleared", rows[1])
	}
}

func TestCanvas_PowerOff(t *testing.T) {
	t.Parallel()

	c := NewCanvas(5, 20)
	c.SwitchToPowerOff("")

	rows := c.Render()
	if want := "        Bye         "; rows[2] != want {
		t.Errorf("row 2 = %q, want %q", rows[2], want)
	}

	c.SwitchToPowerOff("See You!")

	rows = c.Render()
	if want := "      See You!      "; rows[2] != want {
		t.Errorf("row 2 = %q, want %q", rows[2], want)
	}
}

func TestCanvas_BatteryPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		millivolts int
		want       int
	}{
		{"full", 4100, 100},
		{"empty", 2900, 0},
		{"half", 3500, 50},
		{"thirty percent", 3260, 30},
		{"below empty clamps", 2000, 0},
		{"above full clamps", 5000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(5, 20)
			c.SetBatteryVoltage(tt.millivolts)

			if got := c.BatteryPercent(); got != tt.want {
				t.Errorf("BatteryPercent() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCanvas_VolumeFormat(t *testing.T) {
	t.Parallel()

	c := NewCanvas(5, 20)
	c.SwitchToPlay()

	c.SetVolume(0)
	if rows := c.Render(); !strings.HasPrefix(rows[0], "V   0") {
		t.Errorf("row 0 = %q, want prefix %q", rows[0], "V   0")
	}

	c.SetVolume(100)
	if rows := c.Render(); !strings.HasPrefix(rows[0], "V 100") {
		t.Errorf("row 0 = %q, want prefix %q", rows[0], "V 100")
	}
}
