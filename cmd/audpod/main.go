// SPDX-License-Identifier: EPL-2.0

// Command audpod plays audio files in the terminal.
//
//	audpod [-config profile.yaml] [-headless] [-v] track...
//
// The screen mode renders the player's status display with raw-mode
// keys: space pauses, + and - set the volume, the left and right
// arrows skip ten seconds, n jumps to the next track, q quits.
// Headless mode drains tracks without a sound card and only logs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/audpod/audpod"
	"github.com/audpod/audpod/config"
	"github.com/audpod/audpod/display"
	"github.com/audpod/audpod/output"
	"github.com/audpod/audpod/power"
	"github.com/audpod/audpod/storage"
)

const (
	// uiTick is the screen refresh cycle.
	uiTick = 50 * time.Millisecond

	skipStep   = 10 * time.Second
	volumeStep = 5
)

func main() {
	configPath := flag.String("config", "", "path to a YAML profile; built-in defaults apply when empty")
	headless := flag.Bool("headless", false, "play without an audio device or screen")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	// The screen owns stdout; logs go to stderr where they can be
	// redirected away from the display.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: audpod [-config profile.yaml] [-headless] [-v] track...")
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			slog.Error("audpod: config rejected", "path", *configPath, "err", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *headless || cfg.Output.Headless, flag.Args()); err != nil {
		slog.Error("audpod: exiting", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Profile, headless bool, tracks []string) error {
	opts := cfg.MonitorOptions()
	opts.OnLow = func(mv uint16) {
		slog.Warn("audpod: battery low", "millivolts", mv)
	}

	// Desktop machines have no battery ADC; a fixed sampler keeps the
	// monitor running against a constant full reading.
	mon := power.NewMonitor(fixedSampler{}, opts)
	if err := mon.Start(ctx); err != nil {
		return fmt.Errorf("%w", err)
	}
	defer mon.Stop()

	if headless {
		return runHeadless(ctx, cfg, tracks)
	}

	return runScreen(ctx, cfg, mon, tracks)
}

// runHeadless plays the tracks back to back through the null sink.
func runHeadless(ctx context.Context, cfg *config.Profile, tracks []string) error {
	sink := output.NewNull()
	player, err := audpod.NewPlayer(sink, audpod.PlayerOptions{Buffer: cfg.BufferOptions()})
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer player.Close()

	for _, path := range tracks {
		f, err := os.Open(path)
		if err != nil {
			slog.Error("audpod: open failed", "track", path, "err", err)
			continue
		}

		h, err := storage.NewFile(f)
		if err != nil {
			slog.Error("audpod: open failed", "track", path, "err", err)
			f.Close()
			continue
		}

		if err := player.Load(h, filepath.Base(path)); err != nil {
			slog.Error("audpod: load failed", "track", path, "err", err)
			f.Close()
			continue
		}

		if err := player.Play(); err != nil {
			f.Close()
			return fmt.Errorf("%w", err)
		}

		select {
		case <-sink.Done():
			slog.Info("audpod: track done",
				"track", filepath.Base(path),
				"position", player.Position(),
			)
		case <-ctx.Done():
			f.Close()
			return nil
		}
		f.Close()
	}

	return nil
}

// runScreen renders the status display to the terminal and drives the
// player from raw-mode keys.
func runScreen(ctx context.Context, cfg *config.Profile, mon *power.Monitor, tracks []string) error {
	sink, err := output.NewOto(cfg.Output.SampleRate)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	player, err := audpod.NewPlayer(sink, audpod.PlayerOptions{Buffer: cfg.BufferOptions()})
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer player.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw terminal (use -headless when piping): %w", err)
	}
	defer term.Restore(fd, oldState)

	keys := make(chan key, 8)
	stopKeys := readKeys(fd, keys)
	defer stopKeys()

	canvas := display.NewCanvas(cfg.Display.Rows, cfg.Display.Cols)

	ticksPerSecond := int(time.Second / uiTick)
	bl := power.NewBacklight(cfg.Display.BacklightHigh, cfg.Display.BacklightLow,
		cfg.Display.DimAfterS*ticksPerSecond)

	ui := &screen{out: os.Stdout, dimAt: cfg.Display.BacklightLow}
	ui.enter()
	defer ui.leave()

	cur := -1
	var curFile *os.File
	defer func() {
		if curFile != nil {
			curFile.Close()
		}
	}()

	// loadNext advances to the next playable track, skipping ones that
	// fail to open or decode. False means the list is exhausted.
	loadNext := func() bool {
		for cur+1 < len(tracks) {
			cur++
			path := tracks[cur]

			f, err := os.Open(path)
			if err != nil {
				slog.Error("audpod: open failed", "track", path, "err", err)
				continue
			}
			h, err := storage.NewFile(f)
			if err != nil {
				slog.Error("audpod: open failed", "track", path, "err", err)
				f.Close()
				continue
			}
			if err := player.Load(h, filepath.Base(path)); err != nil {
				slog.Error("audpod: load failed", "track", path, "err", err)
				f.Close()
				continue
			}

			if curFile != nil {
				curFile.Close()
			}
			curFile = f

			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			canvas.SetTitle(name)
			canvas.SetArtist("")
			canvas.SetAlbum("")
			canvas.SetTrack(fmt.Sprintf("%d/%d", cur+1, len(tracks)))
			canvas.SetMessage("", false)
			canvas.SwitchToPlay()

			if err := player.Play(); err != nil {
				slog.Error("audpod: play failed", "track", path, "err", err)
				continue
			}
			return true
		}

		return false
	}

	if !loadNext() {
		return errors.New("no playable tracks")
	}

	ticker := time.NewTicker(uiTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			ui.powerOff(canvas, bl)
			return nil

		case k := <-keys:
			bl.Poke()

			switch k {
			case keyQuit:
				ui.powerOff(canvas, bl)
				return nil
			case keyPause:
				if player.Paused() {
					player.Play()
				} else if player.Playing() {
					player.Pause()
				}
			case keyVolumeUp:
				player.SetVolume(player.Volume() + volumeStep)
			case keyVolumeDown:
				player.SetVolume(player.Volume() - volumeStep)
			case keyForward:
				skip(player, canvas, skipStep)
			case keyBack:
				skip(player, canvas, -skipStep)
			case keyNext:
				if !loadNext() {
					ui.powerOff(canvas, bl)
					return nil
				}
			}

		case <-ticker.C:
			// Neither playing nor paused means the track drained.
			if !player.Playing() && !player.Paused() {
				if !loadNext() {
					ui.powerOff(canvas, bl)
					return nil
				}
			}

			canvas.Tick()
			bl.Tick()

			canvas.SetVolume(player.Volume())
			canvas.SetPlayTime(player.Position(), player.Duration(), player.Paused())
			canvas.SetBatteryVoltage(int(mon.Millivolts()))
			if mon.Low() {
				canvas.SetMessage("Low Battery", true)
			}

			ui.draw(canvas, bl)
		}
	}
}

// skip moves the play position by delta. Formats without frame seeking
// show a message instead.
func skip(player *audpod.Player, canvas *display.Canvas, delta time.Duration) {
	err := player.SkipTo(player.Position() + delta)
	switch {
	case err == nil:
		canvas.SetMessage("", false)
	case errors.Is(err, audpod.ErrSeekUnsupported):
		canvas.SetMessage("No Seek", false)
	default:
		slog.Debug("audpod: skip failed", "err", err)
	}
}

// fixedSampler reports a full battery on machines without an ADC.
type fixedSampler struct{}

func (fixedSampler) ReadMillivolts() (uint16, error) { return 4200, nil }

// screen owns the terminal: alternate buffer on entry, one canvas frame
// per draw, everything restored on leave.
type screen struct {
	out   *os.File
	dimAt int
}

func (s *screen) enter() {
	fmt.Fprint(s.out, "\x1b[?1049h\x1b[?25l\x1b[2J")
}

func (s *screen) leave() {
	fmt.Fprint(s.out, "\x1b[0m\x1b[?25h\x1b[?1049l")
}

// draw paints the canvas at the top of the screen. A dimmed backlight
// renders the whole frame with the terminal's faint attribute.
func (s *screen) draw(c *display.Canvas, bl *power.Backlight) {
	var b strings.Builder

	b.WriteString("\x1b[H")
	if bl.Level() <= s.dimAt {
		b.WriteString("\x1b[2m")
	}

	for _, row := range c.Render() {
		b.WriteString(row)
		b.WriteString("\x1b[K\r\n")
	}
	fmt.Fprintf(&b, "BAT %3d%%\x1b[K", c.BatteryPercent())
	b.WriteString("\x1b[0m")

	s.out.WriteString(b.String())
}

// powerOff shows the farewell view long enough to read before the
// terminal is restored.
func (s *screen) powerOff(c *display.Canvas, bl *power.Backlight) {
	c.SwitchToPowerOff("")
	s.draw(c, bl)
	time.Sleep(300 * time.Millisecond)
}

type key int

const (
	keyNone key = iota
	keyPause
	keyVolumeUp
	keyVolumeDown
	keyForward
	keyBack
	keyNext
	keyQuit
)

// keyDecoder maps raw bytes to keys, tracking ESC [ sequences for the
// arrows across calls.
type keyDecoder struct {
	esc int // 0 plain, 1 after ESC, 2 after ESC [
}

func (d *keyDecoder) feed(b byte) key {
	switch d.esc {
	case 1:
		if b == '[' {
			d.esc = 2
			return keyNone
		}
		d.esc = 0
	case 2:
		d.esc = 0
		switch b {
		case 'C':
			return keyForward
		case 'D':
			return keyBack
		}
		return keyNone
	}

	switch b {
	case 0x1b:
		d.esc = 1
	case ' ':
		return keyPause
	case '+', '=':
		return keyVolumeUp
	case '-', '_':
		return keyVolumeDown
	case 'n':
		return keyNext
	case 'q', 0x03: // Ctrl-C arrives as a byte in raw mode
		return keyQuit
	}

	return keyNone
}

// readKeys polls raw stdin and decodes bytes into key events. The
// returned func stops the goroutine and waits for it to exit.
func readKeys(fd int, keys chan<- key) func() {
	if err := syscall.SetNonblock(fd, true); err != nil {
		slog.Error("audpod: nonblocking stdin failed", "err", err)
		return func() {}
	}

	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)

		var dec keyDecoder
		buf := make([]byte, 1)

		for {
			select {
			case <-stop:
				return
			default:
			}

			n, err := syscall.Read(fd, buf)
			if n > 0 {
				if k := dec.feed(buf[0]); k != keyNone {
					select {
					case keys <- k:
					default: // UI loop is behind, drop the key
					}
				}
				continue
			}
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK || n == 0 {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			if err != nil {
				return
			}
		}
	}()

	return func() {
		close(stop)
		<-done
		syscall.SetNonblock(fd, false)
	}
}
