// SPDX-License-Identifier: EPL-2.0

package audpod

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/audpod/audpod/audio"
	"github.com/audpod/audpod/formats/aiff"
	"github.com/audpod/audpod/formats/mp3"
	"github.com/audpod/audpod/formats/vorbis"
	"github.com/audpod/audpod/formats/wav"
	"github.com/audpod/audpod/output"
	"github.com/audpod/audpod/readbuf"
	"github.com/audpod/audpod/storage"
)

// DefaultRegistry returns a registry with every built-in format
// registered under its usual file extensions.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})

	return r
}

// Info describes the loaded track.
type Info struct {
	Name       string // file name as given to Load
	Format     string // registry key, e.g. "wav"
	SampleRate int    // Hz
	Channels   int
	Duration   time.Duration // 0 when the stream does not say
}

// frameSeeker is implemented by PCM sources that can jump to an exact
// sample frame. The returned frame is where the stream actually landed
// (seeks past the end clamp).
type frameSeeker interface {
	SeekFrame(frame int64) (int64, error)
}

// durationer is implemented by sources that know their total length.
type durationer interface {
	Duration() time.Duration
}

type playState int

const (
	stateStopped playState = iota
	statePlaying
	statePaused
)

// PlayerOptions configures a Player. Zero values select defaults.
type PlayerOptions struct {
	// Buffer is the read-ahead geometry. The zero value selects
	// readbuf.DefaultOptions.
	Buffer readbuf.Options

	// Registry maps file extensions to decoders. Nil selects
	// DefaultRegistry.
	Registry *audio.Registry

	// Logger receives lifecycle events. Nil means slog.Default.
	Logger *slog.Logger
}

// Player ties the pipeline together the way the device's main loop
// does: storage feeds a read-ahead buffer, a format decoder pulls from
// the buffer's stream view, gain scales the samples and a sink plays
// them.
//
// All methods are safe for concurrent use. The sink reads samples on
// its own goroutine; the player serializes those reads with control
// calls, so pausing, seeking and stopping never race the stream.
type Player struct {
	mu  sync.Mutex
	log *slog.Logger

	buf      *readbuf.Buffer
	registry *audio.Registry
	sink     output.Sink

	sess   *session
	src    audio.Source
	gain   *audio.Gain
	info   Info
	state  playState
	volume int

	closed bool
}

// NewPlayer builds a player around the given sink. The sink is owned
// by the player from here on and is closed together with it.
func NewPlayer(sink output.Sink, opts PlayerOptions) (*Player, error) {
	if sink == nil {
		return nil, ErrNoSink
	}
	if opts.Buffer == (readbuf.Options{}) {
		opts.Buffer = readbuf.DefaultOptions()
	}
	if opts.Registry == nil {
		opts.Registry = DefaultRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	buf, err := readbuf.New(opts.Buffer)
	if err != nil {
		return nil, err
	}

	return &Player{
		log:      opts.Logger,
		buf:      buf,
		registry: opts.Registry,
		sink:     sink,
		volume:   100,
	}, nil
}

// Load binds the handle to the read-ahead buffer and decodes a track
// from it, replacing whatever was loaded before. The decoder is picked
// by the extension of name; streaming starts at the handle's current
// offset. Loading does not start playback.
func (p *Player) Load(h storage.Handle, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPlayerClosed
	}
	p.stopLocked()

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	dec, ok := p.registry.Get(format)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := p.buf.Bind(h); err != nil {
		return fmt.Errorf("%w", err)
	}

	src, err := dec.Decode(p.buf.Reader())
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	info := Info{
		Name:       name,
		Format:     format,
		SampleRate: src.SampleRate(),
		Channels:   src.Channels(),
	}
	if d, ok := src.(durationer); ok {
		info.Duration = d.Duration()
	}

	p.src = src
	p.gain = audio.NewGain(src, levelFor(p.volume))
	p.sess = newSession(p.gain, src.SampleRate(), src.Channels(), p.log)
	p.info = info

	p.log.Info("player: track loaded", "name", name, "format", format,
		"rate", info.SampleRate, "channels", info.Channels, "duration", info.Duration)

	return nil
}

// Play starts or resumes playback of the loaded track.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPlayerClosed
	}
	if p.sess == nil {
		return ErrNoTrack
	}

	if p.state == statePaused {
		p.sink.Resume()
		p.state = statePlaying
		p.log.Info("player: resumed", "name", p.info.Name)
		return nil
	}
	if p.state == statePlaying && p.sink.Playing() {
		return nil
	}

	// Stopped, or the sink drained the stream: start it (again) from
	// the session's current position.
	if err := p.sink.Start(p.sess); err != nil {
		return fmt.Errorf("%w", err)
	}
	p.state = statePlaying
	p.log.Info("player: playing", "name", p.info.Name, "volume", p.volume)

	return nil
}

// Pause suspends playback mid-track. A later Play picks up where the
// stream left off.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPlayerClosed
	}
	if p.state != statePlaying {
		return nil
	}

	p.sink.Pause()
	p.state = statePaused
	p.log.Debug("player: paused", "name", p.info.Name)

	return nil
}

// Stop ends playback and unloads the track. The player is idle
// afterwards; Load a track to play again.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPlayerClosed
	}
	if p.sess == nil {
		return nil
	}

	name := p.info.Name
	p.stopLocked()
	p.log.Info("player: stopped", "name", name)

	return nil
}

// Playing reports whether the sink is actively consuming samples.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state == statePlaying && p.sink.Playing()
}

// Paused reports whether playback is suspended mid-track.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state == statePaused
}

// SetVolume sets playback volume on a 0..100 scale, taking effect
// immediately. The scale tapers quadratically so steps near the bottom
// stay audible.
func (p *Player) SetVolume(v int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = min(max(v, 0), 100)
	if p.gain != nil {
		p.gain.SetLevel(levelFor(p.volume))
	}
}

// Volume reports the current 0..100 volume.
func (p *Player) Volume() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.volume
}

// Position reports how far into the track playback has come. It counts
// samples actually handed to the sink, so it is exact for PCM and
// decoded-stream accurate for lossy formats.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sess == nil {
		return 0
	}
	return p.sess.position()
}

// Duration reports the total length of the loaded track, or 0 when the
// stream does not carry enough to know.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.info.Duration
}

// Track describes the loaded track. The zero Info means nothing is
// loaded.
func (p *Player) Track() Info {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.info
}

// SkipTo jumps playback to the given point in the track. Only PCM
// sources support it; compressed formats report ErrSeekUnsupported.
func (p *Player) SkipTo(d time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPlayerClosed
	}
	if p.sess == nil {
		return ErrNoTrack
	}
	fs, ok := p.src.(frameSeeker)
	if !ok {
		return ErrSeekUnsupported
	}

	if d < 0 {
		d = 0
	}
	frame := int64(d * time.Duration(p.info.SampleRate) / time.Second)

	// Holding the session lock keeps the sink's reader out of the
	// stream while the decoder and buffer reposition underneath it.
	p.sess.mu.Lock()
	defer p.sess.mu.Unlock()

	landed, err := fs.SeekFrame(frame)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	p.sess.consumed = landed * int64(p.info.Channels)
	p.log.Debug("player: skipped", "name", p.info.Name, "to", d)

	return nil
}

// Close stops playback and releases the buffer and the sink. It is
// idempotent; every other method fails with ErrPlayerClosed afterwards.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.stopLocked()

	err := p.sink.Close()
	if berr := p.buf.Close(); err == nil {
		err = berr
	}
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// stopLocked halts the session so the sink's next read sees EOF, then
// releases the source chain. Callers hold p.mu.
func (p *Player) stopLocked() {
	if p.sess == nil {
		return
	}

	p.sess.halt()
	if p.state == statePaused {
		// A paused sink is not pulling; resume it so it drains the
		// halted session and winds down.
		p.sink.Resume()
	}
	if err := p.gain.Close(); err != nil {
		p.log.Debug("player: closing source chain", "err", err)
	}

	p.sess = nil
	p.src = nil
	p.gain = nil
	p.info = Info{}
	p.state = stateStopped
}

// levelFor maps the 0..100 volume scale to a gain level. The square
// taper keeps steps near the bottom audible instead of cramming the
// useful range into the top quarter.
func levelFor(v int) float64 {
	f := float64(v) / 100
	return f * f
}

// session is the audio.Source handed to the sink. It serializes the
// sink's reads with the player's control calls and counts consumed
// samples for Position.
type session struct {
	mu       sync.Mutex
	src      audio.Source // gain chain head
	rate     int
	channels int
	consumed int64 // float32 values handed to the sink
	halted   bool
	log      *slog.Logger
}

func newSession(src audio.Source, rate, channels int, log *slog.Logger) *session {
	return &session{src: src, rate: rate, channels: channels, log: log}
}

func (s *session) SampleRate() int { return s.rate }
func (s *session) Channels() int   { return s.channels }
func (s *session) BufSize() int    { return s.src.BufSize() }

// Close is a no-op: the chain belongs to the player, not the sink.
func (s *session) Close() error { return nil }

func (s *session) ReadSamples(dst []float32) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.halted {
		return 0, io.EOF
	}

	n, err := s.src.ReadSamples(dst)
	s.consumed += int64(n)
	if err != nil && err != io.EOF {
		s.log.Error("player: stream failed", "err", err)
	}

	return n, err
}

// halt makes every later read report EOF. Any in-flight read finishes
// first; afterwards the sink winds itself down.
func (s *session) halt() {
	s.mu.Lock()
	s.halted = true
	s.mu.Unlock()
}

func (s *session) position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rate <= 0 || s.channels <= 0 {
		return 0
	}
	frames := s.consumed / int64(s.channels)

	return time.Duration(frames) * time.Second / time.Duration(s.rate)
}
