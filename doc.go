// SPDX-License-Identifier: EPL-2.0

// Package audpod is a streaming music player built around a read-ahead
// buffer. It decodes WAV, MP3, Ogg Vorbis and AIFF tracks from any
// storage backend and plays them through a speaker or a headless sink,
// keeping memory flat no matter how large the file is.
//
// # Quick Start
//
// The Player ties the pieces together. Give it a sink, load a track,
// play:
//
//	f, _ := os.Open("album/track.mp3")
//	h, _ := storage.NewFile(f)
//
//	sink, _ := output.NewOto(48000)
//	player, _ := audpod.NewPlayer(sink, audpod.PlayerOptions{})
//	defer player.Close()
//
//	player.Load(h, f.Name())
//	player.Play()
//
// Load picks the decoder from the file extension, binds the handle to
// the player's read-ahead buffer and builds the playback chain. Play,
// Pause, Stop, SetVolume and SkipTo drive it from there.
//
// # Headless Use
//
// output.Null consumes a source without an audio device. Tests and
// batch tools use it to run the whole pipeline at memory speed:
//
//	sink := output.NewNull()
//	player, _ := audpod.NewPlayer(sink, audpod.PlayerOptions{})
//	player.Load(storage.NewMem(wavData), "track.wav")
//	player.Play()
//	<-sink.Done()
//
// # Package Layout
//
// Each stage of the pipeline lives in its own package:
//
//   - storage: byte-level track access (Mem, File) behind the Handle
//     interface
//   - readbuf: the read-ahead buffer that streams a Handle through a
//     fixed slot pool
//   - formats/wav, formats/mp3, formats/vorbis, formats/aiff: decoders
//     producing audio.Source streams
//   - audio: the Source interface and processing stages (Gain,
//     Resampler, StereoMixer) plus the format Registry
//   - output: sinks (Oto for the speaker, Null for headless)
//   - display: the character-cell status screen model
//   - power: battery monitoring and backlight dimming
//   - config: YAML profiles wiring the above together
//
// The root package holds only the Player facade; everything underneath
// is usable on its own.
//
// # Supported Formats
//
// DefaultRegistry maps extensions to decoders: "wav", "mp3", "ogg",
// "aiff" and "aif". Register more on an audio.Registry and pass it via
// PlayerOptions to extend the set.
//
// # Seeking
//
// SkipTo jumps to a position in the current track. WAV sources
// reposition to the exact PCM frame; compressed formats report
// ErrSeekUnsupported because their frames have no fixed byte offsets.
// Position always reflects samples actually consumed, so it stays
// accurate across skips, pauses and sink restarts.
//
// # Concurrency
//
// All Player methods are safe for concurrent use. The sink drains the
// playback chain on its own goroutine; the player serializes control
// calls against it internally, so a UI loop and a watchdog can share
// one Player without coordination.
package audpod
