// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams through github.com/hajimehoshi/go-mp3.
//
// Decoder adapts go-mp3 to the audio.Source contract; the player
// registers it under the "mp3" extension.
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// go-mp3 emits 16-bit little-endian PCM and always two interleaved
// channels, mono files included, so Channels reports 2 for every
// source. ReadSamples converts the bytes to float32 in [-1, 1]. The
// byte scratch behind the conversion is reused across calls and grows
// only when a read asks for more than it has before.
//
// The sample rate is whatever the file was encoded at, typically
// 44100 or 48000 Hz. Feeding a playback device usually means
// conditioning the stream first:
//
//	out := audio.NewGain(audio.NewResampler(src, 48000), 0.8)
//
// # Duration
//
// Sources report the total track length when go-mp3 can size the
// stream, which requires a seekable input:
//
//	if d, ok := src.(interface{ Duration() time.Duration }); ok {
//	    length := d.Duration() // 0 when the stream cannot be sized
//	}
//
// Decoding is strictly forward. MP3 frames have no fixed bytes-per-
// frame relationship, so this package has no SeekFrame; WAV is the
// format that seeks.
package mp3
