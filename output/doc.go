// SPDX-License-Identifier: EPL-2.0

// Package output plays audio sources through a playback sink.
//
// Two sinks are provided:
//   - Oto: plays through the default audio device using ebitengine/oto
//   - Null: drains sources without a device, for headless use and tests
//
// # Playing Audio
//
// Open a device sink once and reuse it for every track:
//
//	sink, err := output.NewOto(44100)
//	if err != nil {
//	    // No audio device available
//	}
//
//	if err := sink.Start(source); err != nil {
//	    // Handle error
//	}
//
//	sink.Pause()
//	sink.Resume()
//	sink.SetVolume(0.5)
//
// Starting a new source replaces the current one. The sink reads
// samples on its own schedule; the caller keeps ownership of the
// source and closes it after playback.
//
// # Sample Format
//
// The device runs in stereo float32. Sources with a different sample
// rate or channel count are adapted transparently with audio.Resampler
// and audio.StereoMixer, so any audio.Source can be started directly.
//
// # Device Constraints
//
// The operating system allows one oto context per process. Create a
// single Oto and keep it for the lifetime of the program; Close stops
// playback but cannot release the device context.
//
// # Headless Operation
//
// Null consumes sources on a background goroutine. It implements the
// same Sink interface, so code under test or running without audio
// hardware behaves identically:
//
//	sink := output.NewNull()
//	sink.Start(source)
//	<-sink.Done()
//
// Pace throttles the drain rate; leaving it zero consumes the source
// as fast as it can be read.
package output
