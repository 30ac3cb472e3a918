// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files, the big-endian relative of WAV that
// Apple tooling produces, through github.com/go-audio/aiff.
//
// Decode takes an io.ReadSeeker because the COMM chunk describing the
// stream may sit after the sound data; go-audio walks the chunk list to
// find it. Byte order, the 80-bit extended sample rate field, and the
// other container quirks are go-audio's problem, not the caller's.
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// Only 16-bit PCM files are accepted. Other depths and AIFF-C
// compression fail up front:
//
//	if errors.Is(err, aiff.ErrOnlyPCM16bitSupported) {
//	    // ask for a 16-bit export
//	}
//
// ReadSamples scales the decoded integers to float32 in [-1, 1]. The
// integer staging buffer is reused between calls and grows only when a
// larger read comes in.
//
// # Duration
//
// The COMM chunk carries the total sample frame count, so Duration is
// exact rather than estimated from byte sizes. A source whose header
// cannot be read reports 0.
package aiff
