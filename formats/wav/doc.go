// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes 16-bit PCM WAV files.
//
// Decoding rides on github.com/go-audio/wav, which handles the RIFF
// chunk walk and the fmt header. Decode validates the container,
// rejects anything that is not 16-bit PCM, and positions the stream at
// the start of the data chunk:
//
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// ReadSamples scales the decoded integers to float32 in [-1, 1],
// interleaved by channel. Failures carry one of the package sentinels:
// ErrNotWavFile, ErrOnlyPCM16bitSupported or ErrUnsupportedWavLayout,
// matchable with errors.Is through any wrapping.
//
// # Seeking
//
// PCM frames sit at fixed byte offsets inside the data chunk, which
// makes WAV the one format here that can jump without re-decoding.
// SeekFrame repositions the stream to a sample frame, clamps past-end
// targets to the end, and reports the frame it landed on. Player code
// probes for it at runtime since no other decoder has it:
//
//	if s, ok := src.(interface{ SeekFrame(int64) (int64, error) }); ok {
//	    s.SeekFrame(int64(10 * src.SampleRate())) // ten seconds in
//	}
//
// A source built on a non-seeking reader returns ErrNotSeekable.
//
// # Writing
//
// WritePCM16 is the counterpart: it streams int16 samples to any
// io.Writer behind a complete 44-byte header, no seeking required, so
// pipes and sockets work as targets:
//
//	err := wav.WritePCM16(out, 44100, 2, samples)
//
// Payload length must be known up front; that is the price of a
// forward-only writer.
package wav
