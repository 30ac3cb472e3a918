// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams through
// github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes to floating point natively, so ReadSamples hands the
// decoder's output through without a scaling step: interleaved float32
// in [-1, 1] at the file's own rate and channel count. Only whole
// frames are returned; a stereo source given an odd-sized buffer
// leaves the final slot untouched.
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// Mono recordings are common in this format. A stereo output device
// wants them doubled up:
//
//	out := audio.NewStereoMixer(src)
//
// # Duration
//
// The track length comes from the stream's final granule position, so
// sources opened from a seekable reader report it exactly. A truncated
// stream missing its end-of-stream page reports 0.
package vorbis
