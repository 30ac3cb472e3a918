// SPDX-License-Identifier: EPL-2.0

// Package audio defines the sample stream contract the player is built
// on, plus the small processors that condition a stream for playback.
//
// Everything produces and consumes interleaved float32 samples in
// [-1, 1]. Decoders normalize whatever their container stores into that
// form, so the rest of the pipeline never deals with bit depths or byte
// order.
//
// # Sources
//
// A Source is a pull stream. ReadSamples fills dst and reports how many
// values it wrote; io.EOF with n == 0 ends the stream:
//
//	buf := make([]float32, 4096)
//	for {
//	    n, err := src.ReadSamples(buf)
//	    use(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//
// Counts are values, not frames; stereo interleaves left and right, so
// one frame takes two values.
//
// # Conditioning for playback
//
// Three processors wrap a Source and are themselves Sources, so they
// stack in whatever order the device needs:
//
//	resampled := audio.NewResampler(src, 44100)
//	stereo := audio.NewStereoMixer(resampled)
//	out := audio.NewGain(stereo, 0.8)
//
// Resampler moves a stream to the device rate with Catmull-Rom
// interpolation. StereoMixer hands stereo through untouched and
// duplicates mono into both channels. Gain scales by a level in [0, 1]
// and may be adjusted from another goroutine mid-read, which is what a
// volume key does.
//
// # Decoders
//
// A Decoder probes seekable input and produces a Source. The Registry
// maps format keys to decoders so the player can pick one by file
// extension:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	reg.Register("mp3", mp3.Decoder{})
package audio
