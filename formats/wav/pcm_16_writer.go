// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WritePCM16 writes 16-bit PCM WAV at sampleRate to w. samples holds
// interleaved int16 PCM for the given channel count. The writer streams,
// no seeking back is needed, so it works with pipes and sockets.
func WritePCM16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels < 1 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedWavLayout, channels)
	}

	const bitDepth = 16
	frameBytes := channels * bitDepth / 8
	dataBytes := 2 * len(samples)

	// The canonical 44 byte header: RIFF container, PCM fmt chunk, data
	// chunk marker.
	var hdr [44]byte
	le := binary.LittleEndian

	copy(hdr[0:], "RIFF")
	le.PutUint32(hdr[4:], uint32(36+dataBytes))
	copy(hdr[8:], "WAVE")

	copy(hdr[12:], "fmt ")
	le.PutUint32(hdr[16:], 16) // fmt chunk payload size
	le.PutUint16(hdr[20:], 1)  // uncompressed PCM
	le.PutUint16(hdr[22:], uint16(channels))
	le.PutUint32(hdr[24:], uint32(sampleRate))
	le.PutUint32(hdr[28:], uint32(sampleRate*frameBytes)) // byte rate
	le.PutUint16(hdr[32:], uint16(frameBytes))            // block align
	le.PutUint16(hdr[34:], bitDepth)

	copy(hdr[36:], "data")
	le.PutUint32(hdr[40:], uint32(dataBytes))

	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("%w", err)
	}
	if len(samples) == 0 {
		return nil
	}

	// Encode in slices of at most 8192 samples so large payloads don't
	// need a full-size byte buffer
	const chunk = 8192
	buf := make([]byte, 2*min(len(samples), chunk))

	for off := 0; off < len(samples); off += chunk {
		part := samples[off:min(off+chunk, len(samples))]
		buf = buf[:2*len(part)]

		for i, s := range part {
			le.PutUint16(buf[2*i:], uint16(s))
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
