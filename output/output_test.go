package output

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/audpod/audpod/internal/streamtest"
)

var (
	_ Sink = (*Oto)(nil)
	_ Sink = (*Null)(nil)
)

// failingSource always errors, for exercising the failure paths.
type failingSource struct{}

func (f *failingSource) SampleRate() int { return 44100 }
func (f *failingSource) Channels() int   { return 1 }
func (f *failingSource) BufSize() int    { return 64 }
func (f *failingSource) Close() error    { return nil }

func (f *failingSource) ReadSamples(dst []float32) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func waitDone(t *testing.T, sink *Null) {
	t.Helper()

	select {
	case <-sink.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("sink did not finish draining")
	}
}

func TestNull_DrainsSource(t *testing.T) {
	t.Parallel()

	sink := NewNull()
	defer sink.Close()

	src := streamtest.NewSilentSource(44100, 2, 1000)

	if err := sink.Start(src); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	waitDone(t, sink)

	// 1000 frames of stereo
	if got := sink.Drained(); got != 2000 {
		t.Errorf("Drained() = %d, want 2000", got)
	}

	if sink.Playing() {
		t.Error("Playing() = true after the source was drained")
	}
}

func TestNull_PlayingLifecycle(t *testing.T) {
	t.Parallel()

	sink := NewNull()
	sink.Pace = 5 * time.Millisecond
	defer sink.Close()

	if sink.Playing() {
		t.Error("Playing() = true before Start")
	}

	src := streamtest.NewSilentSource(44100, 2, 200000)
	if err := sink.Start(src); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if !sink.Playing() {
		t.Error("Playing() = false after Start")
	}

	sink.Pause()
	if sink.Playing() {
		t.Error("Playing() = true while paused")
	}

	sink.Resume()
	if !sink.Playing() {
		t.Error("Playing() = false after Resume")
	}

	sink.Close()
	if sink.Playing() {
		t.Error("Playing() = true after Close")
	}
}

func TestNull_StartReplacesSource(t *testing.T) {
	t.Parallel()

	sink := NewNull()
	sink.Pace = 10 * time.Millisecond
	defer sink.Close()

	first := streamtest.NewSilentSource(44100, 1, 1000000)
	if err := sink.Start(first); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Replace the long source with one that drains in a single read
	second := streamtest.NewSilentSource(44100, 2, 1000)
	if err := sink.Start(second); err != nil {
		t.Fatalf("second Start() error = %v", err)
	}

	waitDone(t, sink)

	if got := sink.Drained(); got < 2000 {
		t.Errorf("Drained() = %d, want at least 2000", got)
	}
}

func TestNull_DrainError(t *testing.T) {
	t.Parallel()

	sink := NewNull()
	defer sink.Close()

	if err := sink.Start(&failingSource{}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// The drain goroutine exits on the read error
	waitDone(t, sink)

	if sink.Playing() {
		t.Error("Playing() = true after a drain failure")
	}
}

func TestNull_NilSource(t *testing.T) {
	t.Parallel()

	sink := NewNull()
	defer sink.Close()

	err := sink.Start(nil)
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("Start(nil) error = %v, want ErrNoSource", err)
	}
}

func TestNull_CloseIdempotent(t *testing.T) {
	t.Parallel()

	sink := NewNull()

	if err := sink.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}

	if err := sink.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestNull_StartAfterClose(t *testing.T) {
	t.Parallel()

	sink := NewNull()
	sink.Close()

	err := sink.Start(streamtest.NewSilentSource(44100, 1, 10))
	if !errors.Is(err, ErrSinkClosed) {
		t.Errorf("Start() after Close error = %v, want ErrSinkClosed", err)
	}
}

func TestNull_DoneNilBeforeStart(t *testing.T) {
	t.Parallel()

	sink := NewNull()
	defer sink.Close()

	if sink.Done() != nil {
		t.Error("Done() != nil before the first Start")
	}
}

func TestNull_Volume(t *testing.T) {
	t.Parallel()

	sink := NewNull()
	defer sink.Close()

	if got := sink.Volume(); got != 1.0 {
		t.Errorf("Volume() = %f, want 1.0 by default", got)
	}

	sink.SetVolume(0.3)
	if got := sink.Volume(); got != 0.3 {
		t.Errorf("Volume() = %f, want 0.3", got)
	}

	sink.SetVolume(-1)
	if got := sink.Volume(); got != 0 {
		t.Errorf("Volume() = %f, want 0 after clamping", got)
	}

	sink.SetVolume(2)
	if got := sink.Volume(); got != 1 {
		t.Errorf("Volume() = %f, want 1 after clamping", got)
	}
}

func TestSourceReader_EncodesLittleEndianFloat32(t *testing.T) {
	t.Parallel()

	r := &sourceReader{
		src:       streamtest.NewConstantSource(44100, 1, 8, 0.5),
		sampleBuf: make([]float32, 8),
	}

	p := make([]byte, 16)
	n, err := r.Read(p)

	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if n != 16 {
		t.Fatalf("Read() n = %d, want 16", n)
	}

	for i := 0; i < n; i += 4 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(p[i:]))
		if got != 0.5 {
			t.Errorf("sample at byte %d = %f, want 0.5", i, got)
		}
	}
}

func TestSourceReader_EOF(t *testing.T) {
	t.Parallel()

	r := &sourceReader{
		src:       streamtest.NewConstantSource(44100, 1, 3, 0.25),
		sampleBuf: make([]float32, 16),
	}

	p := make([]byte, 40)

	n, err := r.Read(p)
	if err != io.EOF {
		t.Errorf("Read() error = %v, want io.EOF", err)
	}
	if n != 12 {
		t.Errorf("Read() n = %d, want 12", n)
	}

	n, err = r.Read(p)
	if err != io.EOF {
		t.Errorf("second Read() error = %v, want io.EOF", err)
	}
	if n != 0 {
		t.Errorf("second Read() n = %d, want 0", n)
	}
}

func TestSourceReader_ShortBuffer(t *testing.T) {
	t.Parallel()

	r := &sourceReader{
		src:       streamtest.NewConstantSource(44100, 1, 8, 0.5),
		sampleBuf: make([]float32, 8),
	}

	// Too short for even one sample
	p := make([]byte, 3)
	n, err := r.Read(p)

	if err != nil {
		t.Errorf("Read() error = %v, want nil", err)
	}

	if n != 0 {
		t.Errorf("Read() n = %d, want 0", n)
	}
}

func TestSourceReader_GrowsScratchBuffer(t *testing.T) {
	t.Parallel()

	r := &sourceReader{
		src:       streamtest.NewConstantSource(44100, 1, 100, 0.5),
		sampleBuf: make([]float32, 1),
	}

	p := make([]byte, 64)
	n, err := r.Read(p)

	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if n != 64 {
		t.Errorf("Read() n = %d, want 64", n)
	}
}

func TestSourceReader_ReadError(t *testing.T) {
	t.Parallel()

	r := &sourceReader{
		src:       &failingSource{},
		sampleBuf: make([]float32, 16),
	}

	p := make([]byte, 64)
	_, err := r.Read(p)

	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Read() error = %v, want wrapped io.ErrUnexpectedEOF", err)
	}
}
