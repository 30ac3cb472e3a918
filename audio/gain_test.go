package audio

import (
	"io"
	"math"
	"sync"
	"testing"

	"github.com/audpod/audpod/internal/streamtest"
)

func TestGain_Metadata(t *testing.T) {
	t.Parallel()

	src := streamtest.NewSilentSource(44100, 2, 1000)
	gain := NewGain(src, 0.7)

	if gain.SampleRate() != 44100 {
		t.Errorf("Gain.SampleRate() = %d, want 44100", gain.SampleRate())
	}
	if gain.Channels() != 2 {
		t.Errorf("Gain.Channels() = %d, want 2", gain.Channels())
	}
	if gain.BufSize() != src.BufSize() {
		t.Errorf("Gain.BufSize() = %d, want %d", gain.BufSize(), src.BufSize())
	}
}

func TestGain_ScalesSamples(t *testing.T) {
	t.Parallel()

	src := streamtest.NewConstantSource(44100, 2, 100, 0.8)
	gain := NewGain(src, 0.5)

	buf := make([]float32, 50)
	n, err := gain.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n == 0 {
		t.Fatal("ReadSamples() returned 0 samples")
	}

	for i := range n {
		if math.Abs(float64(buf[i]-0.4)) > 1e-6 {
			t.Fatalf("buf[%d] = %v, want 0.4", i, buf[i])
		}
	}
}

func TestGain_UnityLeavesSamplesUntouched(t *testing.T) {
	t.Parallel()

	src := streamtest.NewConstantSource(44100, 1, 100, 0.8)
	gain := NewGain(src, 1.0)

	buf := make([]float32, 100)
	n, _ := gain.ReadSamples(buf)
	for i := range n {
		if buf[i] != 0.8 {
			t.Fatalf("buf[%d] = %v, want exactly 0.8 at unity gain", i, buf[i])
		}
	}
}

func TestGain_MuteSilences(t *testing.T) {
	t.Parallel()

	src := streamtest.NewSineSource(44100, 2, 1000, 440.0)
	gain := NewGain(src, 0)

	buf := make([]float32, 512)
	n, err := gain.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}

	for i := range n {
		if buf[i] != 0 {
			t.Fatalf("buf[%d] = %v, want 0 when muted", i, buf[i])
		}
	}
}

func TestGain_ClampsLevel(t *testing.T) {
	t.Parallel()

	src := streamtest.NewSilentSource(44100, 1, 10)
	gain := NewGain(src, 2.5)

	if gain.Level() != 1.0 {
		t.Errorf("Level() after NewGain(2.5) = %v, want 1.0", gain.Level())
	}

	gain.SetLevel(-0.3)
	if gain.Level() != 0.0 {
		t.Errorf("Level() after SetLevel(-0.3) = %v, want 0.0", gain.Level())
	}

	gain.SetLevel(0.25)
	if gain.Level() != 0.25 {
		t.Errorf("Level() after SetLevel(0.25) = %v, want 0.25", gain.Level())
	}
}

func TestGain_ConcurrentLevelChanges(t *testing.T) {
	t.Parallel()

	src := streamtest.NewConstantSource(44100, 2, 200_000, 1.0)
	gain := NewGain(src, 1.0)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 1000 {
			gain.SetLevel(float64(i%11) / 10)
		}
	}()

	// Read while the level moves; every sample must stay inside the range
	// some level in [0,1] could have produced.
	buf := make([]float32, 1024)
	for {
		n, err := gain.ReadSamples(buf)
		for i := range n {
			if buf[i] < 0 || buf[i] > 1 {
				t.Fatalf("buf[%d] = %v, outside [0, 1]", i, buf[i])
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	wg.Wait()
}

func TestGain_PropagatesEOF(t *testing.T) {
	t.Parallel()

	src := streamtest.NewConstantSource(8000, 1, 100, 0.5)
	gain := NewGain(src, 0.5)

	var total int
	buf := make([]float32, 64)
	for {
		n, err := gain.ReadSamples(buf)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if total != 100 {
		t.Errorf("drained %d samples, want 100", total)
	}
}
