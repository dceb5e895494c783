package render

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lionel-rowe/chiptunes/internal/notation"
	"github.com/lionel-rowe/chiptunes/internal/waveform"
)

// flat ignores phase and holds a constant level.
func flat(x float64) float64 { return 1 }

func TestNoteLengthFormula(t *testing.T) {
	cases := []struct {
		rate  int
		units float64
		want  int
	}{
		{1000, 1, 100},
		{1000, 2, 200},
		{1000, 3, 300},
		{44100, 3, 13230},
		{8000, 0.5, 400},
	}
	for _, c := range cases {
		buf := Note(flat, notation.Event{Frequency: 440, Duration: c.units}, c.rate, 1, 0)
		if len(buf) != c.want {
			t.Errorf("rate %d units %v: got %d samples, want %d", c.rate, c.units, len(buf), c.want)
		}
	}
}

func TestNoteSineFollowsFormula(t *testing.T) {
	ev := notation.Event{Frequency: 440, Duration: 1}
	buf := Note(waveform.Sine, ev, 1000, 1, 0)
	if len(buf) != 100 {
		t.Fatalf("expected 100 samples, got %d", len(buf))
	}
	for i, s := range buf {
		want := math.Sin(2 * math.Pi * float64(i) * 440 / 1000)
		if math.Abs(float64(s)-want) > 1e-6 {
			t.Fatalf("sample %d: got %v, want %v", i, s, want)
		}
	}
}

func TestNoteSilenceIsZeroForEveryGenerator(t *testing.T) {
	fns := map[string]waveform.Func{
		"sine":       waveform.Sine,
		"square":     waveform.Square,
		"sawtooth":   waveform.Sawtooth,
		"triangle":   waveform.Triangle,
		"whiteNoise": waveform.WhiteNoise(rand.New(rand.NewSource(3))),
	}
	ev := notation.Event{Frequency: notation.FreqSilence, Duration: 2}
	for name, fn := range fns {
		t.Run(name, func(t *testing.T) {
			buf := Note(fn, ev, 1000, 1, 0.5)
			if len(buf) != 200 {
				t.Fatalf("expected 200 samples, got %d", len(buf))
			}
			for i, s := range buf {
				if s != 0 {
					t.Fatalf("sample %d: got %v, want 0", i, s)
				}
			}
		})
	}
}

func TestNoteNoiseTrigger(t *testing.T) {
	ev := notation.Event{Frequency: notation.FreqNoise, Duration: 1}
	buf := Note(waveform.WhiteNoise(rand.New(rand.NewSource(9))), ev, 1000, 1, 0)
	if len(buf) != 100 {
		t.Fatalf("expected 100 samples, got %d", len(buf))
	}
	// Phase is exactly 0 only at the first sample.
	if buf[0] != 0 {
		t.Fatalf("first sample: got %v, want exactly 0", buf[0])
	}
	nonZero := 0
	for _, s := range buf[1:] {
		if s < -1 || s >= 1 {
			t.Fatalf("sample out of [-1,1): %v", s)
		}
		if s != 0 {
			nonZero++
		}
	}
	if nonZero == 0 {
		t.Fatal("noise rendered all zeros")
	}
}

func TestNoteFadeRamp(t *testing.T) {
	buf := Note(flat, notation.Event{Frequency: 440, Duration: 1}, 1000, 1, 1)
	if buf[0] != 1 {
		t.Fatalf("first sample: got %v, want 1", buf[0])
	}
	for i, s := range buf {
		want := float32(1 - float64(i)/float64(len(buf)))
		if s != want {
			t.Fatalf("sample %d: got %v, want %v", i, s, want)
		}
	}
	// Fade beyond 1 inverts the tail instead of clamping.
	buf = Note(flat, notation.Event{Frequency: 440, Duration: 1}, 1000, 1, 2)
	if last := buf[len(buf)-1]; last >= 0 {
		t.Fatalf("overdriven fade tail: got %v, want negative", last)
	}
}

func TestNoteVolumeScales(t *testing.T) {
	half := Note(flat, notation.Event{Frequency: 440, Duration: 1}, 1000, 0.5, 0)
	for i, s := range half {
		if s != 0.5 {
			t.Fatalf("sample %d: got %v, want 0.5", i, s)
		}
	}
	// Negative volume flips the sign rather than erroring.
	neg := Note(flat, notation.Event{Frequency: 440, Duration: 1}, 1000, -1, 0)
	if neg[0] != -1 {
		t.Fatalf("negative volume: got %v, want -1", neg[0])
	}
}

func TestPartLeadInAndConcatenation(t *testing.T) {
	events := []notation.Event{
		{Frequency: 440, Duration: 1},
		{Frequency: 440, Duration: 2},
	}
	buf := Part(events, flat, 1000, 1, 0)
	if want := LeadInSamples + 100 + 200; len(buf) != want {
		t.Fatalf("expected %d samples, got %d", want, len(buf))
	}
	for i := 0; i < LeadInSamples; i++ {
		if buf[i] != 0 {
			t.Fatalf("lead-in sample %d: got %v, want 0", i, buf[i])
		}
	}
	for i := LeadInSamples; i < len(buf); i++ {
		if buf[i] != 1 {
			t.Fatalf("note sample %d: got %v, want 1", i, buf[i])
		}
	}
}

func TestPartWithNoEventsIsLeadInOnly(t *testing.T) {
	buf := Part(nil, flat, 1000, 1, 0)
	if len(buf) != LeadInSamples {
		t.Fatalf("expected %d samples, got %d", LeadInSamples, len(buf))
	}
}

func TestMixPadsShorterParts(t *testing.T) {
	a := make([]float32, 50)
	b := make([]float32, 80)
	for i := range a {
		a[i] = 0.5
	}
	for i := range b {
		b[i] = 0.25
	}
	out := Mix([][]float32{a, b})
	if len(out) != 80 {
		t.Fatalf("expected 80 samples, got %d", len(out))
	}
	for i := 0; i < 50; i++ {
		if out[i] != 0.75 {
			t.Fatalf("sample %d: got %v, want 0.75", i, out[i])
		}
	}
	// Past the shorter part the longer one plays alone.
	for i := 50; i < 80; i++ {
		if out[i] != b[i] {
			t.Fatalf("sample %d: got %v, want %v", i, out[i], b[i])
		}
	}
}

func TestMixNoInputs(t *testing.T) {
	if out := Mix(nil); len(out) != 0 {
		t.Fatalf("expected empty output, got %d samples", len(out))
	}
	if out := Mix([][]float32{}); len(out) != 0 {
		t.Fatalf("expected empty output, got %d samples", len(out))
	}
}

func TestMixSinglePartPassesThrough(t *testing.T) {
	a := []float32{0.1, -0.2, 0.3}
	out := Mix([][]float32{a})
	if len(out) != len(a) {
		t.Fatalf("expected %d samples, got %d", len(a), len(out))
	}
	for i := range a {
		if out[i] != a[i] {
			t.Fatalf("sample %d: got %v, want %v", i, out[i], a[i])
		}
	}
}
