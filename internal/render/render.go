package render

import (
	"math"

	"github.com/lionel-rowe/chiptunes/internal/notation"
	"github.com/lionel-rowe/chiptunes/internal/waveform"
)

// LeadInSamples is the fixed silent padding prepended to every part,
// independent of sample rate.
const LeadInSamples = 12000

// unitSeconds converts duration units to seconds: one unit is 100 ms.
const unitSeconds = 0.1

// Note renders one event into a buffer of floor(sampleRate * seconds)
// samples. The fade envelope ramps from 1 at the first sample toward
// 1-fade at the last one and is never clamped, so values outside [0,1]
// amplify or invert the tail.
func Note(fn waveform.Func, ev notation.Event, sampleRate int, volume, fade float64) []float32 {
	length := noteLength(ev.Duration, sampleRate)
	if length <= 0 {
		return nil
	}
	cyclesPerSample := ev.Frequency / float64(sampleRate)
	out := make([]float32, length)
	for i := range out {
		env := 1 - float64(i)/float64(length)*fade
		out[i] = float32(fn(float64(i)*cyclesPerSample) * volume * env)
	}
	return out
}

// Part renders every event with the part's generator and gain after the
// silent lead-in, which keeps the mix from opening on a click.
func Part(events []notation.Event, fn waveform.Func, sampleRate int, volume, fade float64) []float32 {
	out := make([]float32, LeadInSamples, LeadInSamples+totalSamples(events, sampleRate))
	for _, ev := range events {
		out = append(out, Note(fn, ev, sampleRate, volume, fade)...)
	}
	return out
}

// Mix sums part buffers into one output as long as the longest input,
// reading indexes past a shorter part's end as 0. No clipping or
// normalization is applied.
func Mix(parts [][]float32) []float32 {
	longest := 0
	for _, p := range parts {
		if len(p) > longest {
			longest = len(p)
		}
	}
	out := make([]float32, longest)
	for _, p := range parts {
		for i, s := range p {
			out[i] += s
		}
	}
	return out
}

func noteLength(units float64, sampleRate int) int {
	return int(math.Floor(float64(sampleRate) * units * unitSeconds))
}

func totalSamples(events []notation.Event, sampleRate int) int {
	n := 0
	for _, ev := range events {
		if l := noteLength(ev.Duration, sampleRate); l > 0 {
			n += l
		}
	}
	return n
}
