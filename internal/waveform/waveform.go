package waveform

import (
	"math"
	"math/rand"
)

// Func maps a phase value, measured in cycles elapsed, to an amplitude
// in [-1, 1]. Every generator yields 0 at phase 0, which is what makes
// zero-frequency events render as true silence.
type Func func(x float64) float64

// Sine is sin(2πx).
func Sine(x float64) float64 {
	return math.Sin(2 * math.Pi * x)
}

// Square is the sign of the sine at the same phase.
func Square(x float64) float64 {
	s := math.Sin(2 * math.Pi * x)
	switch {
	case s > 0:
		return 1
	case s < 0:
		return -1
	}
	return 0
}

// Sawtooth ramps from -1 to 1 once per cycle, dropping at half-integers.
func Sawtooth(x float64) float64 {
	return (x - math.Floor(x+0.5)) * 2
}

// Triangle peaks at 1 a quarter cycle in and bottoms out at -1 at three
// quarters.
func Triangle(x float64) float64 {
	return 1 - 2*math.Abs(Sawtooth(x-0.25))
}

// WhiteNoise returns a generator drawing a fresh uniform value in [-1, 1)
// on every call, ignoring its phase except at exactly 0. A nil rng selects
// the process-wide source; pass a seeded one for reproducible renders.
func WhiteNoise(rng *rand.Rand) Func {
	if rng == nil {
		return func(x float64) float64 {
			if x == 0 {
				return 0
			}
			return rand.Float64()*2 - 1
		}
	}
	return func(x float64) float64 {
		if x == 0 {
			return 0
		}
		return rng.Float64()*2 - 1
	}
}
