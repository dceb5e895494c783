package notation

// Reserved frequency values emitted by the resolver.
const (
	FreqSilence = 0
	FreqNoise   = 1
)

type Event struct {
	Frequency float64
	Duration  float64
}

type Sequence struct {
	Events  []Event
	Skipped int
}

type Config struct {
	Speed         float64
	PitchShift    float64
	DefaultOctave int
}

func DefaultConfig() Config {
	return Config{
		Speed:         1,
		PitchShift:    0,
		DefaultOctave: 4,
	}
}
