package chiptunes

import (
	"errors"
	"fmt"
	"math/rand"

	intnote "github.com/lionel-rowe/chiptunes/internal/notation"
	intrend "github.com/lionel-rowe/chiptunes/internal/render"
	intwave "github.com/lionel-rowe/chiptunes/internal/waveform"
)

// ErrConfiguration wraps every fail-fast validation error, so callers can
// test for the whole class with errors.Is.
var ErrConfiguration = errors.New("invalid configuration")

// Waveform selects the generator a part is synthesized with.
type Waveform string

const (
	WaveformSine       Waveform = "sine"
	WaveformSquare     Waveform = "square"
	WaveformSawtooth   Waveform = "sawtooth"
	WaveformTriangle   Waveform = "triangle"
	WaveformWhiteNoise Waveform = "whiteNoise"
)

// Part is one independently voiced line of a request: a notes string plus
// the waveform, gain, and fade it is rendered with.
type Part struct {
	Name     string
	Notes    string
	Waveform Waveform // empty selects sine
	Volume   float64  // zero selects the default 1
	Fade     float64  // linear end-of-note ramp; not clamped to [0,1]
}

// NewPart returns a Part with the defaults filled in: sine waveform,
// unity volume, no fade.
func NewPart(name, notes string) Part {
	return Part{
		Name:     name,
		Notes:    notes,
		Waveform: WaveformSine,
		Volume:   1,
	}
}

// Request describes one synthesis run. Parts keep their order through
// mixing, and the global knobs apply to every note of every part.
type Request struct {
	SampleRate int
	Parts      []Part
	Speed      float64 // duration divisor; zero selects the default 1
	Volume     float64 // gain multiplied into every part; zero selects the default 1
	PitchShift float64 // semitones, applied as a fractional-octave offset
}

// NewRequest returns a Request at the given rate with unity speed and volume.
func NewRequest(sampleRate int) Request {
	return Request{
		SampleRate: sampleRate,
		Speed:      1,
		Volume:     1,
	}
}

type RenderOption func(*renderConfig)

type renderConfig struct {
	noise       rand.Source
	diagnostics func(part string, skipped int)
}

// WithNoiseSource seeds the white-noise generator, making renders that use
// it reproducible. The default is the process-wide source.
func WithNoiseSource(src rand.Source) RenderOption {
	return func(cfg *renderConfig) {
		cfg.noise = src
	}
}

// WithDiagnostics installs a callback invoked once per part with the count
// of characters the grammar dropped. Dropped characters are never an error;
// this is the hook for surfacing them anyway.
func WithDiagnostics(fn func(part string, skipped int)) RenderOption {
	return func(cfg *renderConfig) {
		cfg.diagnostics = fn
	}
}

// Render synthesizes the request into one mono buffer at the requested
// sample rate. Samples are not clamped; keeping the summed parts inside
// [-1, 1] is the caller's job via the volume and fade knobs.
func Render(req Request, opts ...RenderOption) ([]float32, error) {
	if req.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sampleRate must be positive", ErrConfiguration)
	}
	speed := req.Speed
	if speed == 0 {
		speed = 1
	}
	if speed < 0 {
		return nil, fmt.Errorf("%w: speed must be positive", ErrConfiguration)
	}
	volume := req.Volume
	if volume == 0 {
		volume = 1
	}
	var cfg renderConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	var rng *rand.Rand
	if cfg.noise != nil {
		rng = rand.New(cfg.noise)
	}

	parser := intnote.NewParser(intnote.Config{
		Speed:         speed,
		PitchShift:    req.PitchShift,
		DefaultOctave: 4,
	})
	buffers := make([][]float32, 0, len(req.Parts))
	for _, part := range req.Parts {
		fn, err := generatorFor(part.Waveform, rng)
		if err != nil {
			return nil, err
		}
		partVolume := part.Volume
		if partVolume == 0 {
			partVolume = 1
		}
		seq := parser.Parse(part.Notes)
		if cfg.diagnostics != nil {
			cfg.diagnostics(part.Name, seq.Skipped)
		}
		buffers = append(buffers, intrend.Part(seq.Events, fn, req.SampleRate, partVolume*volume, part.Fade))
	}
	return intrend.Mix(buffers), nil
}

func generatorFor(w Waveform, rng *rand.Rand) (intwave.Func, error) {
	switch w {
	case WaveformSine, "":
		return intwave.Sine, nil
	case WaveformSquare:
		return intwave.Square, nil
	case WaveformSawtooth:
		return intwave.Sawtooth, nil
	case WaveformTriangle:
		return intwave.Triangle, nil
	case WaveformWhiteNoise:
		return intwave.WhiteNoise(rng), nil
	default:
		return nil, fmt.Errorf("%w: unknown waveform %q", ErrConfiguration, w)
	}
}
