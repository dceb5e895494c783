package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lionel-rowe/chiptunes"
)

// Two-part arrangement of the Ode to Joy opening; '|' bars are readability only.
const (
	defaultMelody = "E4 E4 F4 G4 | G4 F4 E4 D4 | C4 C4 D4 E4 | E4~ D4 D4~"
	defaultBass   = "C3~ G2~ | C3~ G2~ | C3~ G2~ | C3~ G2~~"
)

func main() {
	var (
		sampleRate  = flag.Int("sample-rate", 48000, "output sample rate")
		waveName    = flag.String("wave", "square", "waveform: sine|square|sawtooth|triangle|whiteNoise")
		notesPath   = flag.String("file", "", "path to a notes file")
		notesInline = flag.String("notes", "", "inline notes string")
		speed       = flag.Float64("speed", 1.0, "global speed divisor (>1 is faster)")
		volume      = flag.Float64("volume", 1.0, "global volume scalar")
		pitchShift  = flag.Float64("pitch-shift", 0, "global pitch shift in semitones")
	)
	flag.Parse()

	wave, err := parseWaveform(*waveName)
	if err != nil {
		log.Fatal(err)
	}
	parts, err := resolveParts(*notesPath, *notesInline, wave)
	if err != nil {
		log.Fatal(err)
	}
	req := chiptunes.NewRequest(*sampleRate)
	req.Parts = parts
	req.Speed = *speed
	req.Volume = *volume
	req.PitchShift = *pitchShift

	pb, err := chiptunes.PlayRequest(req, chiptunes.WithDiagnostics(func(part string, skipped int) {
		if skipped > 0 {
			log.Printf("part %q: dropped %d unrecognized characters", part, skipped)
		}
	}))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("playing %d part(s) at %d Hz\n", len(req.Parts), *sampleRate)
	<-pb.Done()
	fmt.Println("playback completed")
}

func resolveParts(path string, inline string, wave chiptunes.Waveform) ([]chiptunes.Part, error) {
	if strings.TrimSpace(inline) != "" {
		part := chiptunes.NewPart("main", inline)
		part.Waveform = wave
		return []chiptunes.Part{part}, nil
	}
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		part := chiptunes.NewPart("main", string(data))
		part.Waveform = wave
		return []chiptunes.Part{part}, nil
	}
	melody := chiptunes.NewPart("melody", defaultMelody)
	melody.Waveform = wave
	melody.Volume = 0.5
	melody.Fade = 0.8
	bass := chiptunes.NewPart("bass", defaultBass)
	bass.Waveform = chiptunes.WaveformTriangle
	bass.Volume = 0.4
	bass.Fade = 0.3
	return []chiptunes.Part{melody, bass}, nil
}

func parseWaveform(name string) (chiptunes.Waveform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sine":
		return chiptunes.WaveformSine, nil
	case "square":
		return chiptunes.WaveformSquare, nil
	case "sawtooth", "saw":
		return chiptunes.WaveformSawtooth, nil
	case "triangle":
		return chiptunes.WaveformTriangle, nil
	case "whitenoise", "noise":
		return chiptunes.WaveformWhiteNoise, nil
	default:
		return "", fmt.Errorf("invalid -wave %q (expected sine|square|sawtooth|triangle|whiteNoise)", name)
	}
}
