package notation

import (
	"math"
	"strconv"
	"unicode/utf8"
)

type Parser struct{ cfg Config }

func NewParser(cfg Config) *Parser {
	if cfg.Speed <= 0 {
		cfg.Speed = 1
	}
	if cfg.DefaultOctave <= 0 {
		cfg.DefaultOctave = 4
	}
	return &Parser{cfg: cfg}
}

// Parse scans one notes string into its ordered event sequence.
// Characters no token can absorb are dropped and counted, never an error.
func (p *Parser) Parse(notes string) Sequence {
	toks, skipped := p.tokenize(notes)
	events := make([]Event, 0, len(toks))
	for _, t := range toks {
		events = append(events, p.resolve(t))
	}
	return Sequence{Events: events, Skipped: skipped}
}

// token is one lexical match: letter, optional modifier, optional octave
// digits, and the count of trailing sustain markers.
type token struct {
	letter   byte // lowercased: 'a'..'g', 'x', '_' or '.'
	modifier byte // '#', 'b' or 0
	octave   int
	sustains int
}

func (p *Parser) tokenize(s string) ([]token, int) {
	toks := make([]token, 0, 16)
	skipped := 0
	i := 0
	for i < len(s) {
		ch := lower(s[i])
		if isSeparator(ch) {
			i++
			continue
		}
		if !isLetter(ch) {
			_, size := utf8.DecodeRuneInString(s[i:])
			skipped++
			i += size
			continue
		}
		t := token{letter: ch, octave: p.cfg.DefaultOctave}
		i++
		// Only lowercase 'b' flattens; an uppercase B starts a new token.
		if i < len(s) && (s[i] == '#' || s[i] == 'b') {
			t.modifier = s[i]
			i++
		}
		t.octave, i = scanOctave(s, i, t.octave)
		// Sustain markers may have separators between them.
		for i < len(s) {
			j := i
			for j < len(s) && isSeparator(s[j]) {
				j++
			}
			if j >= len(s) || (s[j] != '~' && s[j] != '-') {
				i = j
				break
			}
			t.sustains++
			i = j + 1
		}
		toks = append(toks, t)
	}
	return toks, skipped
}

// resolve maps one token to an event. Rests win over modifiers and octave
// digits, which are tolerated but meaningless on them.
func (p *Parser) resolve(t token) Event {
	dur := float64(t.sustains+1) / p.cfg.Speed
	if t.letter == '_' || t.letter == '.' {
		return Event{Frequency: FreqSilence, Duration: dur}
	}
	if t.letter == 'x' {
		return Event{Frequency: FreqNoise, Duration: dur}
	}
	base, ok := naturalFrequency(t.letter)
	if !ok {
		// tokenize only emits letters the table knows
		return Event{Frequency: FreqSilence, Duration: dur}
	}
	switch t.modifier {
	case '#':
		base *= semitoneRatio
	case 'b':
		base /= semitoneRatio
	}
	exp := float64(t.octave-4) + p.cfg.PitchShift/12
	return Event{Frequency: base * math.Pow(2, exp), Duration: dur}
}

func scanOctave(s string, at int, def int) (int, int) {
	i := at
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == at {
		return def, at
	}
	n, err := strconv.Atoi(s[at:i])
	if err != nil {
		return def, i
	}
	return n, i
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 32
	}
	return b
}

func isSeparator(b byte) bool {
	return b == ' ' || b == '|' || b == '\n' || b == '\r' || b == '\t'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isLetter(b byte) bool {
	if b == 'x' || b == '_' || b == '.' {
		return true
	}
	_, ok := noteOffsets[b]
	return ok
}
