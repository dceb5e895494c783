package notation

import "math"

// Semitone distance from A within the same octave.
var noteOffsets = map[byte]int{
	'c': -9, 'd': -7, 'e': -5, 'f': -4, 'g': -2, 'a': 0, 'b': 2,
}

const referenceHz = 440.0 // A at octave 4

var semitoneRatio = math.Pow(2, 1.0/12)

// naturalFrequency returns the octave-4 frequency of a lowercased
// natural letter. Rest and noise letters never reach the table.
func naturalFrequency(letter byte) (float64, bool) {
	offset, ok := noteOffsets[letter]
	if !ok {
		return 0, false
	}
	return referenceHz * math.Pow(2, float64(offset)/12), true
}
