package model

import (
	"fmt"

	"github.com/jsphweid/voicelead/util"
)

// Voicing is three absolute MIDI pitch numbers, lowest voice first.
type Voicing [3]int

// Valid reports whether v is strictly ascending, no adjacent pair is more than
// an octave apart and every pitch lies inside r.
func (v Voicing) Valid(r Range) bool {
	for i, p := range v {
		if !r.Contains(p) {
			return false
		}
		if i == 0 {
			continue
		}
		if p <= v[i-1] || p-v[i-1] > 12 {
			return false
		}
	}
	return true
}

// Distance is the total movement between two voicings, voice by voice.
func (v Voicing) Distance(to Voicing) int {
	var total int
	for i := range v {
		total += util.Abs(to[i] - v[i])
	}
	return total
}

func (v Voicing) String() string {
	return fmt.Sprintf("(%d, %d, %d)", v[0], v[1], v[2])
}
