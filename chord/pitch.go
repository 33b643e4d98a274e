package chord

// ChromaticScale is the canonical spelling of each pitch class, C = 0.
var ChromaticScale = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

var pitchClasses = map[string]int{
	"C": 0, "B#": 0,
	"C#": 1, "Db": 1,
	"D":  2,
	"D#": 3, "Eb": 3,
	"E": 4, "Fb": 4,
	"E#": 5, "F": 5,
	"F#": 6, "Gb": 6,
	"G":  7,
	"G#": 8, "Ab": 8,
	"A":  9,
	"A#": 10, "Bb": 10,
	"B": 11, "Cb": 11,
}

// PitchClass returns the pitch class (0-11) of a note name such as "F#" or "Bb".
func PitchClass(name string) (int, bool) {
	pc, ok := pitchClasses[name]
	return pc, ok
}

// Canonical returns the chromatic-scale spelling of name, e.g. "C#" -> "Db".
func Canonical(name string) (string, bool) {
	pc, ok := PitchClass(name)
	if !ok {
		return "", false
	}
	return ChromaticScale[pc], true
}
