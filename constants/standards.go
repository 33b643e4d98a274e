package constants

import "strings"

var GiantSteps = []string{
	"B", "D", "G", "Bb", "Eb", "Eb", "Am", "D",
	"G", "Bb", "Eb", "F#", "B", "B", "Fm", "Bb",
	"Eb", "Eb", "Am", "D", "G", "G", "C#m", "F#",
	"B", "B", "Fm", "Bb", "Eb", "Eb", "C#m", "F#",
}

var TwentySixTwo = []string{
	"F", "Ab", "Db", "E", "A", "C", "Cm", "F",
	"Bb", "Db", "Gb", "A", "Dm", "G", "Gm", "C",
	"F", "Ab", "Db", "E", "A", "C", "Cm", "F",
	"Bb", "Ab", "Db", "E", "A", "C", "F", "F",
	"Cm", "F", "Em", "A", "D", "F", "Bb", "Bb",
	"Ebm", "Ebm", "Ab", "Ab", "Db", "Db", "Gm", "C",
	"F", "Ab", "Db", "E", "A", "C", "Cm", "F",
	"Bb", "Ab", "Db", "E", "A", "C", "F", "F",
}

var AllTheThingsYouAre = []string{
	"Fm", "Fm", "Bbm", "Bbm", "Eb", "Eb", "Ab", "Ab",
	"Db", "Db", "Dm", "G", "C", "C", "C", "C",
	"Cm", "Cm", "Fm", "Fm", "Bb", "Bb", "Eb", "Eb",
	"Ab", "Ab", "Am", "D", "G", "G", "G", "G",
	"Am", "Am", "D", "D", "G", "G", "G", "G",
	"F#dim", "F#dim", "B", "B", "E", "E", "C", "C",
	"Fm", "Fm", "Bbm", "Bbm", "Eb", "Eb", "Ab", "Ab",
	"Db", "Db", "Dbm", "Dbm", "Cm", "Cm", "Bdim", "Bdim",
	"Bbm", "Bbm", "Eb", "Eb", "Ab", "Ab", "Gm", "C",
}

const DefaultStandard = "giant-steps"

var Standards = map[string][]string{
	"giant-steps":            GiantSteps,
	"26-2":                   TwentySixTwo,
	"all-the-things-you-are": AllTheThingsYouAre,
}

// GetStandard looks a progression up by name, ignoring case and treating
// spaces like dashes.
func GetStandard(name string) ([]string, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
	chords, ok := Standards[key]
	if !ok {
		return nil, false
	}
	res := make([]string, len(chords))
	copy(res, chords)
	return res, true
}
