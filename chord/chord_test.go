package chord

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		token    string
		root     string
		spelling string
		quality  Quality
	}{
		{"C", "C", "C", Major},
		{"Bb", "Bb", "Bb", Major},
		{"C#m", "Db", "C#", Minor},
		{"F#dim", "Gb", "F#", Diminished},
		{"Eaug", "E", "E", Augmented},
		{"Ebm", "Eb", "Eb", Minor},
		{"Cmaj7", "C", "C", Major},
		{"Am7", "A", "A", Major},
		{"E#", "F", "E#", Major},
		{"Cb", "B", "Cb", Major},
		{"CDim", "C", "C", Major},
		{"CAug", "C", "C", Major},
		{"CAdd9", "C", "C", Major},
		{"GBass", "G", "G", Major},
		{"C/E", "C", "C", Major},
		{"Ebb", "Eb", "Eb", Major},
		{"C##", "Db", "C#", Major},
		{"Bbbm", "Bb", "Bb", Major},
	}

	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			c, err := Parse(tc.token)
			require.NoError(t, err)

			assert := assert.New(t)
			assert.Equal(tc.token, c.Name)
			assert.Equal(tc.root, c.Root)
			assert.Equal(tc.spelling, c.Spelling)
			assert.Equal(tc.quality, c.Quality)
		})
	}
}

func TestParseRejectsBadRoots(t *testing.T) {
	for _, token := range []string{"", "H", "hm", "bC", "#C", "1", "cm"} {
		t.Run(token, func(t *testing.T) {
			_, err := Parse(token)
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, token, parseErr.Token)
		})
	}
}

func TestParseChart(t *testing.T) {
	chords, err := ParseChart("B D G Bb | Eb,Am  D\nG")
	require.NoError(t, err)

	var names []string
	for _, c := range chords {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"B", "D", "G", "Bb", "Eb", "Am", "D", "G"}, names)

	_, err = ParseChart("C | X | G")
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "X", parseErr.Token)
}

func mustParse(t *testing.T, token string) Chord {
	c, err := Parse(token)
	require.NoError(t, err)
	return c
}

func strs(arrangements []Arrangement) []string {
	var res []string
	for _, a := range arrangements {
		res = append(res, a.String())
	}
	return res
}

func TestSpreadTriads(t *testing.T) {
	cases := map[string][]string{
		"C":   {"C G E", "E C G", "G E C"},
		"Cm":  {"C G Eb", "Eb C G", "G Eb C"},
		"Am":  {"A E C", "C A E", "E C A"},
		"Bb":  {"Bb F D", "D Bb F", "F D Bb"},
		"C#m": {"C# G# E", "E C# G#", "G# E C#"},
		"F#":  {"F# C# A#", "A# F# C#", "C# A# F#"},
	}

	for token, expected := range cases {
		t.Run(token, func(t *testing.T) {
			assert.Equal(t, expected, strs(Triads(mustParse(t, token), PositionsSpread)))
		})
	}
}

func TestCloseAndAllTriads(t *testing.T) {
	c := mustParse(t, "C")

	assert := assert.New(t)
	assert.Equal([]string{"C E G", "E G C", "G C E"}, strs(Triads(c, PositionsClose)))
	assert.Equal(
		[]string{"C E G", "C G E", "E C G", "E G C", "G C E", "G E C"},
		strs(Triads(c, PositionsAll)),
	)

	all := Triads(c, PositionsAll)
	assert.Equal("close", all[0].Label)
	assert.Equal("spread", all[1].Label)
}

func TestTriadQualities(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]string{"B D F"}, strs(Triads(mustParse(t, "Bdim"), PositionsAll)[:1]))
	assert.Equal([]string{"C E G#"}, strs(Triads(mustParse(t, "Caug"), PositionsAll)[:1]))
	assert.Equal([]string{"D F A"}, strs(Triads(mustParse(t, "Dm"), PositionsAll)[:1]))
}

func TestTriadSpelling(t *testing.T) {
	cases := map[string]string{
		"D":     "D F# A",
		"Eb":    "Eb G Bb",
		"F#":    "F# A# C#",
		"Bbdim": "Bb Db Fb",
		"Eaug":  "E G# B#",
		"Cb":    "Cb Eb Gb",
		// double accidentals fall back to the chromatic name
		"Gbm":   "Gb A Db",
		"C#aug": "C# E# A",
	}

	for token, expected := range cases {
		t.Run(token, func(t *testing.T) {
			assert.Equal(t, expected, Triads(mustParse(t, token), PositionsAll)[0].String())
		})
	}
}

func TestGeneratorIsDeterministic(t *testing.T) {
	gen := NewGenerator(PositionsSpread)
	c := mustParse(t, "Eb")
	assert.Equal(t, PositionsSpread, gen.Positions())

	first := gen.Arrangements(c)
	second := gen.Arrangements(c)
	assert.Equal(t, first, second)
	assert.Equal(t, Triads(c, PositionsSpread), first)

	// callers can't poison the cache
	first[0].Notes[0] = "X"
	assert.Equal(t, "Eb", gen.Arrangements(c)[0].Notes[0])
}

func TestParsePositions(t *testing.T) {
	p, err := ParsePositions("Spread")
	require.NoError(t, err)
	assert.Equal(t, PositionsSpread, p)

	_, err = ParsePositions("open")
	assert.Error(t, err)
}
