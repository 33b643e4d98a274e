package chord

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type Quality int

const (
	Major Quality = iota
	Minor
	Diminished
	Augmented
)

func (q Quality) String() string {
	names := [...]string{"major", "minor", "diminished", "augmented"}
	if int(q) < len(names) {
		return names[q]
	}
	return "unknown"
}

// Chord is a parsed chord token.
type Chord struct {
	// Name is the token exactly as written; repeated chords are detected by it.
	Name string
	// Root is the canonical chromatic spelling used for lookup.
	Root string
	// Spelling is the root as the user wrote it, kept for display.
	Spelling string
	Quality  Quality
}

func (c Chord) String() string {
	return c.Name
}

// ParseError reports a chord token whose root is not a pitch-class name.
type ParseError struct {
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid chord %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("invalid chord %q", e.Token)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// After the root letter and an optional accidental, everything left in the
// token is one suffix, so "CDim" and "Ebb" keep their roots (C and Eb).
var symbolLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Letter", Pattern: `[A-G]`, Action: lexer.Push("Accidental")},
	},
	"Accidental": {
		{Name: "Accidental", Pattern: `[#b]`, Action: lexer.Push("Suffix")},
		{Name: "Suffix", Pattern: `[^\s,|]+`},
	},
	"Suffix": {
		{Name: "Suffix", Pattern: `[^\s,|]+`},
	},
})

type symbol struct {
	Letter     string `parser:"@Letter"`
	Accidental string `parser:"@Accidental?"`
	Suffix     string `parser:"@Suffix?"`
}

var symbolParser = participle.MustBuild[symbol](participle.Lexer(symbolLexer))

// NOTE: only whole suffixes are recognized, anything else (m7, maj7, sus4...)
// is voiced as a plain major triad
var qualities = map[string]Quality{
	"":    Major,
	"M":   Major,
	"maj": Major,
	"m":   Minor,
	"min": Minor,
	"-":   Minor,
	"dim": Diminished,
	"o":   Diminished,
	"aug": Augmented,
	"+":   Augmented,
}

// Parse reads a chord token like "Bb", "C#m", "F#dim" or "Eaug".
func Parse(token string) (Chord, error) {
	sym, err := symbolParser.ParseString("", token)
	if err != nil {
		return Chord{}, &ParseError{Token: token, Err: err}
	}

	spelling := sym.Letter + sym.Accidental
	root, ok := Canonical(spelling)
	if !ok {
		return Chord{}, &ParseError{Token: token}
	}

	return Chord{
		Name:     token,
		Root:     root,
		Spelling: spelling,
		Quality:  qualities[sym.Suffix],
	}, nil
}

func isSeparator(r rune) bool {
	return r == ',' || r == '|' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// ParseChart parses a chord chart where chords are separated by commas,
// bar lines or whitespace, e.g. "B D G Bb | Eb Am D G".
func ParseChart(chart string) ([]Chord, error) {
	return ParseAll(strings.FieldsFunc(chart, isSeparator))
}

// ParseAll parses every token, stopping at the first bad one.
func ParseAll(tokens []string) ([]Chord, error) {
	res := make([]Chord, 0, len(tokens))
	for _, token := range tokens {
		c, err := Parse(strings.TrimSpace(token))
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, nil
}
