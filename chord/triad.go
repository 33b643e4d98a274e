package chord

import (
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/jsphweid/voicelead/util"
)

// Positions selects which orderings of a triad are generated.
type Positions int

const (
	// PositionsAll keeps all six orderings.
	PositionsAll Positions = iota
	// PositionsClose keeps root-third-fifth, third-fifth-root and fifth-root-third.
	PositionsClose
	// PositionsSpread keeps root-fifth-third, third-root-fifth and fifth-third-root.
	PositionsSpread
)

func (p Positions) String() string {
	switch p {
	case PositionsClose:
		return "close"
	case PositionsSpread:
		return "spread"
	}
	return "all"
}

// ParsePositions reads "all", "close" or "spread".
func ParsePositions(s string) (Positions, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all":
		return PositionsAll, nil
	case "close":
		return PositionsClose, nil
	case "spread":
		return PositionsSpread, nil
	}
	return PositionsAll, errors.Errorf("unknown positions %q (want all, close or spread)", s)
}

// scale steps, the third is two steps above the root and the fifth four
var intervals = map[Quality][]int{
	Major:      {2, 2, 1, 2, 2, 2, 1},
	Minor:      {2, 1, 2, 2, 1, 2, 2},
	Diminished: {2, 1, 2, 1, 2, 1, 2},
	Augmented:  {3, 1, 3, 1, 3},
}

// orderings of (root, third, fifth) in lexicographic index order
var permutations = [6][3]int{
	{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
}

var (
	closeIndexes  = []int{0, 3, 4}
	spreadIndexes = []int{1, 2, 5}
)

// Arrangement is an ordering of a triad's note classes, lowest voice first.
// Label is display metadata only.
type Arrangement struct {
	Label string
	Notes [3]string
}

func (a Arrangement) String() string {
	return strings.Join(a.Notes[:], " ")
}

const letters = "CDEFGAB"

// spellAbove names pitch class pc on the letter that lies letterSteps above
// root's letter, so the third of D is F# rather than Gb. When that would
// need a double accidental the chromatic-scale name is used instead.
func spellAbove(root string, letterSteps, pc int) string {
	if root == "" || strings.IndexByte(letters, root[0]) < 0 {
		return ChromaticScale[pc]
	}
	letter := letters[(strings.IndexByte(letters, root[0])+letterSteps)%len(letters)]
	natural, _ := PitchClass(string(letter))
	switch (pc - natural + 12) % 12 {
	case 0:
		return string(letter)
	case 1:
		return string(letter) + "#"
	case 11:
		return string(letter) + "b"
	}
	return ChromaticScale[pc]
}

// noteClasses returns root, third and fifth with the root spelled as the
// user wrote it and the third and fifth spelled in its key.
func noteClasses(c Chord) [3]string {
	rootIndex, _ := PitchClass(c.Root)
	steps, ok := intervals[c.Quality]
	if !ok {
		steps = intervals[Major]
	}
	spelling := c.Spelling
	if spelling == "" {
		spelling = c.Root
	}
	return [3]string{
		spelling,
		spellAbove(spelling, 2, (rootIndex+util.Sum(steps[:2]))%12),
		spellAbove(spelling, 4, (rootIndex+util.Sum(steps[:4]))%12),
	}
}

func label(permIndex int) string {
	for _, i := range closeIndexes {
		if i == permIndex {
			return "close"
		}
	}
	return "spread"
}

// Triads generates the arrangements of c for the given positions. The result
// only depends on the chord's root spelling, quality and p.
func Triads(c Chord, p Positions) []Arrangement {
	notes := noteClasses(c)

	var indexes []int
	switch p {
	case PositionsClose:
		indexes = closeIndexes
	case PositionsSpread:
		indexes = spreadIndexes
	default:
		indexes = []int{0, 1, 2, 3, 4, 5}
	}

	res := make([]Arrangement, 0, len(indexes))
	for _, i := range indexes {
		perm := permutations[i]
		res = append(res, Arrangement{
			Label: label(i),
			Notes: [3]string{notes[perm[0]], notes[perm[1]], notes[perm[2]]},
		})
	}
	return res
}

type triadKey struct {
	spelling string
	quality  Quality
}

// Generator memoizes Triads for one Positions setting. It is safe for
// concurrent use.
type Generator struct {
	positions Positions

	mu    sync.RWMutex
	cache map[triadKey][]Arrangement
}

func NewGenerator(p Positions) *Generator {
	return &Generator{
		positions: p,
		cache:     make(map[triadKey][]Arrangement),
	}
}

func (g *Generator) Positions() Positions {
	return g.positions
}

// Arrangements returns a copy of the memoized arrangements for c.
func (g *Generator) Arrangements(c Chord) []Arrangement {
	key := triadKey{spelling: c.Spelling, quality: c.Quality}
	if key.spelling == "" {
		key.spelling = c.Root
	}

	g.mu.RLock()
	cached, ok := g.cache[key]
	g.mu.RUnlock()

	if !ok {
		cached = Triads(c, g.positions)
		g.mu.Lock()
		g.cache[key] = cached
		g.mu.Unlock()
	}

	res := make([]Arrangement, len(cached))
	copy(res, cached)
	return res
}
