package optimize

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsphweid/voicelead/chord"
	"github.com/jsphweid/voicelead/graph"
	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/voicing"
)

func build(t *testing.T, r model.Range, p chord.Positions, policy graph.HoldPolicy, tokens ...string) *graph.Graph {
	chords, err := chord.ParseAll(tokens)
	require.NoError(t, err)
	g, err := graph.Build(chords, r, chord.NewGenerator(p), graph.Options{Policy: policy})
	require.NoError(t, err)
	return g
}

// bruteForce tries every combination of voicings, one per chord.
func bruteForce(t *testing.T, r model.Range, p chord.Positions, tokens ...string) int {
	var layers [][]model.Voicing
	for _, token := range tokens {
		c, err := chord.Parse(token)
		require.NoError(t, err)
		var vs []model.Voicing
		for _, a := range chord.Triads(c, p) {
			res, err := voicing.Enumerate(a, r)
			require.NoError(t, err)
			vs = append(vs, res...)
		}
		layers = append(layers, vs)
	}

	best := -1
	var walk func(layer int, prev model.Voicing, cost int)
	walk = func(layer int, prev model.Voicing, cost int) {
		if layer == len(layers) {
			if best < 0 || cost < best {
				best = cost
			}
			return
		}
		for _, v := range layers[layer] {
			step := 0
			if layer > 0 {
				step = prev.Distance(v)
			}
			walk(layer+1, v, cost+step)
		}
	}
	walk(0, model.Voicing{}, 0)
	return best
}

func pathCost(g *graph.Graph, p Path) int {
	var total int
	for i := 1; i < len(p.Nodes); i++ {
		total += g.Node(p.Nodes[i-1]).Voicing.Distance(g.Node(p.Nodes[i]).Voicing)
	}
	return total
}

func TestShortestMatchesBruteForce(t *testing.T) {
	cases := []struct {
		name   string
		r      model.Range
		p      chord.Positions
		tokens []string
	}{
		{"C-G", model.Range{Min: 60, Max: 72}, chord.PositionsAll, []string{"C", "G"}},
		{"ii-V-I", model.Range{Min: 48, Max: 79}, chord.PositionsAll, []string{"Dm", "G", "C"}},
		{"spread", model.Range{Min: 40, Max: 90}, chord.PositionsSpread, []string{"B", "D", "G", "Bb"}},
		{"close", model.Range{Min: 50, Max: 80}, chord.PositionsClose, []string{"Am", "F", "C#dim", "Eaug"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := build(t, tc.r, tc.p, nil, tc.tokens...)
			p, err := Shortest(g, tc.tokens[0], tc.tokens[len(tc.tokens)-1])
			require.NoError(t, err)

			assert := assert.New(t)
			assert.Len(p.Nodes, len(tc.tokens))
			assert.Equal(bruteForce(t, tc.r, tc.p, tc.tokens...), p.Cost)
			assert.Equal(p.Cost, pathCost(g, p))
			for i, id := range p.Nodes {
				assert.Equal(i, id.Layer)
			}
		})
	}
}

func TestShortestCToG(t *testing.T) {
	g := build(t, model.Range{Min: 60, Max: 72}, chord.PositionsAll, nil, "C", "G")
	p, err := Shortest(g, "C", "G")
	require.NoError(t, err)

	res := p.Result(g)
	assert := assert.New(t)
	assert.Equal(3, res.Cost)
	require.Len(t, res.Steps, 2)
	assert.Equal(model.Step{Chord: "C", Arrangement: "E G C", Voicing: model.Voicing{64, 67, 72}}, res.Steps[0])
	assert.Equal(model.Step{Chord: "G", Arrangement: "D G B", Voicing: model.Voicing{62, 67, 71}}, res.Steps[1])
}

func TestShortestRepeatedChordMoves(t *testing.T) {
	g := build(t, model.Range{Min: 60, Max: 72}, chord.PositionsAll, nil, "C", "C")
	p, err := Shortest(g, "C", "C")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(12, p.Cost)
	// both directions cost 12, the first start wins
	assert.Equal([]graph.NodeID{{Layer: 0, Index: 0}, {Layer: 1, Index: 1}}, p.Nodes)
}

func TestShortestTieBreaksOnGenerationOrder(t *testing.T) {
	g := build(t, model.Range{Min: 48, Max: 84}, chord.PositionsAll, graph.AllowHolds{}, "C", "C", "C")
	p, err := Shortest(g, "C", "C")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(0, p.Cost)
	assert.Equal([]graph.NodeID{{Layer: 0, Index: 0}, {Layer: 1, Index: 0}, {Layer: 2, Index: 0}}, p.Nodes)

	again, err := Shortest(g, "C", "C")
	require.NoError(t, err)
	assert.Equal(p, again)
}

func TestShortestSingleChord(t *testing.T) {
	g := build(t, model.Range{Min: 60, Max: 72}, chord.PositionsAll, nil, "C")
	p, err := Shortest(g, "C", "C")
	require.NoError(t, err)
	assert.Equal(t, Path{Nodes: []graph.NodeID{{Layer: 0, Index: 0}}, Cost: 0}, p)
}

func TestShortestNoFeasibleVoicing(t *testing.T) {
	g := build(t, model.Range{Min: 60, Max: 61}, chord.PositionsAll, nil, "C", "G")
	p, err := Shortest(g, "C", "G")

	assert := assert.New(t)
	assert.True(errors.Is(err, ErrNoFeasibleVoicing))
	assert.Contains(err.Error(), `chord "C" at position 0`)
	assert.Empty(p.Nodes)
}

func TestShortestNoFeasibleVoiceLeading(t *testing.T) {
	g := build(t, model.Range{Min: 60, Max: 72}, chord.PositionsAll, nil, "C", "G")
	_, err := Shortest(g, "C", "F")
	assert.True(t, errors.Is(err, ErrNoFeasibleVoiceLeading))

	_, err = Shortest(g, "D", "G")
	assert.True(t, errors.Is(err, ErrNoFeasibleVoiceLeading))
}
