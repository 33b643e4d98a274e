package graph

import (
	"github.com/pkg/errors"

	"github.com/jsphweid/voicelead/chord"
	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/voicing"
)

type Options struct {
	// Policy handles repeated chords. Defaults to ForceMovement.
	Policy HoldPolicy
}

// Build enumerates the candidate nodes of every chord and connects each pair
// of consecutive layers. A chord without candidates leaves an empty layer,
// recorded in Empty; finding a path through it is the optimizer's problem.
func Build(chords []chord.Chord, r model.Range, gen *chord.Generator, opts Options) (*Graph, error) {
	if err := voicing.ValidateRange(r); err != nil {
		return nil, err
	}
	if opts.Policy == nil {
		opts.Policy = ForceMovement{}
	}

	g := &Graph{
		chords: chords,
		layers: make([][]Node, len(chords)),
	}

	// repeated chords share their voicings
	enumerated := make(map[string][]Node)
	for i, c := range chords {
		nodes, ok := enumerated[c.Name]
		if !ok {
			var err error
			nodes, err = candidates(c, r, gen)
			if err != nil {
				return nil, errors.Wrapf(err, "chord %q at position %d", c.Name, i)
			}
			enumerated[c.Name] = nodes
		}

		layer := make([]Node, len(nodes))
		for j, n := range nodes {
			n.ID = NodeID{Layer: i, Index: j}
			layer[j] = n
		}
		g.layers[i] = layer
		if len(layer) == 0 {
			g.empty = append(g.empty, i)
		}
	}

	if len(chords) > 1 {
		g.out = make([][][]Edge, len(chords)-1)
	}
	for i := 0; i+1 < len(chords); i++ {
		g.out[i] = connect(g.layers[i], g.layers[i+1], chords[i].Name == chords[i+1].Name, opts.Policy)
	}

	return g, nil
}

func candidates(c chord.Chord, r model.Range, gen *chord.Generator) ([]Node, error) {
	var res []Node
	for _, a := range gen.Arrangements(c) {
		voicings, err := voicing.Enumerate(a, r)
		if err != nil {
			return nil, err
		}
		for _, v := range voicings {
			res = append(res, Node{Chord: c, Arrangement: a, Voicing: v})
		}
	}
	return res, nil
}

func connect(from, to []Node, repeated bool, policy HoldPolicy) [][]Edge {
	res := make([][]Edge, len(from))
	for i, src := range from {
		edges := make([]Edge, 0, len(to))
		for _, dst := range to {
			edges = append(edges, Edge{
				From: src.ID,
				To:   dst.ID,
				Cost: src.Voicing.Distance(dst.Voicing),
			})
		}
		if repeated {
			edges = policy.Select(edges)
		}
		res[i] = edges
	}
	return res
}
