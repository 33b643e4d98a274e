// Package leading computes minimum-motion triad voice leading for a chord
// progression: it parses the chords, builds the voice-leading graph over a
// pitch range and returns the cheapest voicing sequence.
package leading

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/jsphweid/voicelead/chord"
	"github.com/jsphweid/voicelead/graph"
	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/optimize"
)

var ErrEmptyProgression = errors.New("empty progression")

type Options struct {
	// Positions is ignored when Generator is set.
	Positions chord.Positions
	// Generator lets callers share memoized arrangements across calls.
	Generator *chord.Generator
	// Policy handles repeated chords, ForceMovement when nil.
	Policy graph.HoldPolicy
	Logger *log.Logger
}

// Solution is the outcome of one invocation. Graph and Path are kept for
// reporting (graph dumps, diagrams).
type Solution struct {
	Result model.Result
	Graph  *graph.Graph
	Path   optimize.Path
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

func (o Options) generator() *chord.Generator {
	if o.Generator != nil {
		return o.Generator
	}
	return chord.NewGenerator(o.Positions)
}

// Solve parses tokens and runs SolveChords.
func Solve(tokens []string, r model.Range, opts Options) (*Solution, error) {
	chords, err := chord.ParseAll(tokens)
	if err != nil {
		return nil, err
	}
	return SolveChords(chords, r, opts)
}

// SolveChords returns the globally cheapest voicing sequence for chords
// within r, or a typed error. It never returns a partial path.
func SolveChords(chords []chord.Chord, r model.Range, opts Options) (*Solution, error) {
	if len(chords) == 0 {
		return nil, ErrEmptyProgression
	}
	logger := opts.logger()
	start := time.Now()

	gen := opts.generator()
	g, err := graph.Build(chords, r, gen, graph.Options{Policy: opts.Policy})
	if err != nil {
		return nil, err
	}
	stats := g.Stats()
	logger.Debug("built graph", "positions", gen.Positions(), "layers", stats.Layers, "nodes", stats.Nodes, "edges", stats.Edges,
		"elapsed", time.Since(start).Round(time.Millisecond))

	for _, pos := range g.Empty() {
		logger.Warn("no voicing in range", "chord", chords[pos].Name, "position", pos, "range", r)
	}

	path, err := optimize.Shortest(g, chords[0].Name, chords[len(chords)-1].Name)
	if err != nil {
		return nil, err
	}
	logger.Debug("found path", "cost", path.Cost, "elapsed", time.Since(start).Round(time.Millisecond))

	return &Solution{
		Result: path.Result(g),
		Graph:  g,
		Path:   path,
	}, nil
}
