// Package optimize finds the cheapest path through a voice-leading graph.
//
// Dijkstra runs once per start node. Among paths of equal cost the result is
// fixed: at every step the predecessor with the lowest generation index wins,
// and across runs the lowest-index start and target win. Because nodes are
// generated in arrangement order and then ascending voicing order, this
// prefers earlier arrangements and lower voicings.
package optimize

import (
	"math"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/pkg/errors"

	"github.com/jsphweid/voicelead/graph"
	"github.com/jsphweid/voicelead/model"
)

var (
	// ErrNoFeasibleVoicing means some position has no voicing in range.
	ErrNoFeasibleVoicing = errors.New("no feasible voicing")
	// ErrNoFeasibleVoiceLeading means no start node reaches a final node.
	ErrNoFeasibleVoiceLeading = errors.New("no feasible voice leading")
)

const unreached = math.MaxInt

// Path is a node sequence, one per layer, and its total cost.
type Path struct {
	Nodes []graph.NodeID
	Cost  int
}

// Result resolves the path's nodes into steps.
func (p Path) Result(g *graph.Graph) model.Result {
	res := model.Result{Cost: p.Cost, Steps: make([]model.Step, 0, len(p.Nodes))}
	for _, id := range p.Nodes {
		n := g.Node(id)
		res.Steps = append(res.Steps, model.Step{
			Chord:       n.Chord.Name,
			Arrangement: n.Arrangement.String(),
			Voicing:     n.Voicing,
		})
	}
	return res
}

type item struct {
	id   graph.NodeID
	dist int
}

func byDistance(a, b interface{}) int {
	x, y := a.(item), b.(item)
	switch {
	case x.dist != y.dist:
		return compare(x.dist, y.dist)
	case x.id.Layer != y.id.Layer:
		return compare(x.id.Layer, y.id.Layer)
	default:
		return compare(x.id.Index, y.id.Index)
	}
}

func compare(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// tree is one single-source run: distance and predecessor index per node.
type tree struct {
	dist [][]int
	pred [][]int
}

func newTree(g *graph.Graph) *tree {
	t := &tree{
		dist: make([][]int, g.Len()),
		pred: make([][]int, g.Len()),
	}
	for i := range t.dist {
		n := len(g.Layer(i))
		t.dist[i] = make([]int, n)
		t.pred[i] = make([]int, n)
		for j := 0; j < n; j++ {
			t.dist[i][j] = unreached
			t.pred[i][j] = -1
		}
	}
	return t
}

func dijkstra(g *graph.Graph, start graph.NodeID) *tree {
	t := newTree(g)
	done := make(map[graph.NodeID]bool)

	t.dist[start.Layer][start.Index] = 0
	heap := binaryheap.NewWith(byDistance)
	heap.Push(item{id: start})

	for !heap.Empty() {
		v, _ := heap.Pop()
		u := v.(item)
		if done[u.id] {
			continue
		}
		done[u.id] = true

		for _, e := range g.Out(u.id) {
			nd := u.dist + e.Cost
			cur := t.dist[e.To.Layer][e.To.Index]
			pred := t.pred[e.To.Layer][e.To.Index]
			switch {
			case nd < cur:
				t.dist[e.To.Layer][e.To.Index] = nd
				t.pred[e.To.Layer][e.To.Index] = u.id.Index
				heap.Push(item{id: e.To, dist: nd})
			case nd == cur && u.id.Index < pred:
				t.pred[e.To.Layer][e.To.Index] = u.id.Index
			}
		}
	}
	return t
}

func (t *tree) path(target graph.NodeID) []graph.NodeID {
	res := make([]graph.NodeID, target.Layer+1)
	id := target
	for layer := target.Layer; layer >= 0; layer-- {
		res[layer] = id
		if layer > 0 {
			id = graph.NodeID{Layer: layer - 1, Index: t.pred[layer][id.Index]}
		}
	}
	return res
}

// Shortest returns the globally cheapest path that starts on a first-layer
// node named first and ends on a last-layer node named last.
func Shortest(g *graph.Graph, first, last string) (Path, error) {
	if g.Len() == 0 {
		return Path{}, errors.Wrap(ErrNoFeasibleVoicing, "empty progression")
	}
	if empty := g.Empty(); len(empty) > 0 {
		pos := empty[0]
		return Path{}, errors.Wrapf(ErrNoFeasibleVoicing, "chord %q at position %d", g.Chords()[pos].Name, pos)
	}

	var starts, targets []graph.NodeID
	for _, n := range g.Layer(0) {
		if n.Chord.Name == first {
			starts = append(starts, n.ID)
		}
	}
	for _, n := range g.Layer(g.Len() - 1) {
		if n.Chord.Name == last {
			targets = append(targets, n.ID)
		}
	}

	best := Path{Cost: unreached}
	for _, start := range starts {
		t := dijkstra(g, start)
		for _, target := range targets {
			d := t.dist[target.Layer][target.Index]
			if d < best.Cost {
				best = Path{Nodes: t.path(target), Cost: d}
			}
		}
	}

	if best.Nodes == nil {
		return Path{}, errors.Wrapf(ErrNoFeasibleVoiceLeading, "from %q to %q", first, last)
	}
	return best, nil
}
