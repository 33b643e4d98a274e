// Package graph builds the layered voice-leading graph: one layer per
// position of the progression, one node per (arrangement, voicing) of that
// position's chord, and edges only from layer i to layer i+1 weighted by total
// voice movement.
package graph

import (
	"github.com/jsphweid/voicelead/chord"
	"github.com/jsphweid/voicelead/model"
)

// NodeID addresses a node by layer and its index within the layer. Indexes
// follow generation order: arrangement order, then ascending voicing.
type NodeID struct {
	Layer int
	Index int
}

type Node struct {
	ID          NodeID
	Chord       chord.Chord
	Arrangement chord.Arrangement
	Voicing     model.Voicing
}

// Edge goes from a node in layer i to a node in layer i+1.
type Edge struct {
	From NodeID
	To   NodeID
	Cost int
}

// Graph is read-only once Build returns.
type Graph struct {
	chords []chord.Chord
	layers [][]Node
	out    [][][]Edge
	empty  []int
}

type Stats struct {
	Layers int
	Nodes  int
	Edges  int
}

// Len is the number of layers, one per chord.
func (g *Graph) Len() int {
	return len(g.layers)
}

func (g *Graph) Chords() []chord.Chord {
	return g.chords
}

func (g *Graph) Layer(i int) []Node {
	return g.layers[i]
}

func (g *Graph) Node(id NodeID) Node {
	return g.layers[id.Layer][id.Index]
}

// Out returns the edges leaving id in insertion order.
func (g *Graph) Out(id NodeID) []Edge {
	if id.Layer >= len(g.out) {
		return nil
	}
	return g.out[id.Layer][id.Index]
}

// Empty lists the positions whose chord has no voicing in range.
func (g *Graph) Empty() []int {
	return g.empty
}

func (g *Graph) Nodes() []Node {
	var res []Node
	for _, layer := range g.layers {
		res = append(res, layer...)
	}
	return res
}

func (g *Graph) Edges() []Edge {
	var res []Edge
	for _, layer := range g.out {
		for _, edges := range layer {
			res = append(res, edges...)
		}
	}
	return res
}

func (g *Graph) Stats() Stats {
	s := Stats{Layers: len(g.layers)}
	for _, layer := range g.layers {
		s.Nodes += len(layer)
	}
	for _, layer := range g.out {
		for _, edges := range layer {
			s.Edges += len(edges)
		}
	}
	return s
}
