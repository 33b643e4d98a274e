package graph

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/pkg/errors"
)

type DOTOptions struct {
	// Path is highlighted when set, typically the optimizer's result.
	Path []NodeID
	// PathOnly drops every edge that is not on Path.
	PathOnly bool
}

func dotID(id NodeID) string {
	return fmt.Sprintf("n%d_%d", id.Layer, id.Index)
}

// ToDOT writes g in Graphviz DOT format, left to right, one rank per layer.
func ToDOT(g *Graph, opts DOTOptions) string {
	onPath := make(map[NodeID]bool, len(opts.Path))
	pathEdges := make(map[[2]NodeID]bool, len(opts.Path))
	for i, id := range opts.Path {
		onPath[id] = true
		if i > 0 {
			pathEdges[[2]NodeID{opts.Path[i-1], id}] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph voicelead {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=10];\n")
	buf.WriteString("  edge [fontsize=8, color=gray];\n")

	for i := 0; i < g.Len(); i++ {
		fmt.Fprintf(&buf, "\n  subgraph layer%d {\n    rank=same;\n", i)
		for _, n := range g.Layer(i) {
			if opts.PathOnly && !onPath[n.ID] {
				continue
			}
			label := fmt.Sprintf("%s\\n%s\\n%v", n.Chord.Name, n.Arrangement, n.Voicing)
			fill := "white"
			if onPath[n.ID] {
				fill = "lightblue"
			}
			fmt.Fprintf(&buf, "    %s [label=\"%s\", fillcolor=%s];\n", dotID(n.ID), label, fill)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		highlighted := pathEdges[[2]NodeID{e.From, e.To}]
		if opts.PathOnly && !highlighted {
			continue
		}
		attrs := fmt.Sprintf("label=\"%d\"", e.Cost)
		if highlighted {
			attrs += ", color=blue, penwidth=2"
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", dotID(e.From), dotID(e.To), attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "init graphviz")
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(err, "parse DOT")
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(err, "render")
	}
	return buf.Bytes(), nil
}
