package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jsphweid/voicelead/graph"
	"github.com/jsphweid/voicelead/model"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleChord   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
)

const (
	iconSuccess = "✓"
	iconArrow   = "→"
)

// renderPath draws the optimal path as a table, one row per chord, with the
// motion from the previous voicing in the last column.
func renderPath(title string, res model.Result) string {
	rows := make([][]string, 0, len(res.Steps))
	for i, step := range res.Steps {
		move := ""
		if i > 0 {
			move = strconv.Itoa(res.Steps[i-1].Voicing.Distance(step.Voicing))
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), step.Chord, step.Arrangement, step.Voicing.String(), move})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Chord", "Arrangement", "Voicing", "Move").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			switch col {
			case 1:
				return base.Inherit(styleChord)
			case 2, 0:
				return base.Inherit(styleDim)
			case 3, 4:
				return base.Inherit(styleNumber)
			}
			return base
		})

	var b strings.Builder
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("total cost %s\n", styleNumber.Render(strconv.Itoa(res.Cost))))
	return b.String()
}

func renderWritten(path string) string {
	return fmt.Sprintf("%s wrote %s\n", styleSuccess.Render(iconSuccess), path)
}

// renderGraph lists every node and edge, layer by layer.
func renderGraph(g *graph.Graph) string {
	var b strings.Builder
	stats := g.Stats()
	b.WriteString(styleTitle.Render(fmt.Sprintf("%d layers, %d nodes, %d edges", stats.Layers, stats.Nodes, stats.Edges)))
	b.WriteString("\n")
	for layer := 0; layer < g.Len(); layer++ {
		nodes := g.Layer(layer)
		b.WriteString(styleChord.Render(fmt.Sprintf("[%d] %s", layer, g.Chords()[layer].Name)))
		b.WriteString(styleDim.Render(fmt.Sprintf(" %d voicings", len(nodes))))
		b.WriteString("\n")
		for _, n := range nodes {
			b.WriteString(fmt.Sprintf("  %d  %s  %s\n", n.ID.Index, styleDim.Render(n.Arrangement.String()), n.Voicing))
			for _, e := range g.Out(n.ID) {
				b.WriteString(styleDim.Render(fmt.Sprintf("      %s %d.%d cost %d", iconArrow, e.To.Layer, e.To.Index, e.Cost)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
