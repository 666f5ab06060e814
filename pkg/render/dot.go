// Package render draws the canonical k-mer graph for debugging small inputs.
// It converts the graph to Graphviz DOT and optionally renders SVG in-process.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/dbgtools/closetig/pkg/dbg"
)

// Options configures DOT output.
type Options struct {
	// Counts includes each k-mer's occurrence count in the node label.
	Counts bool
}

// ToDOT converts the graph to Graphviz DOT. Each canonical k-mer becomes one
// node; every undirected edge is emitted once, labeled with the strand
// orientation of both endpoints (+ = canonical).
func ToDOT(g *dbg.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\"];\n")
	buf.WriteString("\n")

	for id := int32(0); id < int32(g.NodeCount()); id++ {
		label := g.Kmer(id)
		if opts.Counts {
			label = fmt.Sprintf("%s\\n%d", g.Kmer(id), g.Count(id))
		}
		fmt.Fprintf(&buf, "  n%d [label=\"%s\"];\n", id, label)
	}

	buf.WriteString("\n")
	for id := int32(0); id < int32(g.NodeCount()); id++ {
		for _, a := range g.Arcs(id) {
			// The mirrored arc on the other endpoint covers the a.To < id half.
			if a.To <= id {
				continue
			}
			fmt.Fprintf(&buf, "  n%d -- n%d [label=\"%s%s\"];\n", id, a.To, sign(a.FromFwd), sign(a.ToFwd))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func sign(fwd bool) string {
	if fwd {
		return "+"
	}
	return "-"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
