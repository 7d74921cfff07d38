// Package render turns an addressed topology into Graphviz diagrams: DOT
// text for tooling, or SVG for direct viewing.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/netlabtools/clabinv/pkg/ipam"
	"github.com/netlabtools/clabinv/pkg/topology"
)

// Options configures diagram rendering.
type Options struct {
	// Addresses annotates nodes with loopbacks and edges with their
	// point-to-point subnet. When false, only names are drawn.
	Addresses bool
}

// ToDOT converts a topology and its address plan to Graphviz DOT.
// Links are undirected, so the output is a "graph" with "--" edges. The
// resulting DOT string can be rendered with [RenderSVG] or fed to external
// Graphviz tooling.
func ToDOT(topo *topology.Topology, plan *ipam.Plan, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph lab {\n")
	fmt.Fprintf(&buf, "  label=%q;\n", topo.Name())
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range topo.Nodes() {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.Name, nodeLabel(n, plan, opts))
	}

	buf.WriteString("\n")
	for i, l := range topo.Links() {
		attrs := ""
		if opts.Addresses {
			attrs = fmt.Sprintf(" [label=%q]", plan.Link(i).Subnet4.String())
		}
		fmt.Fprintf(&buf, "  %q -- %q%s;\n", l.A.Node, l.B.Node, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n *topology.Node, plan *ipam.Plan, opts Options) string {
	if !opts.Addresses {
		return n.Name
	}

	parts := []string{n.Name}
	if lo, ok := plan.Loopback(n.Name); ok {
		parts = append(parts, "lo4: "+lo.IPv4.String(), "lo6: "+lo.IPv6.String())
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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
