// Package depgraph renders import graphs as node-link diagrams using Graphviz.
//
// Nodes are colored by their import role: pure importers at one end of the
// gradient, purely imported modules at the other, disconnected modules in a
// separate color. Edges carry a count label when a module is imported more
// than once.
package depgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/VASemenov/depender/pkg/graph"
)

// Engine selects the Graphviz layout algorithm.
type Engine string

const (
	// EngineFDP is the force-directed default, best for import graphs.
	EngineFDP Engine = "fdp"
	// EngineDOT is the layered engine, useful for small acyclic graphs.
	EngineDOT Engine = "dot"
	// EngineNeato is the spring-model engine.
	EngineNeato Engine = "neato"
)

func (e Engine) layout() graphviz.Layout {
	switch e {
	case EngineDOT:
		return graphviz.DOT
	case EngineNeato:
		return graphviz.NEATO
	default:
		return graphviz.FDP
	}
}

// Options configures import graph rendering.
type Options struct {
	// Engine selects the Graphviz layout. Defaults to [EngineFDP].
	Engine Engine

	// Detailed includes in/out degree counts in node labels.
	Detailed bool
}

// ToDOT converts an import graph to Graphviz DOT format. colors maps node
// names to #rrggbb fill colors, typically from classify.Colors; nodes with
// no entry fall back to white.
func ToDOT(g *graph.Graph, colors map[string]string, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph imports {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#555555\", arrowsize=0.7];\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("\n")

	for _, name := range g.Names() {
		n, _ := g.Node(name)
		attrs := fmt.Sprintf("label=%q", fmtLabel(g, n, opts.Detailed))
		if c, ok := colors[name]; ok {
			attrs += fmt.Sprintf(", fillcolor=%q", c)
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", name, attrs)
	}

	buf.WriteString("\n")
	for from, dests := range g.Edges() {
		for _, to := range g.Children(from) {
			if count := dests[to]; count > 1 {
				fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", from, to, strconv.Itoa(count))
			} else {
				fmt.Fprintf(&buf, "  %q -> %q;\n", from, to)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *graph.Graph, n *graph.Node, detailed bool) string {
	label := n.DisplayLabel()
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\nin: %d  out: %d", label, g.InDegree(n.Name), g.OutDegree(n.Name))
}

// RenderSVG renders a DOT graph to SVG with the given engine.
func RenderSVG(ctx context.Context, dot string, engine Engine) ([]byte, error) {
	return renderFormat(ctx, dot, engine, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG with the given engine.
func RenderPNG(ctx context.Context, dot string, engine Engine) ([]byte, error) {
	return renderFormat(ctx, dot, engine, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, engine Engine, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(engine.layout())

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == graphviz.SVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the outer svg tag so the diagram scales cleanly
// when embedded in an HTML page.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
