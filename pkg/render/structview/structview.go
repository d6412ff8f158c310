// Package structview renders directory trees as SVG from computed geometry.
//
// Each node becomes a rounded box placed at its layout position, colored by
// node type, with a connector line to its parent. The renderer draws in
// graph insertion order, which for walked trees is parents before children.
package structview

import (
	"bytes"
	"fmt"

	"github.com/VASemenov/depender/pkg/classify"
	"github.com/VASemenov/depender/pkg/graph"
	"github.com/VASemenov/depender/pkg/layout"
)

// Options configures structure rendering.
type Options struct {
	// Palette supplies per-type colors. The zero value means defaults.
	Palette classify.StructurePalette

	// BoxWidth and BoxHeight size each node box in SVG units. The layout
	// step sizes should leave at least this much room per node.
	BoxWidth  float64
	BoxHeight float64

	// FontSize for node labels. Defaults to BoxHeight * 0.4.
	FontSize float64
}

func (o Options) withDefaults() Options {
	zero := classify.StructurePalette{}
	if o.Palette == zero {
		o.Palette = classify.DefaultStructurePalette()
	}
	if o.BoxWidth == 0 {
		o.BoxWidth = 90
	}
	if o.BoxHeight == 0 {
		o.BoxHeight = 36
	}
	if o.FontSize == 0 {
		o.FontSize = o.BoxHeight * 0.4
	}
	return o
}

// RenderSVG draws the tree described by g and its geometry as SVG. Geometry
// coordinates are abstract layout units; they are scaled so one layout step
// maps to the configured box footprint with padding.
func RenderSVG(g *graph.Graph, geo map[string]layout.Geometry, opts Options) []byte {
	opts = opts.withDefaults()

	// Scale layout units to pixels with breathing room around each box.
	scaleX := opts.BoxWidth * 1.2
	scaleY := opts.BoxHeight * 2.2

	minX, maxX, maxY := bounds(geo)
	pad := opts.BoxWidth
	width := (maxX-minX)*scaleX + 2*pad
	height := maxY*scaleY + opts.BoxHeight + 2*pad

	// center of a node box in pixel space
	cx := func(geom layout.Geometry) float64 { return (geom.X-minX)*scaleX + pad }
	cy := func(geom layout.Geometry) float64 { return geom.Y*scaleY + opts.BoxHeight/2 + pad }

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	// Connectors first so boxes draw over the line ends.
	for _, name := range g.Names() {
		child, ok := geo[name]
		if !ok {
			continue
		}
		for _, parent := range g.Parents(name) {
			pg, ok := geo[parent]
			if !ok {
				continue
			}
			fmt.Fprintf(&buf,
				`  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#999999" stroke-width="1.5"/>`+"\n",
				cx(pg), cy(pg)+opts.BoxHeight/2, cx(child), cy(child)-opts.BoxHeight/2)
		}
	}

	for _, name := range g.Names() {
		geom, ok := geo[name]
		if !ok {
			continue
		}
		n, _ := g.Node(name)
		fill := classify.TypeColor(n.Type, opts.Palette).Hex()
		x := cx(geom)
		y := cy(geom)
		fmt.Fprintf(&buf,
			`  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="%s" stroke="#333333"/>`+"\n",
			x-opts.BoxWidth/2, y-opts.BoxHeight/2, opts.BoxWidth, opts.BoxHeight, fill)
		fmt.Fprintf(&buf,
			`  <text x="%.1f" y="%.1f" font-size="%.1f" font-family="sans-serif" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
			x, y, opts.FontSize, escapeText(n.DisplayLabel()))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func bounds(geo map[string]layout.Geometry) (minX, maxX, maxY float64) {
	first := true
	for _, g := range geo {
		if first {
			minX, maxX, maxY = g.X, g.X, g.Y
			first = false
			continue
		}
		if g.X < minX {
			minX = g.X
		}
		if g.X > maxX {
			maxX = g.X
		}
		if g.Y > maxY {
			maxY = g.Y
		}
	}
	return minX, maxX, maxY
}

func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
