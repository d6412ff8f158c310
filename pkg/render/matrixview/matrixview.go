// Package matrixview renders adjacency matrices as SVG grids.
//
// Rows are importers, columns are imported modules. Cells with at least one
// import are filled with the importer color and show the count; empty cells
// stay neutral.
package matrixview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/VASemenov/depender/pkg/matrix"
)

// Options configures matrix rendering.
type Options struct {
	// CellSize is the side of one cell in SVG units. Defaults to 28.
	CellSize float64

	// LabelSpace reserves room for axis labels. Defaults to 5 cells.
	LabelSpace float64
}

func (o Options) withDefaults() Options {
	if o.CellSize == 0 {
		o.CellSize = 28
	}
	if o.LabelSpace == 0 {
		o.LabelSpace = o.CellSize * 5
	}
	return o
}

// RenderSVG draws the matrix as an SVG grid.
func RenderSVG(m matrix.Matrix, opts Options) []byte {
	opts = opts.withDefaults()
	n := m.Size()
	cell := opts.CellSize
	origin := opts.LabelSpace
	side := origin + float64(n)*cell + cell

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		side, side, side, side)

	fontSize := cell * 0.45

	// Row labels on the left, column labels rotated along the top.
	for i, name := range m.Names {
		y := origin + float64(i)*cell + cell/2
		fmt.Fprintf(&buf,
			`  <text x="%.1f" y="%.1f" font-size="%.1f" font-family="monospace" text-anchor="end" dominant-baseline="central">%s</text>`+"\n",
			origin-cell/2, y, fontSize, escapeText(name))

		x := origin + float64(i)*cell + cell/2
		fmt.Fprintf(&buf,
			`  <text x="%.1f" y="%.1f" font-size="%.1f" font-family="monospace" text-anchor="start" dominant-baseline="central" transform="rotate(-60 %.1f %.1f)">%s</text>`+"\n",
			x, origin-cell/2, fontSize, x, origin-cell/2, escapeText(name))
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c := m.At(i, j)
			x := origin + float64(j)*cell
			y := origin + float64(i)*cell
			fmt.Fprintf(&buf,
				`  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#cccccc"/>`+"\n",
				x, y, cell, cell, c.Color)
			if c.Count > 0 {
				fmt.Fprintf(&buf,
					`  <text x="%.1f" y="%.1f" font-size="%.1f" font-family="monospace" text-anchor="middle" dominant-baseline="central">%d</text>`+"\n",
					x+cell/2, y+cell/2, fontSize, c.Count)
			}
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
