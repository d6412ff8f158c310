// Package matrix builds the dense dependency matrix for matrix-style
// rendering.
//
// The matrix is an N×N grid over all ordered pairs of nodes: the cell at
// (importing, imported) counts the edges from the row node to the column
// node, including parallel edges. Cells carry a renderer-ready color but no
// geometry - positioning the grid is the renderer's job.
package matrix

import (
	"slices"

	"github.com/VASemenov/depender/pkg/classify"
	"github.com/VASemenov/depender/pkg/graph"
)

// NeutralColor fills cells with no recorded imports.
const NeutralColor = "#ffffff"

// Cell is one entry of the dependency matrix: Row imports Col Count times.
type Cell struct {
	Row   string `json:"row" bson:"row"`
	Col   string `json:"col" bson:"col"`
	Count int    `json:"count" bson:"count"`
	Color string `json:"color" bson:"color"`
}

// Matrix is the dense cell grid plus the axis ordering used to build it.
// Names holds the shared row/column order; Cells lists all N² cells in
// row-major order.
type Matrix struct {
	Names []string `json:"names" bson:"names"`
	Cells []Cell   `json:"cells" bson:"cells"`
}

// Size returns N, the number of rows (and columns).
func (m Matrix) Size() int { return len(m.Names) }

// At returns the cell at the given row-major position.
func (m Matrix) At(row, col int) Cell { return m.Cells[row*len(m.Names)+col] }

// Build constructs the dependency matrix for g.
//
// Axis order is reverse-alphabetical and identical for rows and columns, so
// the matrix is square and consistently indexed. Each node's Index field is
// set to its 0-based position in that order. Cell counts accumulate edge
// multiplicity; only zero and positive counts occur, colored with the
// neutral and importer colors respectively.
func Build(g *graph.Graph, p classify.Palette) Matrix {
	names := g.Names()
	slices.Sort(names)
	slices.Reverse(names)

	for i, name := range names {
		if n, ok := g.Node(name); ok {
			n.Index = i
		}
	}

	n := len(names)
	counts := make([]int, n*n)
	for source, dests := range g.Edges() {
		src, _ := g.Node(source)
		for dest, mult := range dests {
			dst, _ := g.Node(dest)
			counts[src.Index*n+dst.Index] += mult
		}
	}

	importer := p.Importer.Hex()
	cells := make([]Cell, 0, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			c := Cell{Row: names[row], Col: names[col], Count: counts[row*n+col], Color: NeutralColor}
			if c.Count > 0 {
				c.Color = importer
			}
			cells = append(cells, c)
		}
	}

	return Matrix{Names: names, Cells: cells}
}
