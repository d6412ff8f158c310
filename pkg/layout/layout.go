package layout

import (
	"errors"
	"fmt"

	"github.com/VASemenov/depender/pkg/graph"
)

// ErrNotATree is returned by [Compute] when the graph is not a rooted tree:
// no unique root, a node with multiple parents, a parallel parent edge, a
// cycle, or a disconnected component. The layout recursion assumes a tree
// and fails fast instead of producing silently wrong geometry.
var ErrNotATree = errors.New("graph is not a rooted tree")

// Geometry is the computed bounding box of one node. X and Y are center
// coordinates; Width and Height are always ≥ 0. Geometry is kept in a side
// table keyed by node name rather than on graph.Node, so the graph model
// stays kind-agnostic.
type Geometry struct {
	X, Y          float64
	Width, Height float64
}

// Left returns the left edge of the horizontal span.
func (g Geometry) Left() float64 { return g.X - g.Width/2 }

// Right returns the right edge of the horizontal span.
func (g Geometry) Right() float64 { return g.X + g.Width/2 }

// Compute lays out a rooted tree graph and returns the geometry of every
// node, keyed by name.
//
// Vertical placement is depth-synchronized: a node at depth d has
// y = d*stepY, and every node's height is stepY. Horizontal placement runs
// in two passes: widths bottom-up (a leaf is stepX wide, an internal node
// as wide as the sum of its children - no padding is injected, callers
// wanting spacing increase stepX), then centers top-down (siblings packed
// left-to-right from the parent's left edge, each centered in its own
// span). The root is centered at x = 0. A childless root yields a single
// stepX-wide node at the origin.
//
// The graph must satisfy the tree invariant; otherwise ErrNotATree is
// returned before any traversal happens.
func Compute(g *graph.Graph, stepX, stepY float64) (map[string]Geometry, error) {
	if g.NodeCount() == 0 {
		return map[string]Geometry{}, nil
	}

	root, err := validateTree(g)
	if err != nil {
		return nil, err
	}

	geo := make(map[string]Geometry, g.NodeCount())

	var measure func(name string) float64
	measure = func(name string) float64 {
		children := g.Children(name)
		width := 0.0
		for _, child := range children {
			width += measure(child)
		}
		if len(children) == 0 {
			width = stepX
		}
		geo[name] = Geometry{Width: width, Height: stepY}
		return width
	}
	measure(root)

	var place func(name string, x float64, depth int)
	place = func(name string, x float64, depth int) {
		node := geo[name]
		node.X = x
		node.Y = float64(depth) * stepY
		geo[name] = node

		cursor := x - node.Width/2
		for _, child := range g.Children(name) {
			w := geo[child].Width
			place(child, cursor+w/2, depth+1)
			cursor += w
		}
	}
	place(root, 0, 0)

	return geo, nil
}

// validateTree checks the rooted-tree invariant and returns the root name.
// Exactly one node may have no incoming edges; every other node must have
// exactly one (a parallel parent edge counts as two). All nodes must be
// reachable from the root. Together these conditions also exclude cycles.
func validateTree(g *graph.Graph) (string, error) {
	var root string
	for _, name := range g.Names() {
		switch in := g.InDegree(name); {
		case in == 0:
			if root != "" {
				return "", fmt.Errorf("%w: multiple roots %q and %q", ErrNotATree, root, name)
			}
			root = name
		case in > 1:
			return "", fmt.Errorf("%w: node %q has %d parent edges", ErrNotATree, name, in)
		}
	}
	if root == "" {
		return "", fmt.Errorf("%w: no root node", ErrNotATree)
	}

	visited := make(map[string]bool, g.NodeCount())
	var walk func(name string)
	walk = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		for _, child := range g.Children(name) {
			walk(child)
		}
	}
	walk(root)

	if len(visited) != g.NodeCount() {
		return "", fmt.Errorf("%w: %d of %d nodes unreachable from root %q",
			ErrNotATree, g.NodeCount()-len(visited), g.NodeCount(), root)
	}
	return root, nil
}
