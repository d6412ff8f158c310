package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/VASemenov/depender/pkg/graph"
)

const eps = 1e-9

func buildTree(t *testing.T, root string, edges [][2]string) *graph.Graph {
	t.Helper()
	g := graph.New()
	if _, err := g.AddNode(root, graph.TypeRoot, ""); err != nil {
		t.Fatalf("AddNode(%s): %v", root, err)
	}
	for _, e := range edges {
		if _, ok := g.Node(e[1]); !ok {
			if _, err := g.AddNode(e[1], graph.TypeDirectory, ""); err != nil {
				t.Fatalf("AddNode(%s): %v", e[1], err)
			}
		}
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return g
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < eps }

func TestComputeExample(t *testing.T) {
	// root → {a, b}, a → {a1, a2}, b leaf.
	g := buildTree(t, "root", [][2]string{
		{"root", "a"}, {"root", "b"}, {"a", "a1"}, {"a", "a2"},
	})

	geo, err := Compute(g, 1, 1)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	widths := map[string]float64{"a1": 1, "a2": 1, "a": 2, "b": 1, "root": 3}
	for name, want := range widths {
		if got := geo[name].Width; !almostEqual(got, want) {
			t.Errorf("width(%s) = %v, want %v", name, got, want)
		}
	}

	depths := map[string]float64{"root": 0, "a": 1, "b": 1, "a1": 2, "a2": 2}
	for name, want := range depths {
		if got := geo[name].Y; !almostEqual(got, want) {
			t.Errorf("y(%s) = %v, want %v", name, got, want)
		}
	}

	if mid := (geo["a1"].X + geo["a2"].X) / 2; !almostEqual(geo["a"].X, mid) {
		t.Errorf("a.x = %v, want midpoint of children %v", geo["a"].X, mid)
	}
	if !almostEqual(geo["root"].X, 0) {
		t.Errorf("root.x = %v, want 0", geo["root"].X)
	}
}

func TestComputeChildlessRoot(t *testing.T) {
	g := buildTree(t, "root", nil)

	geo, err := Compute(g, 2.5, 1.5)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	got := geo["root"]
	if !almostEqual(got.X, 0) || !almostEqual(got.Y, 0) {
		t.Errorf("root at (%v, %v), want origin", got.X, got.Y)
	}
	if !almostEqual(got.Width, 2.5) || !almostEqual(got.Height, 1.5) {
		t.Errorf("root box %vx%v, want 2.5x1.5", got.Width, got.Height)
	}
}

func TestComputeEmptyGraph(t *testing.T) {
	geo, err := Compute(graph.New(), 1, 1)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(geo) != 0 {
		t.Errorf("geometry for %d nodes, want 0", len(geo))
	}
}

// Sibling spans must never intersect, at any depth and branching factor.
func TestComputeNonOverlap(t *testing.T) {
	g := buildTree(t, "r", [][2]string{
		{"r", "a"}, {"r", "b"}, {"r", "c"},
		{"a", "a1"}, {"a", "a2"}, {"a", "a3"},
		{"b", "b1"},
		{"c", "c1"}, {"c", "c2"},
		{"a1", "x1"}, {"a1", "x2"}, {"a1", "x3"}, {"a1", "x4"},
	})

	geo, err := Compute(g, 1, 1)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	for _, parent := range g.Names() {
		children := g.Children(parent)
		for i := 0; i < len(children); i++ {
			for j := i + 1; j < len(children); j++ {
				a, b := geo[children[i]], geo[children[j]]
				if a.Right() > b.Left()+eps && b.Right() > a.Left()+eps {
					t.Errorf("siblings %s [%v,%v] and %s [%v,%v] overlap",
						children[i], a.Left(), a.Right(),
						children[j], b.Left(), b.Right())
				}
			}
		}
	}
}

// A parent must sit at the midpoint of its leftmost and rightmost child spans,
// and its width must equal the sum of its children's widths.
func TestComputeParentCentering(t *testing.T) {
	g := buildTree(t, "r", [][2]string{
		{"r", "a"}, {"r", "b"},
		{"a", "a1"}, {"a", "a2"}, {"a", "a3"},
		{"b", "b1"}, {"b", "b2"},
		{"b1", "c1"}, {"b1", "c2"}, {"b1", "c3"},
	})

	geo, err := Compute(g, 2, 1)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	for _, parent := range g.Names() {
		children := g.Children(parent)
		if len(children) == 0 {
			continue
		}

		var sum float64
		left, right := math.Inf(1), math.Inf(-1)
		for _, c := range children {
			sum += geo[c].Width
			left = math.Min(left, geo[c].Left())
			right = math.Max(right, geo[c].Right())
		}

		p := geo[parent]
		if !almostEqual(p.Width, sum) {
			t.Errorf("width(%s) = %v, want children sum %v", parent, p.Width, sum)
		}
		if mid := (left + right) / 2; !almostEqual(p.X, mid) {
			t.Errorf("x(%s) = %v, want span midpoint %v", parent, p.X, mid)
		}
	}
}

func TestComputeDepthAlignment(t *testing.T) {
	g := buildTree(t, "r", [][2]string{
		{"r", "a"}, {"r", "b"}, {"a", "a1"}, {"b", "b1"}, {"b1", "d1"},
	})

	const stepY = 3.5
	geo, err := Compute(g, 1, stepY)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if !almostEqual(geo["a1"].Y, geo["b1"].Y) {
		t.Errorf("same-depth nodes a1 (%v) and b1 (%v) differ in y", geo["a1"].Y, geo["b1"].Y)
	}
	if geo["d1"].Y <= geo["b1"].Y || geo["b1"].Y <= geo["r"].Y {
		t.Error("y not strictly increasing with depth")
	}
	for name, g := range geo {
		if !almostEqual(g.Height, stepY) {
			t.Errorf("height(%s) = %v, want %v", name, g.Height, stepY)
		}
	}
}

func TestComputeRejectsNonTrees(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T) *graph.Graph
	}{
		{
			name: "two parents",
			build: func(t *testing.T) *graph.Graph {
				g := buildTree(t, "r", [][2]string{{"r", "a"}, {"r", "b"}})
				if err := g.AddEdge("a", "b"); err != nil {
					t.Fatal(err)
				}
				return g
			},
		},
		{
			name: "parallel parent edge",
			build: func(t *testing.T) *graph.Graph {
				g := buildTree(t, "r", [][2]string{{"r", "a"}})
				if err := g.AddEdge("r", "a"); err != nil {
					t.Fatal(err)
				}
				return g
			},
		},
		{
			name: "cycle",
			build: func(t *testing.T) *graph.Graph {
				g := graph.New()
				for _, n := range []string{"a", "b", "c"} {
					g.AddNode(n, graph.TypeDirectory, "")
				}
				g.AddEdge("a", "b")
				g.AddEdge("b", "c")
				g.AddEdge("c", "a")
				return g
			},
		},
		{
			name: "disconnected",
			build: func(t *testing.T) *graph.Graph {
				g := buildTree(t, "r", [][2]string{{"r", "a"}})
				g.AddNode("island", graph.TypeFile, "")
				g.AddNode("island2", graph.TypeFile, "")
				g.AddEdge("island", "island2")
				return g
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.build(t), 1, 1)
			if !errors.Is(err, ErrNotATree) {
				t.Errorf("Compute() error = %v, want ErrNotATree", err)
			}
		})
	}
}
