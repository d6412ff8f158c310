package graph

import (
	"errors"
	"testing"
)

func TestAddNode(t *testing.T) {
	tests := []struct {
		name     string
		nodeName string
		setup    func(g *Graph)
		wantErr  error
	}{
		{
			name:     "simple",
			nodeName: "app",
		},
		{
			name:     "empty name",
			nodeName: "",
			wantErr:  ErrInvalidNodeName,
		},
		{
			name:     "duplicate",
			nodeName: "app",
			setup: func(g *Graph) {
				g.AddNode("app", TypeModule, "")
			},
			wantErr: ErrDuplicateNode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			if tt.setup != nil {
				tt.setup(g)
			}
			_, err := g.AddNode(tt.nodeName, TypeModule, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddNode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddNodeRejectsDuplicateWithoutMutation(t *testing.T) {
	g := New()
	if _, err := g.AddNode("a", TypeModule, "first"); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if _, err := g.AddNode("a", TypeFile, "second"); !errors.Is(err, ErrDuplicateNode) {
		t.Fatalf("second AddNode error = %v, want ErrDuplicateNode", err)
	}

	n, ok := g.Node("a")
	if !ok {
		t.Fatal("node a missing")
	}
	if n.Label != "first" || n.Type != TypeModule {
		t.Errorf("node mutated by rejected insert: %+v", n)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
}

func TestAddEdge(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		wantErr  bool
	}{
		{name: "valid", from: "a", to: "b"},
		{name: "self edge", from: "a", to: "a"},
		{name: "unknown source", from: "x", to: "b", wantErr: true},
		{name: "unknown destination", from: "a", to: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			g.AddNode("a", TypeModule, "")
			g.AddNode("b", TypeModule, "")

			err := g.AddEdge(tt.from, tt.to)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownNode) {
					t.Errorf("AddEdge() error = %v, want ErrUnknownNode", err)
				}
				if g.EdgeCount() != 0 {
					t.Errorf("rejected edge changed state: EdgeCount() = %d", g.EdgeCount())
				}
				return
			}
			if err != nil {
				t.Fatalf("AddEdge: %v", err)
			}
			if got := g.Multiplicity(tt.from, tt.to); got != 1 {
				t.Errorf("Multiplicity(%s,%s) = %d, want 1", tt.from, tt.to, got)
			}
		})
	}
}

func TestMultiplicityCounts(t *testing.T) {
	g := New()
	g.AddNode("a", TypeModule, "")
	g.AddNode("b", TypeModule, "")

	for range 3 {
		if err := g.AddEdge("a", "b"); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}

	if got := g.Multiplicity("a", "b"); got != 3 {
		t.Errorf("Multiplicity = %d, want 3", got)
	}
	if got := g.OutDegree("a"); got != 3 {
		t.Errorf("OutDegree(a) = %d, want 3", got)
	}
	if got := g.InDegree("b"); got != 3 {
		t.Errorf("InDegree(b) = %d, want 3", got)
	}
	if got := len(g.Children("a")); got != 1 {
		t.Errorf("Children(a) has %d entries, want 1 distinct", got)
	}
}

// Degree sums and the total multiplicity must always agree.
func TestDegreeSumInvariant(t *testing.T) {
	g := New()
	for _, name := range []string{"a", "b", "c", "d"} {
		g.AddNode(name, TypeModule, "")
	}
	edges := [][2]string{{"a", "b"}, {"a", "b"}, {"b", "a"}, {"b", "c"}, {"c", "c"}}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}

	var inSum, outSum int
	for _, name := range g.Names() {
		inSum += g.InDegree(name)
		outSum += g.OutDegree(name)
	}

	if inSum != g.EdgeCount() || outSum != g.EdgeCount() {
		t.Errorf("degree sums in=%d out=%d, want both %d", inSum, outSum, g.EdgeCount())
	}
}

func TestNamesInsertionOrder(t *testing.T) {
	g := New()
	names := []string{"zeta", "alpha", "mid"}
	for _, n := range names {
		g.AddNode(n, TypeModule, "")
	}

	got := g.Names()
	if len(got) != len(names) {
		t.Fatalf("Names() = %v, want %v", got, names)
	}
	for i := range names {
		if got[i] != names[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, got[i], names[i])
		}
	}
}

func TestEdgesIterRestartable(t *testing.T) {
	g := New()
	g.AddNode("a", TypeModule, "")
	g.AddNode("b", TypeModule, "")
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")
	g.AddEdge("b", "a")

	count := func() int {
		total := 0
		for _, dests := range g.Edges() {
			for _, m := range dests {
				total += m
			}
		}
		return total
	}

	if first, second := count(), count(); first != 3 || second != 3 {
		t.Errorf("Edges() totals = %d, %d; want 3 on both passes", first, second)
	}
}

func TestDisplayLabel(t *testing.T) {
	g := New()
	g.AddNode("pkg/a", TypeModule, "a")
	g.AddNode("pkg/b", TypeModule, "")

	a, _ := g.Node("pkg/a")
	b, _ := g.Node("pkg/b")
	if a.DisplayLabel() != "a" {
		t.Errorf("DisplayLabel() = %s, want a", a.DisplayLabel())
	}
	if b.DisplayLabel() != "pkg/b" {
		t.Errorf("DisplayLabel() = %s, want pkg/b", b.DisplayLabel())
	}
}
