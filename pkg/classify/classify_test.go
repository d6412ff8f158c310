package classify

import (
	"testing"

	"github.com/VASemenov/depender/pkg/color"
	"github.com/VASemenov/depender/pkg/graph"
)

func TestNodeColor(t *testing.T) {
	p := Palette{
		Importer:     color.RGB{R: 0, G: 0, B: 0},
		Imported:     color.RGB{R: 200, G: 100, B: 50},
		Disconnected: color.RGB{R: 255, G: 255, B: 255},
	}

	tests := []struct {
		name    string
		in, out int
		want    color.RGB
	}{
		{name: "disconnected", in: 0, out: 0, want: p.Disconnected},
		{name: "pure importer", in: 0, out: 5, want: p.Importer},
		{name: "pure imported", in: 5, out: 0, want: p.Imported},
		{name: "balanced is midpoint", in: 3, out: 3, want: color.RGB{R: 100, G: 50, B: 25}},
		{name: "weight two sixths", in: 2, out: 4, want: color.RGB{R: 67, G: 33, B: 17}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NodeColor(tt.in, tt.out, p); got != tt.want {
				t.Errorf("NodeColor(%d, %d) = %+v, want %+v", tt.in, tt.out, got, tt.want)
			}
		})
	}
}

// Disconnected nodes must get the disconnected color regardless of the
// endpoint colors chosen.
func TestDisconnectedIgnoresEndpoints(t *testing.T) {
	palettes := []Palette{
		{Disconnected: color.RGB{R: 1, G: 2, B: 3}},
		{Importer: color.RGB{R: 255, G: 0, B: 0}, Imported: color.RGB{R: 0, G: 255, B: 0}, Disconnected: color.RGB{R: 9, G: 9, B: 9}},
	}
	for _, p := range palettes {
		if got := NodeColor(0, 0, p); got != p.Disconnected {
			t.Errorf("NodeColor(0,0) = %+v, want %+v", got, p.Disconnected)
		}
	}
}

func TestColors(t *testing.T) {
	g := graph.New()
	for _, n := range []string{"a", "b", "c"} {
		g.AddNode(n, graph.TypeModule, "")
	}
	g.AddEdge("a", "b") // a imports b; c stays isolated

	got := Colors(g, DefaultPalette())

	if got["a"] != "#428aff" {
		t.Errorf("a = %s, want importer color", got["a"])
	}
	if got["b"] != "#f26d90" {
		t.Errorf("b = %s, want imported color #f26d90", got["b"])
	}
	if got["c"] != "#fcb16f" {
		t.Errorf("c = %s, want disconnected color #fcb16f", got["c"])
	}
}

func TestTypeColor(t *testing.T) {
	p := DefaultStructurePalette()
	tests := []struct {
		typ  graph.NodeType
		want color.RGB
	}{
		{graph.TypeRoot, p.Root},
		{graph.TypeDirectory, p.Dir},
		{graph.TypeFile, p.File},
	}
	for _, tt := range tests {
		if got := TypeColor(tt.typ, p); got != tt.want {
			t.Errorf("TypeColor(%v) = %+v, want %+v", tt.typ, got, tt.want)
		}
	}
}
