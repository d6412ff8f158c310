package structview

import (
	"strings"
	"testing"

	"github.com/VASemenov/depender/pkg/graph"
	"github.com/VASemenov/depender/pkg/layout"
)

func TestRenderSVG(t *testing.T) {
	g := graph.New()
	g.AddNode("proj", graph.TypeRoot, "")
	g.AddNode("proj/src", graph.TypeDirectory, "src")
	g.AddNode("proj/main.py", graph.TypeFile, "main.py")
	g.AddEdge("proj", "proj/src")
	g.AddEdge("proj", "proj/main.py")

	geo, err := layout.Compute(g, 1, 1)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	svg := string(RenderSVG(g, geo, Options{}))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("svg header missing")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("svg not closed")
	}
	for _, label := range []string{">proj</text>", ">src</text>", ">main.py</text>"} {
		if !strings.Contains(svg, label) {
			t.Errorf("label %q missing", label)
		}
	}
	// One box per node, one connector per parent edge.
	if got := strings.Count(svg, "<rect"); got != 3 {
		t.Errorf("rect count = %d, want 3", got)
	}
	if got := strings.Count(svg, "<line"); got != 2 {
		t.Errorf("line count = %d, want 2", got)
	}
}

func TestRenderSVGTypeColors(t *testing.T) {
	g := graph.New()
	g.AddNode("root", graph.TypeRoot, "")

	geo, err := layout.Compute(g, 1, 1)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	svg := string(RenderSVG(g, geo, Options{}))
	if !strings.Contains(svg, `fill="#377fb4"`) {
		t.Errorf("root color missing:\n%s", svg)
	}
}

func TestEscapeText(t *testing.T) {
	if got := escapeText("a<b>&c"); got != "a&lt;b&gt;&amp;c" {
		t.Errorf("escapeText = %q", got)
	}
}
