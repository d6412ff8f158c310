package parse

import (
	"context"
	"testing"

	"github.com/VASemenov/depender/pkg/graph"
)

func TestModuleName(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"main.py", "main"},
		{"a/b/c.py", "a.b.c"},
		{"a/b/__init__.py", "a.b"},
		{"__init__.py", "__init__"},
	}
	for _, tt := range tests {
		if got := moduleName(tt.rel); got != tt.want {
			t.Errorf("moduleName(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}

func TestPackageOf(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"main.py", ""},
		{"a/b/c.py", "a.b"},
		{"a/b/__init__.py", "a.b"},
		{"__init__.py", "__init__"},
	}
	for _, tt := range tests {
		if got := packageOf(tt.rel); got != tt.want {
			t.Errorf("packageOf(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}

func TestResolveRelative(t *testing.T) {
	tests := []struct {
		pkg    string
		module string
		level  int
		want   string
	}{
		{"a.b", "", 1, "a.b"},
		{"a.b", "util", 1, "a.b.util"},
		{"a.b", "util", 2, "a.util"},
		// A relative import cannot climb past the project root.
		{"a.b", "", 3, ""},
		{"", "", 1, ""},
	}
	for _, tt := range tests {
		if got := resolveRelative(tt.pkg, tt.module, tt.level); got != tt.want {
			t.Errorf("resolveRelative(%q, %q, %d) = %q, want %q",
				tt.pkg, tt.module, tt.level, got, tt.want)
		}
	}
}

func TestResolveTargets(t *testing.T) {
	g := graph.New()
	for _, name := range []string{"main", "util", "pkg", "pkg.data"} {
		if _, err := g.AddNode(name, graph.TypeModule, ""); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
	}
	fi := fileImports{module: "pkg.helper", pkg: "pkg"}

	tests := []struct {
		name     string
		target   importTarget
		external bool
		want     []string
	}{
		{
			name:   "plain project import",
			target: importTarget{module: "util"},
			want:   []string{"util"},
		},
		{
			name:   "from-import of project module",
			target: importTarget{module: "pkg", names: []string{"data"}},
			want:   []string{"pkg.data"},
		},
		{
			name:   "from-import of attribute falls back to module",
			target: importTarget{module: "pkg.data", names: []string{"load"}},
			want:   []string{"pkg.data"},
		},
		{
			name:   "relative sibling import",
			target: importTarget{names: []string{"data"}, level: 1},
			want:   []string{"pkg.data"},
		},
		{
			name:   "external dropped by default",
			target: importTarget{module: "os.path"},
			want:   nil,
		},
		{
			name:     "external collapses to top level",
			target:   importTarget{module: "os.path"},
			external: true,
			want:     []string{"os"},
		},
		{
			name:   "relative import of a package attribute",
			target: importTarget{names: []string{"nosuch"}, level: 1},
			want:   []string{"pkg"},
		},
		{
			name:   "relative import past the root dropped",
			target: importTarget{names: []string{"x"}, level: 4},
			want:   nil,
		},
		{
			name:   "wildcard import targets the module",
			target: importTarget{module: "pkg", names: []string{"*"}},
			want:   []string{"pkg"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveTargets(g, fi, tt.target, tt.external)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("dest[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCode(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"main.py":         "import util\nfrom pkg import helper\n",
		"util.py":         "import os\n",
		"pkg/__init__.py": "",
		"pkg/helper.py":   "from . import data\nimport util\nimport util\n",
		"pkg/data.py":     "",
	})

	g, err := Code(context.Background(), dir, Options{})
	if err != nil {
		t.Fatalf("Code: %v", err)
	}

	for _, name := range []string{"main", "util", "pkg", "pkg.helper", "pkg.data"} {
		if _, ok := g.Node(name); !ok {
			t.Errorf("module %s missing", name)
		}
	}
	if _, ok := g.Node("os"); ok {
		t.Error("external module present without IncludeExternal")
	}

	edges := []struct {
		from, to string
		count    int
	}{
		{"main", "util", 1},
		{"main", "pkg.helper", 1},
		{"pkg.helper", "pkg.data", 1},
		{"pkg.helper", "util", 2},
	}
	for _, e := range edges {
		if got := g.Multiplicity(e.from, e.to); got != e.count {
			t.Errorf("%s→%s multiplicity = %d, want %d", e.from, e.to, got, e.count)
		}
	}
}

func TestCodeIncludeExternal(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"app.py": "import os.path\nfrom json import loads\n",
	})

	g, err := Code(context.Background(), dir, Options{IncludeExternal: true})
	if err != nil {
		t.Fatalf("Code: %v", err)
	}

	if got := g.Multiplicity("app", "os"); got != 1 {
		t.Errorf("app→os multiplicity = %d, want 1", got)
	}
	if got := g.Multiplicity("app", "json"); got != 1 {
		t.Errorf("app→json multiplicity = %d, want 1", got)
	}
}
