package parse

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/VASemenov/depender/pkg/graph"
)

// importTarget is one import recorded in a source file. Relative imports
// carry the number of leading dots so they can be resolved against the
// importing module's package.
type importTarget struct {
	module string   // dotted path after any leading dots ("" for bare "from . import x")
	names  []string // names pulled in by a from-import, nil for plain imports
	level  int      // leading dots of a relative import, 0 for absolute
}

// fileImports pairs a project module with everything it imports.
type fileImports struct {
	module  string
	pkg     string // the module's package, for relative resolution
	targets []importTarget
}

// Code scans the Python sources under root and returns the dependency
// graph: one node per project module, one edge per import (repeated
// imports of the same module are counted, not deduplicated). Imports of
// modules outside the project become external nodes only when
// opts.IncludeExternal is set; otherwise they are dropped.
//
// Files are parsed concurrently, one worker per CPU, but nodes and edges
// are inserted in deterministic (sorted path) order, so two runs over the
// same tree produce identical graphs.
func Code(ctx context.Context, root string, opts Options) (*graph.Graph, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	files, err := pythonFiles(absRoot, opts)
	if err != nil {
		return nil, err
	}

	parsed, err := parseAll(ctx, absRoot, files)
	if err != nil {
		return nil, err
	}

	g := graph.New()
	for _, fi := range parsed {
		if _, err := g.AddNode(fi.module, graph.TypeModule, ""); err != nil {
			return nil, fmt.Errorf("module %s: %w", fi.module, err)
		}
	}

	for _, fi := range parsed {
		for _, t := range fi.targets {
			for _, dest := range resolveTargets(g, fi, t, opts.IncludeExternal) {
				if _, ok := g.Node(dest); !ok {
					if _, err := g.AddNode(dest, graph.TypeModule, ""); err != nil {
						return nil, err
					}
				}
				if err := g.AddEdge(fi.module, dest); err != nil {
					return nil, err
				}
			}
		}
	}
	return g, nil
}

// pythonFiles lists project .py files in sorted order, honoring the same
// exclusion rules as Structure.
func pythonFiles(absRoot string, opts Options) ([]string, error) {
	excluded := excludeSet(opts.ExcludedDirs)
	gi := loadGitignore(absRoot)

	var files []string
	err := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == absRoot {
			return nil
		}
		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if skipDir(d.Name(), rel, excluded, gi) {
				return filepath.SkipDir
			}
			if opts.MaxDepth > 0 && depthOf(rel) > opts.MaxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(rel) != ".py" {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 && !opts.FollowLinks {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		if opts.MaxDepth > 0 && depthOf(rel) > opts.MaxDepth {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// parseAll extracts imports from every file, fanning out across CPUs.
// Results keep the input order so graph construction stays deterministic.
// Each worker owns its parser; tree-sitter parsers are not thread-safe.
func parseAll(ctx context.Context, absRoot string, files []string) ([]fileImports, error) {
	results := make([]fileImports, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.NumCPU())
	for i, rel := range files {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			parser := sitter.NewParser()
			parser.SetLanguage(python.GetLanguage())

			results[i], errs[i] = parseFile(ctx, parser, absRoot, rel)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func parseFile(ctx context.Context, parser *sitter.Parser, absRoot, rel string) (fileImports, error) {
	src, err := os.ReadFile(filepath.Join(absRoot, filepath.FromSlash(rel)))
	if err != nil {
		return fileImports{}, fmt.Errorf("read %s: %w", rel, err)
	}

	fi := fileImports{module: moduleName(rel), pkg: packageOf(rel)}
	if len(src) == 0 {
		return fi, nil
	}

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return fileImports{}, fmt.Errorf("parse %s: %w", rel, err)
	}
	defer tree.Close()

	collectImports(tree.RootNode(), src, &fi)
	return fi, nil
}

// collectImports walks the syntax tree gathering import and from-import
// statements. Imports can appear anywhere (inside functions, conditionals),
// so the whole tree is visited.
func collectImports(node *sitter.Node, src []byte, fi *fileImports) {
	switch node.Type() {
	case "import_statement":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			switch child.Type() {
			case "dotted_name":
				fi.targets = append(fi.targets, importTarget{module: nodeText(child, src)})
			case "aliased_import":
				if name := child.ChildByFieldName("name"); name != nil {
					fi.targets = append(fi.targets, importTarget{module: nodeText(name, src)})
				}
			}
		}
		return
	case "import_from_statement":
		fi.targets = append(fi.targets, fromImportTarget(node, src))
		return
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		collectImports(node.NamedChild(i), src, fi)
	}
}

func fromImportTarget(node *sitter.Node, src []byte) importTarget {
	var t importTarget

	modStart := uint32(0)
	hasModule := false
	if mod := node.ChildByFieldName("module_name"); mod != nil {
		hasModule = true
		modStart = mod.StartByte()
		switch mod.Type() {
		case "dotted_name":
			t.module = nodeText(mod, src)
		case "relative_import":
			text := nodeText(mod, src)
			trimmed := strings.TrimLeft(text, ".")
			t.level = len(text) - len(trimmed)
			t.module = trimmed
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if hasModule && child.StartByte() == modStart {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			t.names = append(t.names, nodeText(child, src))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				t.names = append(t.names, nodeText(name, src))
			}
		case "wildcard_import":
			t.names = append(t.names, "*")
		}
	}
	return t
}

// resolveTargets maps one import statement to graph node names.
// A from-import yields one edge per imported name; a plain import yields
// one. Imports that resolve to a project module point at it; everything
// else points at the external top-level module, kept only when
// includeExternal is set.
func resolveTargets(g *graph.Graph, fi fileImports, t importTarget, includeExternal bool) []string {
	base := t.module
	if t.level > 0 {
		base = resolveRelative(fi.pkg, t.module, t.level)
		if base == "" {
			return nil
		}
	}

	if t.names == nil {
		if dest := resolveOne(g, base, t.level > 0, includeExternal); dest != "" {
			return []string{dest}
		}
		return nil
	}

	var dests []string
	for _, name := range t.names {
		candidate := base
		if name != "*" && base != "" {
			candidate = base + "." + name
		} else if name != "*" && base == "" {
			candidate = name
		}
		if dest := resolveOne(g, candidate, t.level > 0, includeExternal); dest != "" {
			dests = append(dests, dest)
		}
	}
	return dests
}

// resolveOne trims trailing components until a project module matches.
// "pkg.mod.attr" resolves to "pkg.mod" when only the latter is a module.
func resolveOne(g *graph.Graph, candidate string, relative, includeExternal bool) string {
	for c := candidate; c != ""; {
		if _, ok := g.Node(c); ok {
			return c
		}
		idx := strings.LastIndexByte(c, '.')
		if idx < 0 {
			break
		}
		c = c[:idx]
	}
	// Unresolved relative imports stay internal; dropping them beats
	// inventing an external module that cannot exist.
	if relative || !includeExternal {
		return ""
	}
	if idx := strings.IndexByte(candidate, '.'); idx > 0 {
		return candidate[:idx]
	}
	return candidate
}

// resolveRelative applies the leading dots of a relative import to the
// importing module's package. One dot means the package itself, each
// further dot one level up. Returns "" when the import escapes the project.
func resolveRelative(pkg, module string, level int) string {
	parts := []string{}
	if pkg != "" {
		parts = strings.Split(pkg, ".")
	}
	if up := level - 1; up > 0 {
		if up > len(parts) {
			return ""
		}
		parts = parts[:len(parts)-up]
	}
	if module != "" {
		parts = append(parts, module)
	}
	return strings.Join(parts, ".")
}

// moduleName converts a root-relative path to a dotted module path.
// "a/b/c.py" → "a.b.c"; "a/b/__init__.py" → "a.b".
func moduleName(rel string) string {
	rel = strings.TrimSuffix(rel, ".py")
	if strings.HasSuffix(rel, "/__init__") {
		rel = strings.TrimSuffix(rel, "/__init__")
	} else if rel == "__init__" {
		return "__init__" // a bare root __init__.py keeps its name
	}
	return strings.ReplaceAll(rel, "/", ".")
}

// packageOf returns the package a module lives in, for relative imports.
// For "a/b/c.py" that is "a.b"; for "a/b/__init__.py" it is "a.b" itself.
func packageOf(rel string) string {
	if strings.HasSuffix(rel, "/__init__.py") || rel == "__init__.py" {
		return moduleName(rel)
	}
	dir := filepath.ToSlash(filepath.Dir(rel))
	if dir == "." {
		return ""
	}
	return strings.ReplaceAll(dir, "/", ".")
}

func nodeText(n *sitter.Node, src []byte) string {
	return string(src[n.StartByte():n.EndByte()])
}
