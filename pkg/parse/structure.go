package parse

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/VASemenov/depender/pkg/graph"
)

// Options controls project walking for both graph kinds.
type Options struct {
	// ExcludedDirs lists directory names or root-relative paths to skip
	// entirely.
	ExcludedDirs []string

	// MaxDepth limits directory recursion. Zero or negative means unlimited.
	MaxDepth int

	// FollowLinks visits symlinked files instead of skipping them.
	// Symlinked directories are never descended into, to keep the structure
	// graph a tree even in the presence of link cycles.
	FollowLinks bool

	// IncludeExternal keeps imports of modules outside the project in the
	// dependency graph. Ignored by Structure.
	IncludeExternal bool
}

// alwaysSkipped are directory names never worth graphing.
// The project's .gitignore handles the rest.
var alwaysSkipped = map[string]struct{}{
	".git":          {},
	".hg":           {},
	".svn":          {},
	"__pycache__":   {},
	".mypy_cache":   {},
	".pytest_cache": {},
	".ruff_cache":   {},
	".tox":          {},
	"node_modules":  {},
}

// Structure walks the directory tree rooted at root and returns the
// structure graph: the root node, a node per kept directory and file, and
// a parent→child edge per containment relation. Node names are the root's
// base name followed by the root-relative path, so they are unique; labels
// are base names.
func Structure(root string, opts Options) (*graph.Graph, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	excluded := excludeSet(opts.ExcludedDirs)
	gi := loadGitignore(absRoot)
	rootName := filepath.Base(absRoot)

	g := graph.New()
	if _, err := g.AddNode(rootName, graph.TypeRoot, rootName); err != nil {
		return nil, err
	}

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
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
			return addEntry(g, rootName, rel, graph.TypeDirectory)
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
		return addEntry(g, rootName, rel, graph.TypeFile)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// addEntry inserts the node for rel and the edge from its parent.
// WalkDir visits parents before children, so the parent node always exists.
func addEntry(g *graph.Graph, rootName, rel string, typ graph.NodeType) error {
	name := rootName + "/" + rel
	if _, err := g.AddNode(name, typ, filepath.Base(rel)); err != nil {
		return err
	}

	parent := rootName
	if dir := strings.TrimSuffix(rel, "/"+filepath.Base(rel)); dir != rel {
		parent = rootName + "/" + dir
	}
	return g.AddEdge(parent, name)
}

func skipDir(name, rel string, excluded map[string]struct{}, gi *ignore.GitIgnore) bool {
	if _, skip := alwaysSkipped[name]; skip {
		return true
	}
	if _, skip := excluded[name]; skip {
		return true
	}
	if _, skip := excluded[rel]; skip {
		return true
	}
	return gi != nil && gi.MatchesPath(rel)
}

func excludeSet(dirs []string) map[string]struct{} {
	set := make(map[string]struct{}, len(dirs))
	for _, d := range dirs {
		set[filepath.ToSlash(filepath.Clean(d))] = struct{}{}
	}
	return set
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

func depthOf(rel string) int {
	return strings.Count(rel, "/") + 1
}
