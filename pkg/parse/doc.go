// Package parse populates graphs from a project on disk.
//
// [Structure] walks the directory tree and produces the structure graph
// consumed by pkg/layout: one root node, directory and file nodes, and a
// parent→child edge per containment relation. [Code] scans the project's
// Python sources and produces the dependency graph consumed by pkg/classify
// and pkg/matrix: one node per module, one edge per import statement
// (repeated imports are counted).
//
// Both walkers honor excluded directories, a recursion depth limit, and the
// project's .gitignore. Import statements are extracted with tree-sitter
// rather than regular expressions, so multi-line and aliased imports parse
// correctly.
package parse
