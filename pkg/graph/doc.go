// Package graph provides the mapping-based graph model shared by the
// dependency and structure analyses.
//
// A [Graph] owns named nodes and directed edges with integer multiplicity
// (parallel edges are counted, not deduplicated). Two graph kinds are built
// on top of it:
//
//   - Dependency graph: nodes are code modules, edges are import
//     relationships. May be cyclic or disconnected.
//   - Structure graph: nodes are filesystem entries (root/directory/file),
//     edges are parent→child containment. Must form a rooted tree; the
//     layout engine in pkg/layout enforces this.
//
// # Building
//
//	g := graph.New()
//	g.AddNode("app", graph.TypeModule, "")
//	g.AddNode("util", graph.TypeModule, "")
//	g.AddEdge("app", "util")
//
// AddNode rejects duplicate names ([ErrDuplicateNode]); AddEdge rejects
// absent endpoints ([ErrUnknownNode]) and never creates nodes implicitly.
// Degrees are derived, not stored: InDegree/OutDegree sum edge multiplicity.
//
// # Serialization
//
// Graphs serialize to a node-link JSON format via [Marshal]/[Unmarshal] and
// the Read/Write helpers. The wire types carry bson tags so the analysis
// store can persist them unchanged:
//
//	{
//	  "nodes": [{"name": "app"}, {"name": "util"}],
//	  "edges": [{"from": "app", "to": "util", "count": 1}]
//	}
//
// # Concurrency
//
// A Graph may be populated by concurrent scanners only if all AddNode and
// AddEdge calls are serialized by the caller. After population, concurrent
// reads are safe.
package graph
