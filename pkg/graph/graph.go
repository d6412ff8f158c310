package graph

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	// ErrInvalidNodeName is returned by [Graph.AddNode] when the node name
	// is empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeName = errors.New("node name must not be empty")

	// ErrDuplicateNode is returned by [Graph.AddNode] when a node with the
	// same name already exists. Node names are unique within one Graph.
	ErrDuplicateNode = errors.New("duplicate node name")

	// ErrUnknownNode is returned by [Graph.AddEdge] when either endpoint
	// does not exist. Edges never create nodes implicitly.
	ErrUnknownNode = errors.New("unknown node")
)

// Graph is a directed multigraph keyed by node name. Parallel edges between
// the same ordered pair are counted rather than deduplicated, so a module
// that imports the same target twice contributes multiplicity 2.
//
// Insertion order of nodes is preserved and is the default iteration order.
// The zero value is not usable - use New.
//
// Graph holds no internal lock and is not safe for uncoordinated concurrent
// mutation. Once populated it is read-mostly; the classifier, matrix builder,
// and layout engine only read it.
type Graph struct {
	nodes map[string]*Node
	order []string // node names in insertion order

	edges    map[string]map[string]int // source -> destination -> multiplicity
	outgoing map[string][]string       // distinct destinations, first-seen order
	incoming map[string][]string       // distinct sources, first-seen order

	inDeg  map[string]int // incoming multiplicity sums
	outDeg map[string]int // outgoing multiplicity sums

	edgeTotal int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		edges:    make(map[string]map[string]int),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		inDeg:    make(map[string]int),
		outDeg:   make(map[string]int),
	}
}

// AddNode creates and stores a node with the given name, type, and label.
// An empty label defaults to the name at display time, see [Node.DisplayLabel].
// Returns ErrInvalidNodeName for an empty name and ErrDuplicateNode if the
// name is already present; the graph is unchanged on error.
func (g *Graph) AddNode(name string, typ NodeType, label string) (*Node, error) {
	if name == "" {
		return nil, ErrInvalidNodeName
	}
	if _, exists := g.nodes[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, name)
	}
	n := &Node{Name: name, Type: typ, Label: label}
	g.nodes[name] = n
	g.order = append(g.order, name)
	return n, nil
}

// AddEdge records a directed edge from source to destination, incrementing
// the multiplicity counter for the pair. Both endpoints must already exist;
// otherwise ErrUnknownNode is returned and nothing is recorded. Self-edges
// are permitted and counted like any other edge.
func (g *Graph) AddEdge(source, destination string) error {
	if _, ok := g.nodes[source]; !ok {
		return fmt.Errorf("%w: source %q", ErrUnknownNode, source)
	}
	if _, ok := g.nodes[destination]; !ok {
		return fmt.Errorf("%w: destination %q", ErrUnknownNode, destination)
	}

	dests := g.edges[source]
	if dests == nil {
		dests = make(map[string]int)
		g.edges[source] = dests
	}
	if dests[destination] == 0 {
		g.outgoing[source] = append(g.outgoing[source], destination)
		g.incoming[destination] = append(g.incoming[destination], source)
	}
	dests[destination]++
	g.outDeg[source]++
	g.inDeg[destination]++
	g.edgeTotal++
	return nil
}

// Node returns the node with the given name and true, or nil and false.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the total edge multiplicity, counting parallel edges.
func (g *Graph) EdgeCount() int { return g.edgeTotal }

// Names returns all node names in insertion order. Callers that need
// alphabetical ordering (e.g., matrix axes) sort the result explicitly.
func (g *Graph) Names() []string { return slices.Clone(g.order) }

// InDegree returns the summed multiplicity of edges terminating at name.
// Returns 0 if the node doesn't exist.
func (g *Graph) InDegree(name string) int { return g.inDeg[name] }

// OutDegree returns the summed multiplicity of edges originating at name.
// Returns 0 if the node doesn't exist.
func (g *Graph) OutDegree(name string) int { return g.outDeg[name] }

// Multiplicity returns the number of parallel edges from source to destination.
func (g *Graph) Multiplicity(source, destination string) int {
	return g.edges[source][destination]
}

// Children returns the distinct destinations of edges originating at name,
// in first-seen order. The returned slice should not be modified - use it
// as a read-only view.
func (g *Graph) Children(name string) []string { return g.outgoing[name] }

// Parents returns the distinct sources of edges terminating at name, in
// first-seen order. The returned slice should not be modified - use it as
// a read-only view.
func (g *Graph) Parents(name string) []string { return g.incoming[name] }

// Edges returns an iterator over (source, destination multiplicities) pairs
// for every node with at least one outgoing edge, in node insertion order.
// The sequence is restartable. The yielded maps are the graph's internal
// state and must be treated as read-only.
func (g *Graph) Edges() iter.Seq2[string, map[string]int] {
	return func(yield func(string, map[string]int) bool) {
		for _, name := range g.order {
			dests, ok := g.edges[name]
			if !ok {
				continue
			}
			if !yield(name, dests) {
				return
			}
		}
	}
}
