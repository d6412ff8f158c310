package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
)

// =============================================================================
// Wire Format - Graph Serialization
// =============================================================================

// File is the canonical serialization format for graphs. It is used for JSON
// artifacts, the serve API, caching, and the analysis store.
//
// The format is human-readable and designed for round-trip fidelity:
// build → export → re-import produces an equivalent graph.
type File struct {
	Nodes []FileNode `json:"nodes" bson:"nodes"`
	Edges []FileEdge `json:"edges" bson:"edges"`
}

// FileNode is the serialized form of a node.
type FileNode struct {
	Name  string `json:"name" bson:"name"`
	Type  string `json:"type,omitempty" bson:"type,omitempty"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// FileEdge is the serialized form of a directed edge with its multiplicity.
// A zero or absent count is read back as 1.
type FileEdge struct {
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
	Count int    `json:"count,omitempty" bson:"count,omitempty"`
}

// Export converts a Graph to its serialization format.
// Nodes keep insertion order; edges are sorted by (from, to) for
// deterministic output.
func Export(g *Graph) File {
	out := File{Nodes: make([]FileNode, 0, g.NodeCount())}

	for _, name := range g.Names() {
		n, _ := g.Node(name)
		fn := FileNode{Name: n.Name, Label: n.Label}
		if n.Type != TypeModule {
			fn.Type = n.Type.String()
		}
		out.Nodes = append(out.Nodes, fn)
	}

	for source, dests := range g.Edges() {
		for _, to := range g.Children(source) {
			out.Edges = append(out.Edges, FileEdge{From: source, To: to, Count: dests[to]})
		}
	}
	slices.SortFunc(out.Edges, func(a, b FileEdge) int {
		if a.From != b.From {
			if a.From < b.From {
				return -1
			}
			return 1
		}
		if a.To < b.To {
			return -1
		}
		if a.To > b.To {
			return 1
		}
		return 0
	})

	return out
}

// Import converts a File back into a Graph.
// Returns an error for duplicate node names or edges referencing absent
// endpoints, wrapped with the offending node or edge.
func Import(f File) (*Graph, error) {
	g := New()
	for _, fn := range f.Nodes {
		if _, err := g.AddNode(fn.Name, TypeFromString(fn.Type), fn.Label); err != nil {
			return nil, fmt.Errorf("add node %s: %w", fn.Name, err)
		}
	}
	for _, fe := range f.Edges {
		count := fe.Count
		if count <= 0 {
			count = 1
		}
		for range count {
			if err := g.AddEdge(fe.From, fe.To); err != nil {
				return nil, fmt.Errorf("add edge %s→%s: %w", fe.From, fe.To, err)
			}
		}
	}
	return g, nil
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal converts a Graph to pretty-printed JSON bytes.
func Marshal(g *Graph) ([]byte, error) {
	return json.MarshalIndent(Export(g), "", "  ")
}

// Unmarshal decodes JSON bytes into a Graph.
func Unmarshal(data []byte) (*Graph, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal graph: %w", err)
	}
	return Import(f)
}

// Write encodes a Graph as JSON to w.
func Write(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Export(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON graph from r.
func Read(r io.Reader) (*Graph, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return Import(f)
}

// WriteFile writes a Graph to a JSON file at path.
func WriteFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f)
}

// ReadFile reads a JSON file and returns the decoded Graph.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
