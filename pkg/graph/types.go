package graph

// NodeType distinguishes the roles a node can play. Structure graphs use
// Root/Directory/File; dependency graphs use Module for every node.
type NodeType int

const (
	// TypeModule represents a code module in a dependency graph.
	TypeModule NodeType = iota
	// TypeRoot represents the root entry of a structure graph.
	TypeRoot
	// TypeDirectory represents a non-root directory in a structure graph.
	TypeDirectory
	// TypeFile represents a file in a structure graph.
	TypeFile
)

// String returns the wire name of the node type.
func (t NodeType) String() string {
	switch t {
	case TypeRoot:
		return "root"
	case TypeDirectory:
		return "directory"
	case TypeFile:
		return "file"
	default:
		return "module"
	}
}

// TypeFromString maps a wire name back to a NodeType.
// Unrecognized names map to TypeModule.
func TypeFromString(s string) NodeType {
	switch s {
	case "root":
		return TypeRoot
	case "directory":
		return TypeDirectory
	case "file":
		return TypeFile
	default:
		return TypeModule
	}
}

// Node represents a vertex in a dependency or structure graph.
// Identity is the Name; geometry and color are deliberately not part of the
// node - layout results live in a side table (see pkg/layout) and colors are
// computed per render (see pkg/classify). Index is assigned lazily by the
// matrix builder and is not part of identity.
//
// A Node is exclusively owned by the Graph that created it.
type Node struct {
	Name  string   // Unique identifier and lookup key
	Type  NodeType // Closed variant, branched on by layout and coloring
	Label string   // Display text (defaults to Name)
	Index int      // Matrix row/column position, assigned by pkg/matrix
}

// DisplayLabel returns the label if set, otherwise the name.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.Name
}
