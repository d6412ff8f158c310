// Package classify assigns colors to graph nodes based on their role.
//
// Dependency-graph nodes are colored along a gradient between the "pure
// importer" and "pure imported" endpoint colors according to their in/out
// degree ratio; nodes with no edges at all get a distinct disconnected
// color. Structure-graph nodes are colored by type (root/directory/file).
package classify

import (
	"github.com/VASemenov/depender/pkg/color"
	"github.com/VASemenov/depender/pkg/graph"
)

// Default palette values. These match the CLI flag defaults.
const (
	DefaultImporterColor     = "#428AFF"
	DefaultImportedColor     = "#F26D90"
	DefaultDisconnectedColor = "#FCB16F"

	DefaultRootColor = "#377FB4"
	DefaultDirColor  = "#82CBBA"
	DefaultFileColor = "#ECF7B3"
)

// Palette holds the endpoint colors for dependency-graph classification.
// It is constructed once and passed to every call site rather than being
// re-derived per call.
type Palette struct {
	Importer     color.RGB // modules that only import others
	Imported     color.RGB // modules that are only imported
	Disconnected color.RGB // modules with no edges at all
}

// DefaultPalette returns the default dependency-graph palette.
func DefaultPalette() Palette {
	return Palette{
		Importer:     color.MustParseHex(DefaultImporterColor),
		Imported:     color.MustParseHex(DefaultImportedColor),
		Disconnected: color.MustParseHex(DefaultDisconnectedColor),
	}
}

// StructurePalette holds per-type colors for structure-graph nodes.
type StructurePalette struct {
	Root color.RGB
	Dir  color.RGB
	File color.RGB
}

// DefaultStructurePalette returns the default structure-graph palette.
func DefaultStructurePalette() StructurePalette {
	return StructurePalette{
		Root: color.MustParseHex(DefaultRootColor),
		Dir:  color.MustParseHex(DefaultDirColor),
		File: color.MustParseHex(DefaultFileColor),
	}
}

// NodeColor computes the color for a single node from its degrees.
// A node with no edges in either direction gets the disconnected color.
// Otherwise the color is a linear interpolation from the importer color
// toward the imported color with weight in/(in+out): a node that is only
// imported (out=0) lands exactly on the imported color, a node that only
// imports (in=0) exactly on the importer color, and equal degrees land on
// the midpoint. The zero/zero case never divides by zero because it is
// routed to the disconnected branch first.
func NodeColor(inDegree, outDegree int, p Palette) color.RGB {
	if inDegree == 0 && outDegree == 0 {
		return p.Disconnected
	}
	weight := float64(inDegree) / float64(inDegree+outDegree)
	return color.Gradient(p.Importer, p.Imported, weight)
}

// Colors computes a color per node for a dependency graph, keyed by node
// name and formatted as "#rrggbb". This is a pure function of the graph's
// degrees and the palette.
func Colors(g *graph.Graph, p Palette) map[string]string {
	out := make(map[string]string, g.NodeCount())
	for _, name := range g.Names() {
		out[name] = NodeColor(g.InDegree(name), g.OutDegree(name), p).Hex()
	}
	return out
}

// TypeColor returns the structure-palette color for a node type.
// Module nodes fall back to the directory color; structure graphs
// should not contain them.
func TypeColor(t graph.NodeType, p StructurePalette) color.RGB {
	switch t {
	case graph.TypeRoot:
		return p.Root
	case graph.TypeFile:
		return p.File
	default:
		return p.Dir
	}
}
