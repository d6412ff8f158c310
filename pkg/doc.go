// Package pkg provides the core libraries for Depender project visualization.
//
// # Overview
//
// Depender analyzes Python source trees and renders two views of a project:
// its directory hierarchy and its internal import relationships. The pkg
// directory is organized into four main areas:
//
//  1. [parse] - Source analysis (directory walking, import extraction)
//  2. [graph], [layout], [matrix], [classify], [color] - Graph model and analysis
//  3. [render] - Output generation (Graphviz diagrams, tree SVGs, matrices)
//  4. [pipeline], [cache], [store] - Orchestration and infrastructure
//
// # Architecture
//
// The typical data flow through Depender:
//
//	Python Project Directory
//	         ↓
//	    [parse] package (walk tree, resolve imports)
//	         ↓
//	    [graph] package (nodes + counted edges)
//	         ↓
//	    [layout] / [matrix] / [classify] (analysis)
//	         ↓
//	    [render] package (SVG, PNG, DOT, HTML, JSON)
//
// # Quick Start
//
// Analyze a project and render its import graph:
//
//	import (
//	    "context"
//	    "github.com/VASemenov/depender/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Path:    "./myproject",
//	    Kind:    pipeline.KindDependency,
//	    Formats: []string{pipeline.FormatSVG},
//	})
//
// # Main Packages
//
// [parse] - Builds graphs from Python projects. Structure analysis walks the
// directory tree; code analysis extracts import statements with tree-sitter
// and resolves them to project modules.
//
// [graph] - Mapping-based directed graph with per-edge multiplicity counts
// and insertion-ordered iteration. The shared model for both analysis kinds.
//
// [classify] - Degree-based node coloring. A module's color interpolates
// between the importer and imported palette endpoints by in-degree share.
//
// [color] - RGB values, hex parsing, and linear gradient interpolation.
//
// [matrix] - Adjacency matrix construction with reverse-alphabetical axes.
//
// [layout] - Hierarchical tree positioning: bottom-up width accumulation,
// top-down centering, depth mapped to the vertical axis.
//
// [render] - Output formats. [render/depgraph] draws node-link diagrams via
// Graphviz, [render/structview] draws layout trees, [render/matrixview]
// draws adjacency matrices.
//
// [pipeline] - Complete analysis pipeline (parse → analyze → render) used by
// CLI and API. Ensures consistent behavior across all entry points.
//
// [cache] - Content-addressed result caching with file, LRU, Redis, and
// null backends.
//
// [store] - Analysis persistence for the API with memory and MongoDB
// backends.
//
// [observability] - Optional instrumentation hooks for pipeline stages and
// cache operations.
//
// [errors] - Coded errors shared across packages with user-facing messages.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/graph/...      # Specific package
//
// [parse]: https://pkg.go.dev/github.com/VASemenov/depender/pkg/parse
// [graph]: https://pkg.go.dev/github.com/VASemenov/depender/pkg/graph
// [classify]: https://pkg.go.dev/github.com/VASemenov/depender/pkg/classify
// [color]: https://pkg.go.dev/github.com/VASemenov/depender/pkg/color
// [matrix]: https://pkg.go.dev/github.com/VASemenov/depender/pkg/matrix
// [layout]: https://pkg.go.dev/github.com/VASemenov/depender/pkg/layout
// [render]: https://pkg.go.dev/github.com/VASemenov/depender/pkg/render
// [render/depgraph]: https://pkg.go.dev/github.com/VASemenov/depender/pkg/render/depgraph
// [render/structview]: https://pkg.go.dev/github.com/VASemenov/depender/pkg/render/structview
// [render/matrixview]: https://pkg.go.dev/github.com/VASemenov/depender/pkg/render/matrixview
// [pipeline]: https://pkg.go.dev/github.com/VASemenov/depender/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/VASemenov/depender/pkg/cache
// [store]: https://pkg.go.dev/github.com/VASemenov/depender/pkg/store
// [observability]: https://pkg.go.dev/github.com/VASemenov/depender/pkg/observability
// [errors]: https://pkg.go.dev/github.com/VASemenov/depender/pkg/errors
package pkg
