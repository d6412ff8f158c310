// Package render provides visualization rendering for analyzed projects.
//
// # Overview
//
// This package contains the rendering pipeline that transforms graphs,
// layouts, and matrices into visual outputs. It provides:
//
//   - A shared HTML page wrapper for embedding SVG output
//   - Import graph diagrams via Graphviz (in [depgraph] subpackage)
//   - Directory tree diagrams from computed geometry (in [structview] subpackage)
//   - Adjacency matrix grids (in [matrixview] subpackage)
//
// # HTML Wrapping
//
// The [Page] function wraps any SVG in a minimal standalone HTML document,
// matching the files the CLI writes next to the analyzed project.
//
//	svg, err := depgraph.RenderSVG(ctx, dot, depgraph.EngineFDP)
//	html, err := render.Page("my-project", svg)
//
// [depgraph]: github.com/VASemenov/depender/pkg/render/depgraph
// [structview]: github.com/VASemenov/depender/pkg/render/structview
// [matrixview]: github.com/VASemenov/depender/pkg/render/matrixview
package render
