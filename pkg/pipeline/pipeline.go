// Package pipeline provides the core analysis pipeline for depender.
//
// This package implements the complete parse → analyze → render pipeline
// shared by the CLI and the API server. Centralizing it keeps behavior
// consistent across entry points and avoids duplicating caching logic.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Walk the project and build a graph (imports or directory tree)
//  2. Analyze: Classify node colors, compute tree geometry, build the matrix
//  3. Render: Generate output in various formats (SVG, PNG, DOT, HTML, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Path:    "./myproject",
//	    Kind:    pipeline.KindDependency,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/VASemenov/depender/pkg/cache"
	"github.com/VASemenov/depender/pkg/classify"
	"github.com/VASemenov/depender/pkg/color"
	"github.com/VASemenov/depender/pkg/errors"
	"github.com/VASemenov/depender/pkg/graph"
	"github.com/VASemenov/depender/pkg/layout"
	"github.com/VASemenov/depender/pkg/matrix"
	"github.com/VASemenov/depender/pkg/parse"
	"github.com/VASemenov/depender/pkg/render/depgraph"
)

// Analysis kinds.
const (
	// KindDependency analyzes Python import relationships.
	KindDependency = "dependency"
	// KindStructure analyzes the directory tree.
	KindStructure = "structure"
)

// Dependency views.
const (
	// ViewGraph renders the import graph as a node-link diagram.
	ViewGraph = "graph"
	// ViewMatrix renders the import graph as an adjacency matrix.
	ViewMatrix = "matrix"
)

// Output format constants.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatHTML = "html"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatHTML: true,
	FormatJSON: true,
}

// Defaults shared by CLI and API.
const (
	// DefaultStepX is the horizontal layout unit for structure trees.
	DefaultStepX = 1.0
	// DefaultStepY is the vertical layout unit for structure trees.
	DefaultStepY = 1.0
)

// Options contains all configuration for the analysis pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Path            string   `json:"path"`
	Kind            string   `json:"kind"`
	MaxDepth        int      `json:"max_depth,omitempty"`
	ExcludedDirs    []string `json:"excluded_dirs,omitempty"`
	IncludeExternal bool     `json:"include_external,omitempty"`
	FollowLinks     bool     `json:"follow_links,omitempty"`
	Refresh         bool     `json:"refresh,omitempty"`

	// Layout options (structure analyses)
	StepX float64 `json:"step_x,omitempty"`
	StepY float64 `json:"step_y,omitempty"`

	// Render options
	View     string   `json:"view,omitempty"`
	Engine   string   `json:"engine,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Color overrides as #RRGGBB strings. Empty means defaults. The first
	// three color dependency nodes by degree, the last three color
	// structure nodes by type.
	ImporterColor     string `json:"importer_color,omitempty"`
	ImportedColor     string `json:"imported_color,omitempty"`
	DisconnectedColor string `json:"disconnected_color,omitempty"`
	RootColor         string `json:"root_color,omitempty"`
	DirColor          string `json:"dir_color,omitempty"`
	FileColor         string `json:"file_color,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the parsed graph.
	Graph *graph.Graph

	// GraphHash is the content hash of the serialized graph.
	GraphHash string

	// Geometry holds per-node positions for structure analyses.
	Geometry map[string]layout.Geometry

	// Matrix holds the adjacency matrix for dependency matrix views.
	Matrix *matrix.Matrix

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	ParseTime   time.Duration
	AnalyzeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // parse result came from cache
	LayoutHit bool // geometry came from cache
	RenderHit bool // all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, dot, html, json)", format)
	}
	return nil
}

// ValidateKind checks that an analysis kind is valid.
func ValidateKind(kind string) error {
	if kind != KindDependency && kind != KindStructure {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid kind: %q (must be %q or %q)", kind, KindDependency, KindStructure)
	}
	return nil
}

// ValidateView checks that a dependency view is valid.
func ValidateView(view string) error {
	if view != ViewGraph && view != ViewMatrix {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid view: %q (must be %q or %q)", view, ViewGraph, ViewMatrix)
	}
	return nil
}

// ValidateFormatFor checks that a format is valid and renderable for the
// given analysis kind and view. Only dependency graph views go through
// Graphviz, so png and dot exist for them alone.
func ValidateFormatFor(kind, view, format string) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}
	if format != FormatPNG && format != FormatDOT {
		return nil
	}
	if kind == KindStructure {
		return errors.New(errors.ErrCodeInvalidFormat,
			"format %q is not supported for structure analyses", format)
	}
	if view == ViewMatrix {
		return errors.New(errors.ErrCodeInvalidFormat,
			"format %q is not supported for matrix views", format)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateView(o.View); err != nil {
		return err
	}
	for _, f := range o.Formats {
		if err := ValidateFormatFor(o.Kind, o.View, f); err != nil {
			return err
		}
	}
	if _, err := o.Palette(); err != nil {
		return err
	}
	if _, err := o.StructurePalette(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing and applies parse
// defaults. The path is resolved to an absolute path before validation so
// that relative paths like "../myproject" work from any working directory;
// callers that must reject raw traversal sequences (the HTTP API) validate
// the unresolved input themselves.
func (o *Options) ValidateForParse() error {
	if o.Path == "" {
		return errors.New(errors.ErrCodeInvalidPath, "path cannot be empty")
	}
	if abs, err := filepath.Abs(o.Path); err == nil {
		o.Path = abs
	}
	if err := errors.ValidatePath(o.Path); err != nil {
		return err
	}
	if o.Kind == "" {
		o.Kind = KindDependency
	}
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.StepX == 0 {
		o.StepX = DefaultStepX
	}
	if o.StepY == 0 {
		o.StepY = DefaultStepY
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.View == "" {
		o.View = ViewGraph
	}
	if o.Engine == "" {
		o.Engine = string(depgraph.EngineFDP)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
}

// Palette resolves the color overrides into a classify palette.
func (o *Options) Palette() (classify.Palette, error) {
	p := classify.DefaultPalette()
	overrides := []struct {
		value string
		dst   *color.RGB
	}{
		{o.ImporterColor, &p.Importer},
		{o.ImportedColor, &p.Imported},
		{o.DisconnectedColor, &p.Disconnected},
	}
	for _, ov := range overrides {
		if ov.value == "" {
			continue
		}
		if err := errors.ValidateHexColor(ov.value); err != nil {
			return classify.Palette{}, err
		}
		c, err := color.ParseHex(ov.value)
		if err != nil {
			return classify.Palette{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse %q", ov.value)
		}
		*ov.dst = c
	}
	return p, nil
}

// StructurePalette resolves the structure color overrides into per-type
// colors.
func (o *Options) StructurePalette() (classify.StructurePalette, error) {
	p := classify.DefaultStructurePalette()
	overrides := []struct {
		value string
		dst   *color.RGB
	}{
		{o.RootColor, &p.Root},
		{o.DirColor, &p.Dir},
		{o.FileColor, &p.File},
	}
	for _, ov := range overrides {
		if ov.value == "" {
			continue
		}
		if err := errors.ValidateHexColor(ov.value); err != nil {
			return classify.StructurePalette{}, err
		}
		c, err := color.ParseHex(ov.value)
		if err != nil {
			return classify.StructurePalette{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse %q", ov.value)
		}
		*ov.dst = c
	}
	return p, nil
}

// ParseOptions converts pipeline options to parser options.
func (o *Options) ParseOptions() parse.Options {
	return parse.Options{
		ExcludedDirs:    o.ExcludedDirs,
		MaxDepth:        o.MaxDepth,
		FollowLinks:     o.FollowLinks,
		IncludeExternal: o.IncludeExternal,
	}
}

// GraphKeyOpts returns cache key options for the parse stage.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		MaxDepth:        o.MaxDepth,
		IncludeExternal: o.IncludeExternal,
		ExcludedDirs:    o.ExcludedDirs,
	}
}

// LayoutKeyOpts returns cache key options for geometry computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		StepX: o.StepX,
		StepY: o.StepY,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Engine:   o.Engine,
		View:     o.View,
		Detailed: o.Detailed,
		Colors: []string{
			o.ImporterColor, o.ImportedColor, o.DisconnectedColor,
			o.RootColor, o.DirColor, o.FileColor,
		},
	}
}
