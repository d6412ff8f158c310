package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/VASemenov/depender/pkg/cache"
	"github.com/VASemenov/depender/pkg/graph"
	"github.com/VASemenov/depender/pkg/layout"
	"github.com/VASemenov/depender/pkg/matrix"
	"github.com/VASemenov/depender/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → analyze → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	observability.Pipeline().OnParseStart(ctx, opts.Kind, opts.Path)
	g, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		observability.Pipeline().OnParseComplete(ctx, opts.Kind, opts.Path, 0, time.Since(parseStart), err)
		return nil, fmt.Errorf("parse: %w", err)
	}
	observability.Pipeline().OnParseComplete(ctx, opts.Kind, opts.Path, g.NodeCount(), time.Since(parseStart), nil)
	result.Graph = g
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.ParseHit = parseHit

	if data, err := graph.Marshal(g); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	r.Logger.Info("parsed project",
		"kind", opts.Kind,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.ParseTime)

	// Stage 2: Analyze
	analyzeStart := time.Now()
	observability.Pipeline().OnAnalyzeStart(ctx, opts.Kind, g.NodeCount())
	if err := r.analyze(ctx, g, opts, result); err != nil {
		observability.Pipeline().OnAnalyzeComplete(ctx, opts.Kind, time.Since(analyzeStart), err)
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	observability.Pipeline().OnAnalyzeComplete(ctx, opts.Kind, result.Stats.AnalyzeTime, nil)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
		return nil, fmt.Errorf("render: %w", err)
	}
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), nil)
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo runs the parse stage with caching and reports whether
// the graph came from cache.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (*graph.Graph, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	fingerprint, err := projectFingerprint(opts.Path)
	if err != nil {
		return nil, false, fmt.Errorf("fingerprint %s: %w", opts.Path, err)
	}
	cacheKey := r.Keyer.GraphKey(opts.Kind, fingerprint, opts.GraphKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			g, err := graph.Read(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return g, true, nil // Cache hit
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "graph")

	g, err := Parse(ctx, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := graph.Marshal(g); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph)
		observability.Cache().OnCacheSet(ctx, "graph", len(data))
	}

	return g, false, nil // Cache miss
}

// Parse is a convenience wrapper that discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) (*graph.Graph, error) {
	g, _, err := r.ParseWithCacheInfo(ctx, opts)
	return g, err
}

// analyze runs the kind-specific analysis stage, filling result.Geometry
// for structure analyses and result.Matrix for dependency matrix views.
func (r *Runner) analyze(ctx context.Context, g *graph.Graph, opts Options, result *Result) error {
	switch opts.Kind {
	case KindStructure:
		geo, hit, err := r.ComputeGeometryWithCacheInfo(ctx, g, opts)
		if err != nil {
			return err
		}
		result.Geometry = geo
		result.CacheInfo.LayoutHit = hit
		r.Logger.Info("computed layout", "nodes", len(geo))
	case KindDependency:
		if opts.View == ViewMatrix {
			p, err := opts.Palette()
			if err != nil {
				return err
			}
			m := matrix.Build(g, p)
			result.Matrix = &m
			r.Logger.Info("built matrix", "size", m.Size())
		}
	}
	return nil
}

// ComputeGeometryWithCacheInfo computes tree geometry with caching and
// reports whether it came from cache.
func (r *Runner) ComputeGeometryWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (map[string]layout.Geometry, bool, error) {
	opts.SetLayoutDefaults()

	graphData, _ := graph.Marshal(g)
	graphHash := cache.Hash(graphData)
	cacheKey := r.Keyer.LayoutKey(graphHash, opts.LayoutKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached map[string]layout.Geometry
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil // Cache hit
		}
		// Corrupt entry, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	geo, err := layout.Compute(g, opts.StepX, opts.StepY)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(geo); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return geo, false, nil // Cache miss
}

// ComputeGeometry is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeGeometry(ctx context.Context, g *graph.Graph, opts Options) (map[string]layout.Geometry, error) {
	geo, _, err := r.ComputeGeometryWithCacheInfo(ctx, g, opts)
	return geo, err
}

// RenderWithCacheInfo renders all requested formats with caching and reports
// whether every artifact came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	for _, f := range opts.Formats {
		if err := ValidateFormatFor(opts.Kind, opts.View, f); err != nil {
			return nil, false, err
		}
	}
	r.applyLogger(&opts)

	// Artifact keys derive from the graph hash; geometry and matrix are
	// deterministic functions of the graph and the keyed options.
	baseHash := result.GraphHash

	allCached := true
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(baseHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := Render(ctx, result, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(baseHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
