// Package cache provides pluggable caching for analysis results.
//
// Four backends are available:
//   - FileCache: on-disk cache for CLI usage, survives restarts
//   - LRUCache: bounded in-memory cache for the API server hot path
//   - RedisCache: shared cache for multi-instance deployments
//   - NullCache: no-op cache for tests and --no-cache runs
//
// Keys are derived from the inputs that determine the output: the project
// content hash, parse options, layout parameters, and render options. Any
// change to an input produces a different key, so stale entries are never
// served; they simply age out.
package cache

import (
	"context"
	"time"
)

// TTLs per artifact class. Parsed graphs are cheap to invalidate by content
// hash so they keep for a day; rendered artifacts are larger and kept shorter.
const (
	TTLGraph    = 24 * time.Hour
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 6 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// GraphKeyOpts holds the parse options that affect a graph's content.
type GraphKeyOpts struct {
	MaxDepth        int
	IncludeExternal bool
	ExcludedDirs    []string
}

// LayoutKeyOpts holds the layout parameters that affect node geometry.
type LayoutKeyOpts struct {
	StepX float64
	StepY float64
}

// ArtifactKeyOpts holds the render options that affect output bytes.
type ArtifactKeyOpts struct {
	Format   string
	Engine   string
	View     string
	Detailed bool
	Colors   []string
}

// Keyer derives cache keys for each artifact class.
type Keyer interface {
	// GraphKey keys a parsed graph by analysis kind ("dependency" or
	// "structure"), project content hash, and parse options.
	GraphKey(kind, projectHash string, opts GraphKeyOpts) string

	// LayoutKey keys computed geometry by graph hash and layout parameters.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys rendered output by layout hash and render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

func (k *DefaultKeyer) GraphKey(kind, projectHash string, opts GraphKeyOpts) string {
	return hashKey("graph", kind, projectHash, opts)
}

func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so different users or projects
// get separate cache namespaces on a shared backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

func (k *ScopedKeyer) GraphKey(kind, projectHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(kind, projectHash, opts)
}

func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
