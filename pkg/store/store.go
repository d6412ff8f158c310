// Package store persists completed analyses for the API server.
//
// This package defines the Store interface with implementations for
// different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for production deployments
//
// An Analysis records one pipeline run: the graph, the options that
// produced it, and the rendered artifacts. Stored analyses back the
// GET /api/analyses endpoints so clients can re-fetch results without
// re-running the pipeline.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/VASemenov/depender/pkg/graph"
	"github.com/VASemenov/depender/pkg/pipeline"
)

// ErrNotFound is returned when an analysis does not exist.
var ErrNotFound = errors.New("not found")

// Analysis is one persisted pipeline run.
type Analysis struct {
	ID        string            `json:"id" bson:"_id"`
	Kind      string            `json:"kind" bson:"kind"`
	Path      string            `json:"path" bson:"path"`
	GraphHash string            `json:"graph_hash" bson:"graph_hash"`
	NodeCount int               `json:"node_count" bson:"node_count"`
	EdgeCount int               `json:"edge_count" bson:"edge_count"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	Options   pipeline.Options  `json:"options" bson:"options"`
	Graph     graph.File        `json:"graph" bson:"graph"`
	Artifacts map[string][]byte `json:"artifacts,omitempty" bson:"artifacts,omitempty"`
}

// Summary is the listing view of an analysis, without graph or artifacts.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	Kind      string    `json:"kind" bson:"kind"`
	Path      string    `json:"path" bson:"path"`
	GraphHash string    `json:"graph_hash" bson:"graph_hash"`
	NodeCount int       `json:"node_count" bson:"node_count"`
	EdgeCount int       `json:"edge_count" bson:"edge_count"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// New builds an Analysis from a pipeline result, assigning a fresh ID.
func New(result *pipeline.Result, opts pipeline.Options) *Analysis {
	return &Analysis{
		ID:        uuid.NewString(),
		Kind:      opts.Kind,
		Path:      opts.Path,
		GraphHash: result.GraphHash,
		NodeCount: result.Stats.NodeCount,
		EdgeCount: result.Stats.EdgeCount,
		CreatedAt: time.Now().UTC(),
		Options:   opts,
		Graph:     graph.Export(result.Graph),
		Artifacts: result.Artifacts,
	}
}

// summary converts an analysis to its listing view.
func (a *Analysis) summary() Summary {
	return Summary{
		ID:        a.ID,
		Kind:      a.Kind,
		Path:      a.Path,
		GraphHash: a.GraphHash,
		NodeCount: a.NodeCount,
		EdgeCount: a.EdgeCount,
		CreatedAt: a.CreatedAt,
	}
}

// Store persists analyses.
type Store interface {
	// Insert stores a new analysis.
	Insert(ctx context.Context, a *Analysis) error

	// Get returns the analysis with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Analysis, error)

	// List returns summaries of the most recent analyses, newest first.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Delete removes an analysis. Deleting a missing ID returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
