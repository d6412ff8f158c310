package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VASemenov/depender/pkg/graph"
	"github.com/VASemenov/depender/pkg/pipeline"
)

func sampleResult(t *testing.T) *pipeline.Result {
	t.Helper()
	g := graph.New()
	g.AddNode("a", graph.TypeModule, "")
	g.AddNode("b", graph.TypeModule, "")
	g.AddEdge("a", "b")
	return &pipeline.Result{
		Graph:     g,
		GraphHash: "abc123",
		Artifacts: map[string][]byte{"svg": []byte("<svg/>")},
		Stats:     pipeline.Stats{NodeCount: 2, EdgeCount: 1},
	}
}

func TestNewAnalysis(t *testing.T) {
	opts := pipeline.Options{Path: "proj", Kind: pipeline.KindDependency}
	a := New(sampleResult(t), opts)

	if a.ID == "" {
		t.Error("ID not assigned")
	}
	if a.Kind != pipeline.KindDependency || a.Path != "proj" {
		t.Errorf("metadata = %q %q", a.Kind, a.Path)
	}
	if a.NodeCount != 2 || a.EdgeCount != 1 {
		t.Errorf("counts = %d %d", a.NodeCount, a.EdgeCount)
	}
	if len(a.Graph.Nodes) != 2 || len(a.Graph.Edges) != 1 {
		t.Errorf("graph export = %d nodes %d edges", len(a.Graph.Nodes), len(a.Graph.Edges))
	}
	if a.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	// IDs are unique per analysis.
	b := New(sampleResult(t), opts)
	if a.ID == b.ID {
		t.Error("two analyses share an ID")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	opts := pipeline.Options{Path: "proj", Kind: pipeline.KindStructure}

	a := New(sampleResult(t), opts)
	if err := s.Insert(ctx, a); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := s.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.GraphHash != a.GraphHash || got.Kind != a.Kind {
		t.Errorf("Get returned %+v", got)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}

	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	opts := pipeline.Options{Path: "proj", Kind: pipeline.KindDependency}

	var ids []string
	for i := 0; i < 3; i++ {
		a := New(sampleResult(t), opts)
		a.CreatedAt = time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC)
		if err := s.Insert(ctx, a); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		ids = append(ids, a.ID)
	}

	summaries, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("List returned %d entries", len(summaries))
	}
	// Newest first.
	if summaries[0].ID != ids[2] || summaries[2].ID != ids[0] {
		t.Error("List not ordered newest first")
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited List returned %d entries", len(limited))
	}
}
