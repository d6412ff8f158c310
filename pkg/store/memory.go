package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps analyses in memory. Used by tests and single-process
// development servers; everything is lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	analyses map[string]*Analysis
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{analyses: make(map[string]*Analysis)}
}

// Insert stores a new analysis.
func (s *MemoryStore) Insert(ctx context.Context, a *Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *a
	s.analyses[a.ID] = &copied
	return nil
}

// Get returns the analysis with the given ID, or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.analyses[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *a
	return &copied, nil
}

// List returns summaries of the most recent analyses, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]Summary, 0, len(s.analyses))
	for _, a := range s.analyses {
		summaries = append(summaries, a.summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// Delete removes an analysis.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.analyses[id]; !ok {
		return ErrNotFound
	}
	delete(s.analyses, id)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
