package store

import (
	"cmp"
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/matzehuels/masonry/pkg/grid"
)

// MemoryStore keeps layouts in a map. Values are stored encoded so callers
// never share slices with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string][]byte
	index   map[string]Summary
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		layouts: make(map[string][]byte),
		index:   make(map[string]Summary),
	}
}

func (s *MemoryStore) Save(ctx context.Context, l grid.Layout) (grid.Layout, error) {
	l, err := prepare(l)
	if err != nil {
		return grid.Layout{}, err
	}
	data, err := json.Marshal(l)
	if err != nil {
		return grid.Layout{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.layouts[l.ID] = data
	s.index[l.ID] = Summarize(l)
	return l, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (grid.Layout, error) {
	if err := checkID(id); err != nil {
		return grid.Layout{}, err
	}
	s.mu.RLock()
	data, ok := s.layouts[id]
	s.mu.RUnlock()
	if !ok {
		return grid.Layout{}, notFound(id)
	}
	var l grid.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return grid.Layout{}, err
	}
	return l, nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]Summary, error) {
	s.mu.RLock()
	out := make([]Summary, 0, len(s.index))
	for _, sum := range s.index {
		out = append(out, sum)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, newestFirst)
	return out[:min(len(out), listLimit(limit))], nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.layouts[id]; !ok {
		return notFound(id)
	}
	delete(s.layouts, id)
	delete(s.index, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func newestFirst(a, b Summary) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

var _ Store = (*MemoryStore)(nil)
