package persona

import (
	"context"
	"sync"

	"github.com/aisimcore/simcore/internal/domain/simerr"
)

// Store persists and retrieves Profiles by ID: one interface, two
// backends sharing the same contract.
type Store interface {
	Save(ctx context.Context, p *Profile) error
	Get(ctx context.Context, id string) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
}

// MemoryStore is an in-process Store backed by a sync.RWMutex-guarded
// map keyed by ID.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]*Profile)}
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, p *Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *p
	s.profiles[p.ID] = &clone
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, simerr.New(simerr.CodeNotFound, "profile not found: "+id)
	}
	clone := *p
	return &clone, nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context) ([]*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}
