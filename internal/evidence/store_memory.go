package evidence

import (
	"context"
	"sync"

	dErrors "trustplane/pkg/domain-errors"
)

// InMemoryStore is the reference Store implementation.
type InMemoryStore struct {
	mu   sync.RWMutex
	refs map[string]Ref
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{refs: make(map[string]Ref)}
}

func (s *InMemoryStore) Register(_ context.Context, ref Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.refs[ref.ID]; exists {
		return dErrors.Newf(dErrors.CodeInvalidInput, "evidence %s already exists", ref.ID)
	}
	s.refs[ref.ID] = ref
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, id string) (Ref, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ref, ok := s.refs[id]
	if !ok {
		return Ref{}, dErrors.Newf(dErrors.CodeInvalidInput, "evidence %s does not exist", id)
	}
	return ref, nil
}
