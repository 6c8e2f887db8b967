package resolution

import (
	"context"
	"sync"

	dErrors "trustplane/pkg/domain-errors"
)

// InMemoryStore is the reference Store implementation. Appends are
// serialized by a mutex; alias records are only ever appended.
type InMemoryStore struct {
	mu       sync.RWMutex
	entities map[string]Entity
	// aliases holds the full append-only history, indexed two ways.
	byEntity map[string][]Alias
	byName   map[string][]Alias // key: workspaceID + "\x00" + alias
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		entities: make(map[string]Entity),
		byEntity: make(map[string][]Alias),
		byName:   make(map[string][]Alias),
	}
}

func nameKey(workspaceID, alias string) string {
	return workspaceID + "\x00" + alias
}

func (s *InMemoryStore) CreateEntity(_ context.Context, e Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entities[e.ID]; exists {
		return dErrors.Newf(dErrors.CodeInvalidInput, "entity %s already exists", e.ID)
	}
	s.entities[e.ID] = e
	return nil
}

func (s *InMemoryStore) FindEntity(_ context.Context, id string) (Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entities[id]
	if !ok {
		return Entity{}, dErrors.Newf(dErrors.CodeInvalidInput, "entity %s does not exist", id)
	}
	return e, nil
}

func (s *InMemoryStore) AppendAlias(_ context.Context, a Alias) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entities[a.EntityID]; !ok {
		return dErrors.Newf(dErrors.CodeInvalidInput, "entity %s does not exist", a.EntityID)
	}
	s.byEntity[a.EntityID] = append(s.byEntity[a.EntityID], a)
	key := nameKey(a.WorkspaceID, a.Alias)
	s.byName[key] = append(s.byName[key], a)
	return nil
}

func (s *InMemoryStore) ListAliasesByEntity(_ context.Context, entityID string) ([]Alias, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Alias{}, s.byEntity[entityID]...), nil
}

func (s *InMemoryStore) FindAliasesByName(_ context.Context, workspaceID, alias string) ([]Alias, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Alias{}, s.byName[nameKey(workspaceID, alias)]...), nil
}
