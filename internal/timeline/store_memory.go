package timeline

import (
	"context"
	"sync"

	dErrors "trustplane/pkg/domain-errors"
)

// InMemoryStore is the reference Store implementation. A single mutex
// serializes appends so the append-only and uniqueness invariants hold under
// concurrent callers.
type InMemoryStore struct {
	mu        sync.RWMutex
	timelines map[string]Timeline
	events    map[string][]Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		timelines: make(map[string]Timeline),
		events:    make(map[string][]Event),
	}
}

func (s *InMemoryStore) CreateTimeline(_ context.Context, t Timeline) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.timelines[t.ID]; exists {
		return dErrors.Newf(dErrors.CodeInvalidInput, "timeline %s already exists", t.ID)
	}
	s.timelines[t.ID] = t
	return nil
}

func (s *InMemoryStore) FindTimeline(_ context.Context, id string) (Timeline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.timelines[id]
	if !ok {
		return Timeline{}, dErrors.Newf(dErrors.CodeInvalidInput, "timeline %s does not exist", id)
	}
	return t, nil
}

func (s *InMemoryStore) AppendEvent(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.timelines[event.TimelineID]; !ok {
		return dErrors.Newf(dErrors.CodeInvalidInput, "timeline %s does not exist", event.TimelineID)
	}
	s.events[event.TimelineID] = append(s.events[event.TimelineID], event)
	return nil
}

func (s *InMemoryStore) ListEvents(_ context.Context, timelineID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[timelineID]...), nil
}
