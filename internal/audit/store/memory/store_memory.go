// Package memory provides the in-memory reference audit sink. It preserves
// the append-only contract: there is no way to mutate or remove an appended
// event through its API.
package memory

import (
	"context"
	"sync"

	"trustplane/internal/audit"
)

// InMemorySink keeps appended events per workspace. Appends are serialized
// by a mutex so uniqueness and ordering hold under concurrent callers.
type InMemorySink struct {
	mu     sync.RWMutex
	events map[string][]audit.Event
}

func New() *InMemorySink {
	return &InMemorySink{events: make(map[string][]audit.Event)}
}

func (s *InMemorySink) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.WorkspaceID] = append(s.events[event.WorkspaceID], event)
	return nil
}

// ListByWorkspace returns copies of the events appended for a workspace.
func (s *InMemorySink) ListByWorkspace(_ context.Context, workspaceID string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[workspaceID]...), nil
}
