package timeline

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) TestCreateAndFind() {
	t := Timeline{ID: "tl-1", WorkspaceID: "ws-1", CreatedAt: time.Now()}
	s.Require().NoError(s.store.CreateTimeline(s.ctx, t))

	found, err := s.store.FindTimeline(s.ctx, "tl-1")
	s.Require().NoError(err)
	s.Equal(t.WorkspaceID, found.WorkspaceID)

	s.Run("duplicate id is rejected", func() {
		s.Error(s.store.CreateTimeline(s.ctx, t))
	})

	s.Run("unknown id is an error", func() {
		_, err := s.store.FindTimeline(s.ctx, "missing")
		s.Error(err)
	})
}

func (s *InMemoryStoreSuite) TestAppendRequiresTimeline() {
	err := s.store.AppendEvent(s.ctx, Event{TimelineID: "missing"})
	s.Error(err)
}

func (s *InMemoryStoreSuite) TestListReturnsCopies() {
	s.Require().NoError(s.store.CreateTimeline(s.ctx, Timeline{ID: "tl-1", WorkspaceID: "ws-1"}))
	s.Require().NoError(s.store.AppendEvent(s.ctx, Event{ID: "e1", TimelineID: "tl-1"}))

	events, err := s.store.ListEvents(s.ctx, "tl-1")
	s.Require().NoError(err)
	events[0].Type = "tampered"

	again, err := s.store.ListEvents(s.ctx, "tl-1")
	s.Require().NoError(err)
	s.Empty(again[0].Type)
}

func (s *InMemoryStoreSuite) TestConcurrentAppends() {
	s.Require().NoError(s.store.CreateTimeline(s.ctx, Timeline{ID: "tl-1", WorkspaceID: "ws-1"}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.NoError(s.store.AppendEvent(s.ctx, Event{TimelineID: "tl-1"}))
		}()
	}
	wg.Wait()

	events, err := s.store.ListEvents(s.ctx, "tl-1")
	s.Require().NoError(err)
	s.Len(events, 50)
}
