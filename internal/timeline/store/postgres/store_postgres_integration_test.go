//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"trustplane/internal/authority"
	"trustplane/internal/identity"
	"trustplane/internal/timeline"
	"trustplane/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	ctx   context.Context
	pg    *containers.PostgresContainer
	store *Store
}

func TestPostgresStoreSuite(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	suite.Run(t, &PostgresStoreSuite{pg: pg})
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	_, err := s.pg.Pool.Exec(s.ctx, Schema)
	s.Require().NoError(err)
	s.store = New(s.pg.Pool)
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.pg.Pool.Exec(s.ctx, "TRUNCATE timeline_events, timelines")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) prov() identity.Provenance {
	return identity.Provenance{
		SourceSystem: "tests",
		ActorID:      "actor-1",
		ActorType:    authority.ActorUser,
		Environment:  authority.EnvDev,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
		WorkspaceID:  "ws-1",
	}
}

func (s *PostgresStoreSuite) TestCreateAndFindTimeline() {
	t := timeline.Timeline{
		ID:          "tl-1",
		WorkspaceID: "ws-1",
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
		Provenance:  s.prov(),
	}
	s.Require().NoError(s.store.CreateTimeline(s.ctx, t))

	found, err := s.store.FindTimeline(s.ctx, "tl-1")
	s.Require().NoError(err)
	s.Equal("ws-1", found.WorkspaceID)
	s.Equal(t.Provenance.SourceSystem, found.Provenance.SourceSystem)

	_, err = s.store.FindTimeline(s.ctx, "missing")
	s.Error(err)
}

func (s *PostgresStoreSuite) TestAppendAndListEvents() {
	t := timeline.Timeline{ID: "tl-1", WorkspaceID: "ws-1", CreatedAt: time.Now().UTC(), Provenance: s.prov()}
	s.Require().NoError(s.store.CreateTimeline(s.ctx, t))

	event := timeline.Event{
		ID:          "ev-1",
		TimelineID:  "tl-1",
		WorkspaceID: "ws-1",
		OccurredAt:  time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		IngestedAt:  time.Now().UTC().Truncate(time.Microsecond),
		EntityIDs:   []string{"e-1", "e-2"},
		Type:        "deal_signed",
		PayloadRef:  &timeline.PayloadRef{Pointer: "s3://bucket/payload", Hash: "abc"},
		Provenance:  s.prov(),
	}
	s.Require().NoError(s.store.AppendEvent(s.ctx, event))

	events, err := s.store.ListEvents(s.ctx, "tl-1")
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal("ev-1", events[0].ID)
	s.Equal([]string{"e-1", "e-2"}, events[0].EntityIDs)
	s.Require().NotNil(events[0].PayloadRef)
	s.Equal("s3://bucket/payload", events[0].PayloadRef.Pointer)
}

func (s *PostgresStoreSuite) TestAppendRequiresExistingTimeline() {
	err := s.store.AppendEvent(s.ctx, timeline.Event{
		ID: "ev-x", TimelineID: "missing", WorkspaceID: "ws-1",
		OccurredAt: time.Now(), IngestedAt: time.Now(), Type: "x", Provenance: s.prov(),
	})
	s.Error(err, "foreign key forbids events on unknown timelines")
}
