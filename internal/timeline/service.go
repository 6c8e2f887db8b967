package timeline

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"trustplane/internal/authority"
	"trustplane/internal/identity"
	dErrors "trustplane/pkg/domain-errors"
	platformstrings "trustplane/pkg/platform/strings"
)

// Service enforces authority and ordering on top of a Store.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTimeline allocates a new timeline in the caller's workspace.
func (s *Service) CreateTimeline(ctx context.Context, ac *authority.Context, sourceSystem string) (Timeline, error) {
	validated, err := authority.Assert(ac)
	if err != nil {
		return Timeline{}, err
	}
	prov, err := identity.NewProvenance(validated, sourceSystem, time.Time{})
	if err != nil {
		return Timeline{}, err
	}
	t := Timeline{
		ID:          identity.NewOpaqueID(),
		WorkspaceID: validated.WorkspaceID,
		CreatedAt:   s.now().UTC(),
		Provenance:  prov,
	}
	if err := s.store.CreateTimeline(ctx, t); err != nil {
		return Timeline{}, err
	}
	return t, nil
}

// AppendInput carries one event to append. OccurredAt is the caller-asserted
// business time and is authoritative; IngestedAt is stamped here.
type AppendInput struct {
	TimelineID   string
	OccurredAt   time.Time
	EntityIDs    []string
	Type         string
	PayloadRef   *PayloadRef
	SourceSystem string
	// Replay, when set, preserves the original write's provenance. It must
	// be complete; partial envelopes are rejected, never repaired.
	Replay *identity.Provenance
}

// Append validates authority, verifies the timeline is workspace-owned, and
// appends an immutable event.
func (s *Service) Append(ctx context.Context, ac *authority.Context, in AppendInput) (Event, error) {
	validated, err := authority.Assert(ac)
	if err != nil {
		return Event{}, err
	}
	if in.TimelineID == "" {
		return Event{}, dErrors.New(dErrors.CodeInvalidInput, "timelineId is required")
	}
	if in.Type == "" {
		return Event{}, dErrors.New(dErrors.CodeInvalidInput, "event type is required")
	}
	if in.OccurredAt.IsZero() {
		return Event{}, dErrors.New(dErrors.CodeInvalidInput, "occurredAt is required")
	}

	t, err := s.store.FindTimeline(ctx, in.TimelineID)
	if err != nil {
		return Event{}, err
	}
	if err := authority.DenyCrossWorkspace(validated.WorkspaceID, t.WorkspaceID); err != nil {
		return Event{}, err
	}

	prov, err := identity.PreserveOrCreate(validated, identity.PreserveInput{
		SourceSystem: in.SourceSystem,
		Replay:       in.Replay,
	})
	if err != nil {
		return Event{}, err
	}

	var ref *PayloadRef
	if in.PayloadRef != nil {
		r := *in.PayloadRef
		ref = &r
	}
	event := Event{
		ID:          identity.NewOpaqueID(),
		TimelineID:  t.ID,
		WorkspaceID: t.WorkspaceID,
		OccurredAt:  in.OccurredAt,
		IngestedAt:  s.now().UTC(),
		EntityIDs:   platformstrings.DedupeAndTrim(in.EntityIDs),
		Type:        in.Type,
		PayloadRef:  ref,
		Provenance:  prov,
	}
	if err := s.store.AppendEvent(ctx, event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// Read returns all events of a workspace-owned timeline in the deterministic
// total order (OccurredAt, IngestedAt, ID). The order is computed here, so
// two reads of the same data reproduce the same sequence regardless of the
// backing store's physical insertion order.
func (s *Service) Read(ctx context.Context, ac *authority.Context, timelineID string) ([]Event, error) {
	validated, err := authority.Assert(ac)
	if err != nil {
		return nil, err
	}
	if timelineID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "timelineId is required")
	}

	t, err := s.store.FindTimeline(ctx, timelineID)
	if err != nil {
		return nil, err
	}
	if err := authority.DenyCrossWorkspace(validated.WorkspaceID, t.WorkspaceID); err != nil {
		return nil, err
	}

	events, err := s.store.ListEvents(ctx, timelineID)
	if err != nil {
		return nil, err
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].OccurredAt.Equal(events[j].OccurredAt) {
			return events[i].OccurredAt.Before(events[j].OccurredAt)
		}
		if !events[i].IngestedAt.Equal(events[j].IngestedAt) {
			return events[i].IngestedAt.Before(events[j].IngestedAt)
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}
