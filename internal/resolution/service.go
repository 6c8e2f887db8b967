package resolution

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"trustplane/internal/authority"
	"trustplane/internal/identity"
	"trustplane/internal/resolution/metrics"
	dErrors "trustplane/pkg/domain-errors"
)

const (
	// confidenceSingle is attached when exactly one entity matches.
	confidenceSingle = 0.8
	// confidenceContested is attached to every candidate of an ambiguous
	// outcome.
	confidenceContested = 0.5
)

// Service enforces authority and the resolution policy on top of a Store.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
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

// CreateEntity allocates an opaque canonical entity in the caller's
// workspace.
func (s *Service) CreateEntity(ctx context.Context, ac *authority.Context, sourceSystem string) (Entity, error) {
	validated, err := authority.Assert(ac)
	if err != nil {
		return Entity{}, err
	}
	prov, err := identity.NewProvenance(validated, sourceSystem, time.Time{})
	if err != nil {
		return Entity{}, err
	}
	e := Entity{
		ID:          identity.NewOpaqueID(),
		WorkspaceID: validated.WorkspaceID,
		CreatedAt:   s.now().UTC(),
		Provenance:  prov,
	}
	if err := s.store.CreateEntity(ctx, e); err != nil {
		return Entity{}, err
	}
	return e, nil
}

// AddAliasInput binds an alias string to an entity for [ValidFrom, ValidTo).
type AddAliasInput struct {
	EntityID     string
	Alias        string
	ValidFrom    time.Time
	ValidTo      *time.Time
	SourceSystem string
	Replay       *identity.Provenance
}

// AddAlias appends an alias record. Existing records for the same string are
// never overwritten; history is preserved.
func (s *Service) AddAlias(ctx context.Context, ac *authority.Context, in AddAliasInput) (Alias, error) {
	validated, err := authority.Assert(ac)
	if err != nil {
		return Alias{}, err
	}
	if in.EntityID == "" {
		return Alias{}, dErrors.New(dErrors.CodeInvalidInput, "canonicalEntityId is required")
	}
	if in.Alias == "" {
		return Alias{}, dErrors.New(dErrors.CodeInvalidInput, "alias is required")
	}
	if in.ValidFrom.IsZero() {
		return Alias{}, dErrors.New(dErrors.CodeInvalidInput, "validFrom is required")
	}
	if in.ValidTo != nil && !in.ValidTo.After(in.ValidFrom) {
		return Alias{}, dErrors.New(dErrors.CodeInvalidInput, "validTo must be after validFrom")
	}

	entity, err := s.store.FindEntity(ctx, in.EntityID)
	if err != nil {
		return Alias{}, err
	}
	if err := authority.DenyCrossWorkspace(validated.WorkspaceID, entity.WorkspaceID); err != nil {
		return Alias{}, err
	}

	prov, err := identity.PreserveOrCreate(validated, identity.PreserveInput{
		SourceSystem: in.SourceSystem,
		Replay:       in.Replay,
	})
	if err != nil {
		return Alias{}, err
	}

	var validTo *time.Time
	if in.ValidTo != nil {
		t := *in.ValidTo
		validTo = &t
	}
	alias := Alias{
		ID:          identity.NewOpaqueID(),
		EntityID:    entity.ID,
		WorkspaceID: entity.WorkspaceID,
		Alias:       in.Alias,
		ValidFrom:   in.ValidFrom,
		ValidTo:     validTo,
		CreatedAt:   s.now().UTC(),
		Provenance:  prov,
	}
	if err := s.store.AppendAlias(ctx, alias); err != nil {
		return Alias{}, err
	}
	return alias, nil
}

// ResolveInput names an alias and the instant to resolve it at. A zero
// AtTime means "now".
type ResolveInput struct {
	Alias  string
	AtTime time.Time
}

// Resolve computes, within the caller's workspace only, the distinct
// canonical entities whose alias records cover the given instant.
//
// Policy: exactly one distinct entity resolves at confidence 0.8; zero or
// several are returned as contested at confidence 0.5 with every candidate
// listed. The caller decides what to do with ambiguity.
func (s *Service) Resolve(ctx context.Context, ac *authority.Context, in ResolveInput) (Result, error) {
	validated, err := authority.Assert(ac)
	if err != nil {
		return Result{}, err
	}
	if in.Alias == "" {
		return Result{}, dErrors.New(dErrors.CodeInvalidInput, "alias is required")
	}
	at := in.AtTime
	if at.IsZero() {
		at = s.now().UTC()
	}

	aliases, err := s.store.FindAliasesByName(ctx, validated.WorkspaceID, in.Alias)
	if err != nil {
		return Result{}, err
	}

	distinct := make(map[string]bool)
	for _, a := range aliases {
		if a.ActiveAt(at) {
			distinct[a.EntityID] = true
		}
	}
	entityIDs := make([]string, 0, len(distinct))
	for id := range distinct {
		entityIDs = append(entityIDs, id)
	}
	sort.Strings(entityIDs)

	if len(entityIDs) == 1 {
		s.metrics.IncResolution(string(StatusResolved))
		return Result{
			Status: StatusResolved,
			Alias:  in.Alias,
			AtTime: at,
			Candidates: []Candidate{{
				EntityID:   entityIDs[0],
				Confidence: confidenceSingle,
				Rationale:  "single alias match",
			}},
			Rationale: "single alias match",
		}, nil
	}

	candidates := make([]Candidate, 0, len(entityIDs))
	for _, id := range entityIDs {
		candidates = append(candidates, Candidate{
			EntityID:   id,
			Confidence: confidenceContested,
			Rationale:  "concurrent alias match",
		})
	}
	rationale := "no alias records cover the requested time"
	if len(entityIDs) > 1 {
		rationale = "multiple distinct entities share this alias at the requested time"
	}
	s.metrics.IncResolution(string(StatusContested))
	return Result{
		Status:     StatusContested,
		Alias:      in.Alias,
		AtTime:     at,
		Candidates: candidates,
		Rationale:  rationale,
	}, nil
}

// ListAliases returns the alias history of a workspace-owned entity.
func (s *Service) ListAliases(ctx context.Context, ac *authority.Context, entityID string) ([]Alias, error) {
	validated, err := authority.Assert(ac)
	if err != nil {
		return nil, err
	}
	if entityID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "entityId is required")
	}
	entity, err := s.store.FindEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if err := authority.DenyCrossWorkspace(validated.WorkspaceID, entity.WorkspaceID); err != nil {
		return nil, err
	}
	return s.store.ListAliasesByEntity(ctx, entityID)
}
