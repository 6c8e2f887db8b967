package evidence

import (
	"context"
	"time"

	"trustplane/internal/authority"
	"trustplane/internal/identity"
	dErrors "trustplane/pkg/domain-errors"
	"trustplane/pkg/platform/hashing"
)

// Service enforces authority and redaction rules over a Store.
type Service struct {
	store Store
	now   func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterInput describes one external source to reference.
type RegisterInput struct {
	SourceURI   string
	RetrievedAt time.Time
	// SourceContentForHash, when set, is fingerprinted and discarded. The
	// registry never stores raw content.
	SourceContentForHash any
	// ContentPointer references sensitive material kept elsewhere.
	ContentPointer string
	SourceSystem   string
	Replay         *identity.Provenance
}

// Register creates an immutable evidence reference.
func (s *Service) Register(ctx context.Context, ac *authority.Context, in RegisterInput) (Ref, error) {
	validated, err := authority.Assert(ac)
	if err != nil {
		return Ref{}, err
	}
	if in.SourceURI == "" {
		return Ref{}, dErrors.New(dErrors.CodeInvalidInput, "sourceUri is required")
	}

	prov, err := identity.PreserveOrCreate(validated, identity.PreserveInput{
		SourceSystem: in.SourceSystem,
		Replay:       in.Replay,
	})
	if err != nil {
		return Ref{}, err
	}

	retrievedAt := in.RetrievedAt
	if retrievedAt.IsZero() {
		retrievedAt = s.now().UTC()
	}

	ref := Ref{
		ID:             identity.NewOpaqueID(),
		WorkspaceID:    validated.WorkspaceID,
		SourceURI:      in.SourceURI,
		RetrievedAt:    retrievedAt,
		ContentPointer: in.ContentPointer,
		Provenance:     prov,
		CreatedAt:      s.now().UTC(),
	}
	if in.SourceContentForHash != nil {
		sourceHash, err := hashing.HashValue(in.SourceContentForHash)
		if err != nil {
			return Ref{}, err
		}
		ref.SourceHash = sourceHash
	}

	if err := s.store.Register(ctx, ref); err != nil {
		return Ref{}, err
	}
	return ref, nil
}

// Get returns a workspace-owned evidence reference.
func (s *Service) Get(ctx context.Context, ac *authority.Context, id string) (Ref, error) {
	validated, err := authority.Assert(ac)
	if err != nil {
		return Ref{}, err
	}
	if id == "" {
		return Ref{}, dErrors.New(dErrors.CodeInvalidInput, "evidence id is required")
	}
	ref, err := s.store.Find(ctx, id)
	if err != nil {
		return Ref{}, err
	}
	if err := authority.DenyCrossWorkspace(validated.WorkspaceID, ref.WorkspaceID); err != nil {
		return Ref{}, err
	}
	return ref, nil
}
