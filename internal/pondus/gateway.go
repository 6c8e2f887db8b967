// Package pondus is the enforced single entry point to the external Pondus
// context-packaging service. The gateway keeps "context" strictly separate
// from "decision": no caller can store decision-like fields through it, and
// nothing an external client returns crosses a workspace boundary.
package pondus

import (
	"context"
	"log/slog"
	"time"

	"trustplane/internal/authority"
	"trustplane/internal/identity"
	dErrors "trustplane/pkg/domain-errors"
	"trustplane/pkg/platform/scan"
)

// prohibitedKeys are semantic fields banned from context packs. A context
// pack describes what is known; anything resembling a verdict belongs to a
// decision system on the far side of this boundary.
var prohibitedKeys = []string{"decision", "execute", "recommend", "approval", "signalscore", "verdict"}

// Freshness describes how current a pack's material is.
type Freshness struct {
	RetrievedAt time.Time  `json:"retrieved_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	DecayHint   string     `json:"decay_hint,omitempty"`
}

// ContextPack bundles entities, evidence, assumptions, and constraints.
// Structurally forbidden from containing decision-like fields.
type ContextPack struct {
	ID          string              `json:"id"`
	WorkspaceID string              `json:"workspace_id"`
	EntityIDs   []string            `json:"entity_ids"`
	EvidenceIDs []string            `json:"evidence_ids"`
	Assumptions []string            `json:"assumptions"`
	Constraints []string            `json:"constraints"`
	Freshness   Freshness           `json:"freshness"`
	Provenance  identity.Provenance `json:"provenance"`
	CreatedAt   time.Time           `json:"created_at"`
}

// Query selects packs by workspace and entity.
type Query struct {
	WorkspaceID string
	EntityID    string
}

// Client is the contract the external Pondus service must expose. The
// gateway trusts it for storage only; workspace ownership of returned packs
// is re-verified here.
type Client interface {
	PutContextPack(ctx context.Context, pack ContextPack) (string, error)
	GetContextPacks(ctx context.Context, q Query) ([]ContextPack, error)
}

// Gateway wraps a Client with authority validation and the denylist.
type Gateway struct {
	client Client
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Gateway)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) { g.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// NewGateway constructs a gateway. Construction fails immediately without a
// client: there is no default and no no-op fallback.
func NewGateway(client Client, opts ...Option) (*Gateway, error) {
	if client == nil {
		return nil, dErrors.New(dErrors.CodePondusClientMissing, "pondus client is required")
	}
	g := &Gateway{client: client, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// CreatePackInput is the caller-facing shape for a new context pack.
type CreatePackInput struct {
	EntityIDs    []string
	EvidenceIDs  []string
	Assumptions  []string
	Constraints  []string
	Freshness    Freshness
	SourceSystem string
	Replay       *identity.Provenance
}

// CreateContextPack validates authority, rejects inputs whose serialized
// form carries any denylisted semantic key, then builds the pack and
// delegates storage to the client. Client failures propagate unchanged.
func (g *Gateway) CreateContextPack(ctx context.Context, ac *authority.Context, in CreatePackInput) (ContextPack, error) {
	validated, err := authority.Assert(ac)
	if err != nil {
		return ContextPack{}, err
	}
	if err := scan.Prohibited(in, prohibitedKeys); err != nil {
		return ContextPack{}, err
	}

	prov, err := identity.PreserveOrCreate(validated, identity.PreserveInput{
		SourceSystem: in.SourceSystem,
		Replay:       in.Replay,
	})
	if err != nil {
		return ContextPack{}, err
	}

	pack := ContextPack{
		ID:          identity.NewOpaqueID(),
		WorkspaceID: validated.WorkspaceID,
		EntityIDs:   append([]string{}, in.EntityIDs...),
		EvidenceIDs: append([]string{}, in.EvidenceIDs...),
		Assumptions: append([]string{}, in.Assumptions...),
		Constraints: append([]string{}, in.Constraints...),
		Freshness:   in.Freshness,
		Provenance:  prov,
		CreatedAt:   g.now().UTC(),
	}
	if _, err := g.client.PutContextPack(ctx, pack); err != nil {
		return ContextPack{}, err
	}
	return pack, nil
}

// RetrieveByEntity delegates to the client and independently re-verifies
// workspace ownership of every returned pack. Packs from a foreign
// workspace are dropped, not returned: a buggy or compromised client must
// not become a cross-workspace leak, and one poisoned pack must not deny
// the caller its own data.
func (g *Gateway) RetrieveByEntity(ctx context.Context, ac *authority.Context, entityID string) ([]ContextPack, error) {
	validated, err := authority.Assert(ac)
	if err != nil {
		return nil, err
	}
	if entityID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "entityId is required")
	}

	packs, err := g.client.GetContextPacks(ctx, Query{
		WorkspaceID: validated.WorkspaceID,
		EntityID:    entityID,
	})
	if err != nil {
		return nil, err
	}

	owned := make([]ContextPack, 0, len(packs))
	for _, pack := range packs {
		if err := authority.DenyCrossWorkspace(validated.WorkspaceID, pack.WorkspaceID); err != nil {
			g.logger.WarnContext(ctx, "pondus client returned foreign-workspace pack, dropping",
				"pack_id", pack.ID,
				"pack_workspace", pack.WorkspaceID,
				"caller_workspace", validated.WorkspaceID)
			continue
		}
		owned = append(owned, pack)
	}
	return owned, nil
}
