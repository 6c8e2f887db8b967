// Package resolution maps aliases to canonical entities without inventing
// certainty. Zero or many matches is the contested outcome, an ordinary
// return value with its own shape. Nothing here ever auto-merges entities or
// picks a winner among candidates.
package resolution

import (
	"context"
	"time"

	"trustplane/internal/identity"
)

// Entity is an opaque, workspace-scoped canonical identity.
type Entity struct {
	ID          string              `json:"id"`
	WorkspaceID string              `json:"workspace_id"`
	CreatedAt   time.Time           `json:"created_at"`
	Provenance  identity.Provenance `json:"provenance"`
}

// Alias binds a string to a canonical entity for the half-open interval
// [ValidFrom, ValidTo). Alias records are append-only; the same string may
// point at different entities over time or concurrently, and that is an
// expected first-class state.
type Alias struct {
	ID          string              `json:"id"`
	EntityID    string              `json:"entity_id"`
	WorkspaceID string              `json:"workspace_id"`
	Alias       string              `json:"alias"`
	ValidFrom   time.Time           `json:"valid_from"`
	ValidTo     *time.Time          `json:"valid_to,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	Provenance  identity.Provenance `json:"provenance"`
}

// ActiveAt reports whether the alias binding covers the given instant.
func (a Alias) ActiveAt(at time.Time) bool {
	if at.Before(a.ValidFrom) {
		return false
	}
	return a.ValidTo == nil || at.Before(*a.ValidTo)
}

// Status tags a resolution outcome.
type Status string

const (
	// StatusResolved: exactly one distinct canonical entity matched.
	StatusResolved Status = "resolved"
	// StatusContested: zero or two-or-more distinct entities matched.
	// Callers get one ambiguity-handling code path instead of a separate
	// "not found" state.
	StatusContested Status = "contested"
)

// Candidate is one possible canonical entity for an alias. Confidence is
// descriptive metadata, never authoritative.
type Candidate struct {
	EntityID   string  `json:"entity_id"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// Result is the tagged outcome of a Resolve call.
type Result struct {
	Status     Status      `json:"status"`
	Alias      string      `json:"alias"`
	AtTime     time.Time   `json:"at_time"`
	Candidates []Candidate `json:"candidates"`
	Rationale  string      `json:"rationale"`
}

// Store is the capability contract for resolution persistence: entities and
// aliases can be created and read, never mutated or removed.
type Store interface {
	CreateEntity(ctx context.Context, e Entity) error
	FindEntity(ctx context.Context, id string) (Entity, error)
	AppendAlias(ctx context.Context, a Alias) error
	ListAliasesByEntity(ctx context.Context, entityID string) ([]Alias, error)
	FindAliasesByName(ctx context.Context, workspaceID, alias string) ([]Alias, error)
}
