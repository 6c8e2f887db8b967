// Package identity generates opaque identifiers and builds provenance
// envelopes. Identifiers carry no embedded meaning: no timestamp, no
// environment, no tenant. Anything an id could leak through its shape is a
// channel the rest of the library works hard to close.
package identity

import (
	"time"

	"github.com/google/uuid"

	"trustplane/internal/authority"
	dErrors "trustplane/pkg/domain-errors"
)

// NewOpaqueID returns a random, non-sequential identifier.
func NewOpaqueID() string {
	return uuid.NewString()
}

// Provenance records who/what created an artifact. Attached to every
// persisted record (aliases, entities, evidence, timeline events, context
// packs). Immutable once constructed.
type Provenance struct {
	SourceSystem string              `json:"source_system"`
	ActorID      string              `json:"actor_id"`
	ActorType    authority.ActorType `json:"actor_type"`
	Environment  authority.Environment `json:"environment"`
	CreatedAt    time.Time           `json:"created_at"`
	WorkspaceID  string              `json:"workspace_id"`
}

// Complete reports whether every identity field is populated and the
// timestamp is real. Incomplete envelopes are never repaired.
func (p Provenance) Complete() bool {
	return p.SourceSystem != "" &&
		p.ActorID != "" &&
		p.ActorType != "" &&
		p.Environment != "" &&
		p.WorkspaceID != "" &&
		!p.CreatedAt.IsZero()
}

// NewProvenance builds an envelope from a validated authority context.
// createdAt may be zero, in which case the current time is used.
func NewProvenance(ac authority.Context, sourceSystem string, createdAt time.Time) (Provenance, error) {
	if sourceSystem == "" {
		return Provenance{}, dErrors.New(dErrors.CodeInvalidInput, "sourceSystem is required for provenance")
	}
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return Provenance{
		SourceSystem: sourceSystem,
		ActorID:      ac.ActorID,
		ActorType:    ac.ActorType,
		Environment:  ac.Environment,
		CreatedAt:    createdAt,
		WorkspaceID:  ac.WorkspaceID,
	}, nil
}

// PreserveInput carries the arguments for PreserveOrCreate.
type PreserveInput struct {
	SourceSystem string
	// Replay, when set, is an existing envelope from the original write.
	// It is validated for completeness and passed through verbatim;
	// fabricating missing replay fields is forbidden.
	Replay    *Provenance
	CreatedAt time.Time
}

// PreserveOrCreate returns the replay envelope when one is supplied and
// complete, otherwise derives a fresh envelope from the current authority.
// An incomplete replay envelope is a hard error, not an inference
// opportunity.
func PreserveOrCreate(ac authority.Context, in PreserveInput) (Provenance, error) {
	if in.Replay != nil {
		if !in.Replay.Complete() {
			return Provenance{}, dErrors.New(dErrors.CodeInvalidInput, "replay provenance is incomplete")
		}
		return *in.Replay, nil
	}
	return NewProvenance(ac, in.SourceSystem, in.CreatedAt)
}
