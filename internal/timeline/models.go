// Package timeline maintains append-only, deterministically ordered event
// logs. Business time (OccurredAt, caller-asserted) and system time
// (IngestedAt, stamped at append) are kept distinct and never conflated.
package timeline

import (
	"context"
	"time"

	"trustplane/internal/identity"
)

// Timeline is a workspace-scoped, append-only sequence of events.
type Timeline struct {
	ID          string              `json:"id"`
	WorkspaceID string              `json:"workspace_id"`
	CreatedAt   time.Time           `json:"created_at"`
	Provenance  identity.Provenance `json:"provenance"`
}

// PayloadRef points at externally stored payload material. The timeline
// never carries raw payloads, only a pointer plus content hash.
type PayloadRef struct {
	Pointer string `json:"pointer"`
	Hash    string `json:"hash"`
}

// Event is one appended timeline entry.
type Event struct {
	ID          string              `json:"id"`
	TimelineID  string              `json:"timeline_id"`
	WorkspaceID string              `json:"workspace_id"`
	OccurredAt  time.Time           `json:"occurred_at"`
	IngestedAt  time.Time           `json:"ingested_at"`
	EntityIDs   []string            `json:"entity_ids,omitempty"`
	Type        string              `json:"type"`
	PayloadRef  *PayloadRef         `json:"payload_ref,omitempty"`
	Provenance  identity.Provenance `json:"provenance"`
}

// Store is the capability contract for timeline persistence. It exposes
// exactly create, append, find, and list. The absence of update and delete
// methods is the append-only guarantee: no implementation can be asked to
// mutate history through this interface.
type Store interface {
	CreateTimeline(ctx context.Context, t Timeline) error
	FindTimeline(ctx context.Context, id string) (Timeline, error)
	AppendEvent(ctx context.Context, event Event) error
	ListEvents(ctx context.Context, timelineID string) ([]Event, error)
}
