// Package evidence keeps reference records for external source material:
// a pointer and a content hash, never the content itself. Sensitive material
// is reachable only through an opaque content pointer.
package evidence

import (
	"context"
	"time"

	"trustplane/internal/identity"
)

// Ref is an immutable reference to an external source.
type Ref struct {
	ID          string              `json:"id"`
	WorkspaceID string              `json:"workspace_id"`
	SourceURI   string              `json:"source_uri"`
	RetrievedAt time.Time           `json:"retrieved_at"`
	// SourceHash fingerprints the source content, not this reference.
	SourceHash     string              `json:"source_hash,omitempty"`
	ContentPointer string              `json:"content_pointer,omitempty"`
	Provenance     identity.Provenance `json:"provenance"`
	CreatedAt      time.Time           `json:"created_at"`
}

// Store is the capability contract for evidence persistence: register and
// read, nothing else.
type Store interface {
	Register(ctx context.Context, ref Ref) error
	Find(ctx context.Context, id string) (Ref, error)
}
