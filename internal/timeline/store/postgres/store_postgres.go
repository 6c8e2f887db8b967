// Package postgres implements the timeline Store contract on PostgreSQL.
// Only INSERT and SELECT statements appear here; the contract's missing
// update/delete capability stays missing all the way down.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"trustplane/internal/identity"
	"trustplane/internal/timeline"
	dErrors "trustplane/pkg/domain-errors"
)

// Store persists timelines and events in two tables.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Schema is the DDL for the backing tables, shared with integration tests.
const Schema = `
CREATE TABLE IF NOT EXISTS timelines (
	id            TEXT PRIMARY KEY,
	workspace_id  TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	provenance    JSONB NOT NULL
);
CREATE TABLE IF NOT EXISTS timeline_events (
	id            TEXT PRIMARY KEY,
	timeline_id   TEXT NOT NULL REFERENCES timelines (id),
	workspace_id  TEXT NOT NULL,
	occurred_at   TIMESTAMPTZ NOT NULL,
	ingested_at   TIMESTAMPTZ NOT NULL,
	entity_ids    TEXT[],
	event_type    TEXT NOT NULL,
	payload_ptr   TEXT,
	payload_hash  TEXT,
	provenance    JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS timeline_events_timeline_idx
	ON timeline_events (timeline_id, occurred_at, ingested_at, id);
`

func (s *Store) CreateTimeline(ctx context.Context, t timeline.Timeline) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO timelines (id, workspace_id, created_at, provenance)
		VALUES ($1, $2, $3, $4)`,
		t.ID, t.WorkspaceID, t.CreatedAt, t.Provenance,
	)
	if err != nil {
		return fmt.Errorf("insert timeline: %w", err)
	}
	return nil
}

func (s *Store) FindTimeline(ctx context.Context, id string) (timeline.Timeline, error) {
	var t timeline.Timeline
	var prov identity.Provenance
	err := s.pool.QueryRow(ctx, `
		SELECT id, workspace_id, created_at, provenance
		FROM timelines WHERE id = $1`, id,
	).Scan(&t.ID, &t.WorkspaceID, &t.CreatedAt, &prov)
	if errors.Is(err, pgx.ErrNoRows) {
		return timeline.Timeline{}, dErrors.Newf(dErrors.CodeInvalidInput, "timeline %s does not exist", id)
	}
	if err != nil {
		return timeline.Timeline{}, fmt.Errorf("select timeline: %w", err)
	}
	t.Provenance = prov
	return t, nil
}

func (s *Store) AppendEvent(ctx context.Context, event timeline.Event) error {
	var ptr, hash *string
	if event.PayloadRef != nil {
		ptr = &event.PayloadRef.Pointer
		hash = &event.PayloadRef.Hash
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO timeline_events (
			id, timeline_id, workspace_id, occurred_at, ingested_at,
			entity_ids, event_type, payload_ptr, payload_hash, provenance
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		event.ID, event.TimelineID, event.WorkspaceID, event.OccurredAt,
		event.IngestedAt, event.EntityIDs, event.Type, ptr, hash, event.Provenance,
	)
	if err != nil {
		return fmt.Errorf("insert timeline event: %w", err)
	}
	return nil
}

func (s *Store) ListEvents(ctx context.Context, timelineID string) ([]timeline.Event, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, timeline_id, workspace_id, occurred_at, ingested_at,
		       entity_ids, event_type, payload_ptr, payload_hash, provenance
		FROM timeline_events WHERE timeline_id = $1`, timelineID,
	)
	if err != nil {
		return nil, fmt.Errorf("select timeline events: %w", err)
	}
	defer rows.Close()

	var events []timeline.Event
	for rows.Next() {
		var event timeline.Event
		var ptr, hash *string
		var prov identity.Provenance
		if err := rows.Scan(
			&event.ID, &event.TimelineID, &event.WorkspaceID,
			&event.OccurredAt, &event.IngestedAt, &event.EntityIDs,
			&event.Type, &ptr, &hash, &prov,
		); err != nil {
			return nil, fmt.Errorf("scan timeline event: %w", err)
		}
		if ptr != nil && hash != nil {
			event.PayloadRef = &timeline.PayloadRef{Pointer: *ptr, Hash: *hash}
		}
		event.Provenance = prov
		events = append(events, event)
	}
	return events, rows.Err()
}
