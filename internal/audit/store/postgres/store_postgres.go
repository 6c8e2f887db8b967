// Package postgres provides a PostgreSQL audit sink. The file contains only
// INSERT and SELECT statements: the append-only contract is structural, not
// a convention.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"trustplane/internal/audit"
	"trustplane/internal/platform/config"
)

// Sink writes audit events to the audit_events table.
type Sink struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Sink {
	return &Sink{pool: pool}
}

// NewFromConfig connects a pool from infrastructure config. Returns nil when
// no DSN is configured.
func NewFromConfig(ctx context.Context, cfg config.Infra) (*Sink, error) {
	if cfg.PostgresDSN == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return New(pool), nil
}

// Schema is the DDL for the backing table. Exposed so migrations and
// integration tests share one definition.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_events (
	audit_id           TEXT PRIMARY KEY,
	ts                 TIMESTAMPTZ NOT NULL,
	workspace_id       TEXT NOT NULL,
	actor_id           TEXT NOT NULL,
	actor_type         TEXT NOT NULL,
	app_id             TEXT NOT NULL,
	environment        TEXT NOT NULL,
	version            TEXT NOT NULL,
	build_timestamp    TEXT NOT NULL,
	request_id         TEXT NOT NULL,
	trace_id           TEXT NOT NULL,
	action             TEXT NOT NULL,
	object_type        TEXT NOT NULL,
	object_id          TEXT,
	object_ids         TEXT[],
	field_mask         TEXT[],
	result             TEXT NOT NULL,
	error_code         TEXT,
	event_hash         TEXT NOT NULL,
	previous_audit_id  TEXT,
	payload_hash       TEXT,
	data_class         TEXT NOT NULL,
	contains_sensitive BOOLEAN NOT NULL
);
CREATE INDEX IF NOT EXISTS audit_events_workspace_ts_idx
	ON audit_events (workspace_id, ts);
`

func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO audit_events (
			audit_id, ts, workspace_id, actor_id, actor_type, app_id,
			environment, version, build_timestamp, request_id, trace_id,
			action, object_type, object_id, object_ids, field_mask,
			result, error_code, event_hash, previous_audit_id, payload_hash,
			data_class, contains_sensitive
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)`,
		event.AuditID, event.Timestamp, event.WorkspaceID, event.ActorID,
		string(event.ActorType), event.AppID, string(event.Environment),
		event.Version, event.BuildTimestamp, event.RequestID, event.TraceID,
		string(event.Action), event.ObjectType, nullable(event.ObjectID),
		event.ObjectIDs, event.FieldMask, string(event.Result),
		nullable(event.ErrorCode), event.Integrity.EventHash,
		nullable(event.Integrity.PreviousAuditID), nullable(event.Integrity.PayloadHash),
		string(event.DataClass), event.ContainsSensitive,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
