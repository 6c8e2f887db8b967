// Package redis provides a Redis-stream-backed audit sink for distributed
// deployments. Streams are append-only at the data structure level, which
// matches the sink contract exactly: XADD is the only command this package
// issues against event data.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"trustplane/internal/audit"
	"trustplane/internal/platform/config"
	platformredis "trustplane/internal/platform/redis"
)

const streamKeyPrefix = "trustplane:audit:"

// Sink appends audit events to a per-workspace Redis stream.
type Sink struct {
	client *redis.Client
}

func New(client *redis.Client) *Sink {
	return &Sink{client: client}
}

// NewFromConfig dials Redis from infrastructure config. Returns nil when no
// Redis URL is configured.
func NewFromConfig(cfg config.Infra) (*Sink, error) {
	client, err := platformredis.New(cfg)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	return New(client.Client), nil
}

func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	return s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamKeyPrefix + event.WorkspaceID,
		Values: map[string]any{
			"audit_id": event.AuditID,
			"event":    payload,
		},
	}).Err()
}

// ListByWorkspace reads back the full stream for a workspace. Intended for
// verification and operational tooling, not hot paths.
func (s *Sink) ListByWorkspace(ctx context.Context, workspaceID string) ([]audit.Event, error) {
	entries, err := s.client.XRange(ctx, streamKeyPrefix+workspaceID, "-", "+").Result()
	if err != nil {
		return nil, err
	}
	events := make([]audit.Event, 0, len(entries))
	for _, entry := range entries {
		raw, ok := entry.Values["event"].(string)
		if !ok {
			return nil, fmt.Errorf("stream entry %s has no event payload", entry.ID)
		}
		var event audit.Event
		if err := json.Unmarshal([]byte(raw), &event); err != nil {
			return nil, fmt.Errorf("unmarshal stream entry %s: %w", entry.ID, err)
		}
		events = append(events, event)
	}
	return events, nil
}
