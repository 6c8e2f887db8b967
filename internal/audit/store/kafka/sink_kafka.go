// Package kafka publishes audit events to a Kafka topic. Events are keyed by
// workspace so each workspace's audit trail lands on one partition and keeps
// its relative order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"trustplane/internal/audit"
	"trustplane/internal/platform/config"
)

// Sink is a Kafka-backed audit sink.
type Sink struct {
	client *kgo.Client
	topic  string
}

func New(client *kgo.Client, topic string) *Sink {
	return &Sink{client: client, topic: topic}
}

// NewFromConfig builds a producing client from infrastructure config.
// Returns nil when no brokers are configured.
func NewFromConfig(cfg config.Infra) (*Sink, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return nil, nil
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.KafkaBrokers...),
		kgo.DefaultProduceTopic(cfg.KafkaTopic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return New(client, cfg.KafkaTopic), nil
}

// Append produces the event synchronously: the sink contract requires the
// caller to learn about a failed append, and the emitter turns that failure
// into an audit_write_failure event.
func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.WorkspaceID),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}
