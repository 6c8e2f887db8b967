package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	t.Run("unset environment leaves backends unconfigured", func(t *testing.T) {
		t.Setenv("TRUSTPLANE_REDIS_URL", "")
		t.Setenv("TRUSTPLANE_POSTGRES_DSN", "")
		t.Setenv("TRUSTPLANE_KAFKA_BROKERS", "")
		t.Setenv("TRUSTPLANE_KAFKA_AUDIT_TOPIC", "")

		cfg := FromEnv()
		assert.Empty(t, cfg.RedisURL)
		assert.Empty(t, cfg.PostgresDSN)
		assert.Empty(t, cfg.KafkaBrokers)
		assert.Equal(t, "trustplane.audit", cfg.KafkaTopic)
		assert.Equal(t, 5*time.Second, cfg.RedisDialTimeout)
	})

	t.Run("reads configured backends", func(t *testing.T) {
		t.Setenv("TRUSTPLANE_REDIS_URL", "redis://localhost:6379/0")
		t.Setenv("TRUSTPLANE_POSTGRES_DSN", "postgres://localhost/trustplane")
		t.Setenv("TRUSTPLANE_KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
		t.Setenv("TRUSTPLANE_KAFKA_AUDIT_TOPIC", "audit.custom")

		cfg := FromEnv()
		assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
		assert.Equal(t, "postgres://localhost/trustplane", cfg.PostgresDSN)
		assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, "audit.custom", cfg.KafkaTopic)
	})
}
