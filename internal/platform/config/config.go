// Package config carries infrastructure endpoints for constructing
// production sinks and stores. Only infrastructure lives here: authority
// data is never defaulted from the environment.
package config

import (
	"os"
	"strings"
	"time"
)

// Infra captures the backends a deployment wires its sinks to. Empty fields
// mean "not configured"; constructors treat that as "use something else",
// never as an implicit default.
type Infra struct {
	RedisURL     string
	PostgresDSN  string
	KafkaBrokers []string
	KafkaTopic   string

	RedisDialTimeout time.Duration
}

// FromEnv builds an Infra config from environment variables so wiring code
// stays lean.
func FromEnv() Infra {
	cfg := Infra{
		RedisURL:         os.Getenv("TRUSTPLANE_REDIS_URL"),
		PostgresDSN:      os.Getenv("TRUSTPLANE_POSTGRES_DSN"),
		KafkaTopic:       os.Getenv("TRUSTPLANE_KAFKA_AUDIT_TOPIC"),
		RedisDialTimeout: 5 * time.Second,
	}
	if brokers := os.Getenv("TRUSTPLANE_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = "trustplane.audit"
	}
	return cfg
}
