// Package metrics exposes Prometheus instrumentation for the audit emitter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the audit counters. A nil *Metrics is a valid no-op receiver
// so tests and minimal wirings can skip registration entirely.
type Metrics struct {
	emitted       *prometheus.CounterVec
	writeFailures prometheus.Counter
}

// New creates and registers the audit metrics in the default registry.
func New() *Metrics {
	return &Metrics{
		emitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trustplane_audit_events_emitted_total",
			Help: "Total audit events emitted, labeled by result",
		}, []string{"result"}),
		writeFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "trustplane_audit_write_failures_total",
			Help: "Total sink append failures converted to audit_write_failure events",
		}),
	}
}

func (m *Metrics) IncEmitted(result string) {
	if m == nil {
		return
	}
	m.emitted.WithLabelValues(result).Inc()
}

func (m *Metrics) IncWriteFailure() {
	if m == nil {
		return
	}
	m.writeFailures.Inc()
}
