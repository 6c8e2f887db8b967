// Package metrics exposes Prometheus instrumentation for alert dispatch.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts alert dispatch outcomes. A nil *Metrics is a valid no-op
// receiver.
type Metrics struct {
	dispatched *prometheus.CounterVec
	rejected   prometheus.Counter
}

// New creates and registers the alerting metrics in the default registry.
func New() *Metrics {
	return &Metrics{
		dispatched: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trustplane_alerts_dispatched_total",
			Help: "Total alert dispatch attempts, labeled by transport and outcome",
		}, []string{"transport", "outcome"}),
		rejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "trustplane_alerts_rejected_total",
			Help: "Total alerts rejected for carrying prohibited decision semantics",
		}),
	}
}

func (m *Metrics) IncDispatched(transport, outcome string) {
	if m == nil {
		return
	}
	m.dispatched.WithLabelValues(transport, outcome).Inc()
}

func (m *Metrics) IncRejected() {
	if m == nil {
		return
	}
	m.rejected.Inc()
}
