// Package metrics exposes Prometheus instrumentation for entity resolution.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts resolution outcomes. A nil *Metrics is a valid no-op
// receiver.
type Metrics struct {
	resolutions *prometheus.CounterVec
}

// New creates and registers the resolution metrics in the default registry.
func New() *Metrics {
	return &Metrics{
		resolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trustplane_resolutions_total",
			Help: "Total alias resolutions, labeled by outcome status",
		}, []string{"status"}),
	}
}

func (m *Metrics) IncResolution(status string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(status).Inc()
}
