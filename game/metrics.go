package game

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts what the blocking layer does.
type Metrics struct {
	actions       *prometheus.CounterVec
	rejected      *prometheus.CounterVec
	deriveSeconds prometheus.Histogram
	characters    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg. With a nil
// registerer the metrics are still counted but not exported.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "isotactics",
			Name:      "actions_total",
			Help:      "Actions applied to the blocking layer.",
		}, []string{"action"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "isotactics",
			Name:      "actions_rejected_total",
			Help:      "Actions that left the blocking layer unchanged.",
		}, []string{"action", "reason"}),
		deriveSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "isotactics",
			Name:      "derive_seconds",
			Help:      "Time spent re-deriving adjacency and vision after an action.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		characters: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "isotactics",
			Name:      "characters",
			Help:      "Characters on the blocking layer.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.actions, m.rejected, m.deriveSeconds, m.characters)
	}
	return m
}

func (m *Metrics) applied(action string) {
	m.actions.WithLabelValues(action).Inc()
}

func (m *Metrics) reject(action, reason string) {
	m.rejected.WithLabelValues(action, reason).Inc()
}

func (m *Metrics) derived(seconds float64, characters int) {
	m.deriveSeconds.Observe(seconds)
	m.characters.Set(float64(characters))
}
