package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the mutation gateway. Commits and
// rejections are labelled by action so dashboards can split per operation.
type Metrics struct {
	MutationsCommitted *prometheus.CounterVec
	MutationsRejected  *prometheus.CounterVec
	MutationDuration   prometheus.Histogram
}

// New creates a Metrics instance with all gateway metrics registered.
func New() *Metrics {
	return &Metrics{
		MutationsCommitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stablehand_mutations_committed_total",
			Help: "Total number of mutations committed to the domain store",
		}, []string{"action"}),
		MutationsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stablehand_mutations_rejected_total",
			Help: "Total number of mutations rejected by validation or authorization",
		}, []string{"action"}),
		MutationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "stablehand_mutation_duration_seconds",
			Help:    "Duration of gateway mutations end to end",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
	}
}

// ObserveCommitted records one committed mutation.
func (m *Metrics) ObserveCommitted(action string, start time.Time) {
	m.MutationsCommitted.WithLabelValues(action).Inc()
	m.MutationDuration.Observe(time.Since(start).Seconds())
}

// ObserveRejected records one rejected mutation.
func (m *Metrics) ObserveRejected(action string, start time.Time) {
	m.MutationsRejected.WithLabelValues(action).Inc()
	m.MutationDuration.Observe(time.Since(start).Seconds())
}
