package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for classification and cohort matching.
type Metrics struct {
	// Assignments of single submitted records, by cluster id
	Assignments *prometheus.CounterVec

	// Latency of one model prediction
	AssignLatency prometheus.Histogram

	// Match passes by outcome: "ok", "degraded", "error"
	MatchOutcome *prometheus.CounterVec

	// Full match pass latency (assign, summarize, compare, similar)
	MatchLatency prometheus.Histogram

	// Cluster ids the model produced that the catalog does not know
	UnknownClusters prometheus.Counter

	// Rows in the labeled reference population
	PopulationSize prometheus.Gauge
}

// New registers all matching metrics against reg. A nil reg uses the default
// Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Assignments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "surveymatch_assignments_total",
			Help: "Submitted records assigned to a cluster, by cluster id",
		}, []string{"cluster"}),

		AssignLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "surveymatch_assign_duration_seconds",
			Help:    "Duration of a single model prediction",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
		}),

		MatchOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "surveymatch_match_total",
			Help: "Match passes by outcome",
		}, []string{"outcome"}),

		MatchLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "surveymatch_match_duration_seconds",
			Help:    "Duration of a full match pass",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),

		UnknownClusters: factory.NewCounter(prometheus.CounterOpts{
			Name: "surveymatch_unknown_cluster_total",
			Help: "Cluster ids produced by the model that have no catalog entry",
		}),

		PopulationSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "surveymatch_population_size",
			Help: "Rows in the labeled reference population",
		}),
	}
}

// ObserveAssignment records one single-record prediction.
func (m *Metrics) ObserveAssignment(cluster string, d time.Duration) {
	if m != nil {
		m.Assignments.WithLabelValues(cluster).Inc()
		m.AssignLatency.Observe(d.Seconds())
	}
}

// IncrementOutcome records the outcome of a match pass.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.MatchOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveMatchLatency records the duration of a match pass.
func (m *Metrics) ObserveMatchLatency(d time.Duration) {
	if m != nil {
		m.MatchLatency.Observe(d.Seconds())
	}
}

// AddUnknownClusters records n cluster ids missing from the catalog.
func (m *Metrics) AddUnknownClusters(n int) {
	if m != nil && n > 0 {
		m.UnknownClusters.Add(float64(n))
	}
}

// SetPopulationSize records the labeled population size.
func (m *Metrics) SetPopulationSize(n int) {
	if m != nil {
		m.PopulationSize.Set(float64(n))
	}
}
