// Package metrics counts generation outcomes for a run. The registry is
// private to each Metrics value and can be written in the node exporter
// textfile format once the run ends.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names
const (
	MetricNameGenerationAttempts = "loot_generation_attempts_total"
	MetricNameAttemptDuration    = "loot_generation_attempt_duration_seconds"
	MetricNameItemsSaved         = "loot_items_saved_total"
)

// Labels and label values
const (
	LabelOutcome = "outcome"
	LabelResult  = "result"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	ResultNew       = "new"
	ResultDuplicate = "duplicate"
)

// AttemptLatencyBuckets covers local model latencies from sub-second to minutes
var AttemptLatencyBuckets = []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160}

// Metrics holds the counters for one process
type Metrics struct {
	registry *prometheus.Registry

	attempts        *prometheus.CounterVec
	attemptDuration prometheus.Histogram
	saved           *prometheus.CounterVec
}

// New creates a Metrics value with its own registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricNameGenerationAttempts,
				Help: "Generation attempts by outcome",
			},
			[]string{LabelOutcome},
		),
		attemptDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricNameAttemptDuration,
				Help:    "Duration of one generation attempt",
				Buckets: AttemptLatencyBuckets,
			},
		),
		saved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricNameItemsSaved,
				Help: "Saved items by whether they were new or duplicates",
			},
			[]string{LabelResult},
		),
	}
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordAttempt counts one attempt. Safe on a nil receiver.
func (m *Metrics) RecordAttempt(success bool, duration time.Duration) {
	if m == nil {
		return
	}

	outcome := OutcomeFailure
	if success {
		outcome = OutcomeSuccess
	}
	m.attempts.WithLabelValues(outcome).Inc()
	m.attemptDuration.Observe(duration.Seconds())
}

// RecordSave counts one save. Safe on a nil receiver.
func (m *Metrics) RecordSave(created bool) {
	if m == nil {
		return
	}

	result := ResultDuplicate
	if created {
		result = ResultNew
	}
	m.saved.WithLabelValues(result).Inc()
}

// WriteTextfile writes the registry to path in the textfile collector format
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
