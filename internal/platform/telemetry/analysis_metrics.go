package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes recorded for each analysis step.
const (
	OutcomeSuccess      = "success"
	OutcomeFallback     = "fallback"
	OutcomeShortCircuit = "short_circuit"
	OutcomeConfigError  = "config_error"
)

// AnalysisMetrics counts analysis outcomes. A nil *AnalysisMetrics is valid
// and records nothing.
type AnalysisMetrics struct {
	steps    *prometheus.CounterVec
	analyses *prometheus.CounterVec
	queue    prometheus.Gauge
}

// NewAnalysisMetrics registers the analysis collectors with reg.
func NewAnalysisMetrics(reg prometheus.Registerer) (*AnalysisMetrics, error) {
	m := &AnalysisMetrics{
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookmarks",
			Subsystem: "analysis",
			Name:      "steps_total",
			Help:      "Analysis sub-operations by step and outcome.",
		}, []string{"provider", "step", "outcome"}),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookmarks",
			Subsystem: "analysis",
			Name:      "runs_total",
			Help:      "Completed analyses by provider and outcome.",
		}, []string{"provider", "outcome"}),
		queue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bookmarks",
			Subsystem: "analysis",
			Name:      "queue_depth",
			Help:      "Jobs waiting in the enrichment queue.",
		}),
	}

	for _, c := range []prometheus.Collector{m.steps, m.analyses, m.queue} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Step records the outcome of one sub-operation.
func (m *AnalysisMetrics) Step(provider, step, outcome string) {
	if m == nil {
		return
	}

	m.steps.WithLabelValues(provider, step, outcome).Inc()
}

// Run records the outcome of a whole analysis.
func (m *AnalysisMetrics) Run(provider, outcome string) {
	if m == nil {
		return
	}

	m.analyses.WithLabelValues(provider, outcome).Inc()
}

// QueueDepth reports the enrichment queue length.
func (m *AnalysisMetrics) QueueDepth(n int) {
	if m == nil {
		return
	}

	m.queue.Set(float64(n))
}

// StepCount returns the counter for tests and diagnostics.
func (m *AnalysisMetrics) StepCount(provider, step, outcome string) prometheus.Counter {
	return m.steps.WithLabelValues(provider, step, outcome)
}
