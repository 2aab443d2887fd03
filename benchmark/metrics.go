package benchmark

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const metricsNamespace = "subsetsum"

const benchSubsystem = "bench"

// Metrics holds the Prometheus collectors of one Runner
// Each Runner owns a private registry so concurrent benchmarks do not share series
type Metrics struct {
	// RunsTotal counts finished runs.
	// Labels: mode, outcome (solved, unsolved, failed)
	RunsTotal *prometheus.CounterVec

	// RunDurationSeconds measures wall-clock time per run.
	// Labels: mode
	RunDurationSeconds *prometheus.HistogramVec

	// RunGenerations measures generations per run.
	// Labels: mode
	RunGenerations *prometheus.HistogramVec

	// BestFitness records the final best fitness of feasible runs.
	// Labels: mode
	BestFitness *prometheus.HistogramVec

	// ActiveRuns tracks runs currently stepping.
	ActiveRuns prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates and registers all benchmark collectors on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: benchSubsystem,
			Name:      "runs_total",
			Help:      "Finished solver runs by mode and outcome",
		}, []string{"mode", "outcome"}),
		RunDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: benchSubsystem,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of a solver run",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"mode"}),
		RunGenerations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: benchSubsystem,
			Name:      "run_generations",
			Help:      "Generations stepped by a solver run",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"mode"}),
		BestFitness: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: benchSubsystem,
			Name:      "best_fitness",
			Help:      "Final best fitness of runs that found a valid selection",
			Buckets:   []float64{0, 0.01, 0.1, 1, 10, 100, 1000},
		}, []string{"mode"}),
		ActiveRuns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: benchSubsystem,
			Name:      "active_runs",
			Help:      "Solver runs currently in progress",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(m.RunsTotal, m.RunDurationSeconds, m.RunGenerations, m.BestFitness, m.ActiveRuns)
	return m
}

// Registry exposes the private registry, e.g. for an HTTP handler or testutil
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteText writes all series in the Prometheus text exposition format
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
