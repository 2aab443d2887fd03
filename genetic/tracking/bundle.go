package tracking

import "time"

// MetricBundle is a generic container for named metrics
// Keys are metric names, values are float64 measurements
type MetricBundle map[string]float64

// Standard metric keys (conventions)
const (
	MetricGenerations     = "generations"
	MetricFitness         = "fitness"
	MetricBitsSet         = "bits_set"
	MetricBestFitness     = "best_fitness"
	MetricImprovements    = "improvements"
	MetricLastImprovement = "last_improvement"
	MetricElapsed         = "elapsed_seconds"
	MetricSolved          = "solved"
)

// Get returns metric value or default if not present
func (b MetricBundle) Get(key string, defaultVal float64) float64 {
	if v, ok := b[key]; ok {
		return v
	}
	return defaultVal
}

// Merge combines two bundles, other values override existing
func (b MetricBundle) Merge(other MetricBundle) MetricBundle {
	result := make(MetricBundle, len(b)+len(other))
	for k, v := range b {
		result[k] = v
	}
	for k, v := range other {
		result[k] = v
	}
	return result
}

// Collector accumulates per-generation metrics over one solver run
type Collector interface {
	// Collect records the metrics of a single generation and the time it took
	Collect(metrics MetricBundle, dt time.Duration)

	// Finalize returns the run summary merged with the final-state metrics
	Finalize(final MetricBundle) MetricBundle

	// Reset clears accumulated state for reuse
	Reset()
}
