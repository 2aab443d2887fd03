// Package status publishes live run progress between a solver loop and its observers.
// Writers resolve metric cells once and then store without locking.
package status

import "sync/atomic"

// Registry groups metric cells by value type, keyed "<label>.<metric>"
type Registry struct {
	Bools     *MetricMap[atomic.Bool]
	Ints      *MetricMap[atomic.Int64]
	Decimals  *MetricMap[AtomicDecimal]
	Durations *MetricMap[AtomicDuration]
	Strings   *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:     NewMetricMap[atomic.Bool](),
		Ints:      NewMetricMap[atomic.Int64](),
		Decimals:  NewMetricMap[AtomicDecimal](),
		Durations: NewMetricMap[AtomicDuration](),
		Strings:   NewMetricMap[AtomicString](),
	}
}

// Len returns the number of cells across all value types
func (r *Registry) Len() int {
	return r.Bools.Len() + r.Ints.Len() + r.Decimals.Len() + r.Durations.Len() + r.Strings.Len()
}
