package tracking

import "time"

// RunCollector implements Collector with sum/min/max aggregation per metric key
type RunCollector struct {
	generations int
	elapsed     time.Duration
	sums        map[string]float64
	counts      map[string]int
	mins        map[string]float64
	maxs        map[string]float64
	minSet      map[string]bool
}

// NewRunCollector creates a reusable collector
func NewRunCollector() *RunCollector {
	return &RunCollector{
		sums:   make(map[string]float64),
		counts: make(map[string]int),
		mins:   make(map[string]float64),
		maxs:   make(map[string]float64),
		minSet: make(map[string]bool),
	}
}

func (c *RunCollector) Collect(metrics MetricBundle, dt time.Duration) {
	c.generations++
	c.elapsed += dt

	for key, value := range metrics {
		c.sums[key] += value
		c.counts[key]++

		if !c.minSet[key] || value < c.mins[key] {
			c.mins[key] = value
			c.minSet[key] = true
		}
		if value > c.maxs[key] {
			c.maxs[key] = value
		}
	}
}

func (c *RunCollector) Finalize(final MetricBundle) MetricBundle {
	result := make(MetricBundle)

	result[MetricGenerations] = float64(c.generations)
	result[MetricElapsed] = c.elapsed.Seconds()

	for key, sum := range c.sums {
		if count := c.counts[key]; count > 0 {
			result["avg_"+key] = sum / float64(count)
		}
	}
	for key, val := range c.mins {
		result["min_"+key] = val
	}
	for key, val := range c.maxs {
		result["max_"+key] = val
	}

	for key, val := range final {
		result[key] = val
	}

	return result
}

func (c *RunCollector) Reset() {
	c.generations = 0
	c.elapsed = 0
	clear(c.sums)
	clear(c.counts)
	clear(c.mins)
	clear(c.maxs)
	clear(c.minSet)
}
