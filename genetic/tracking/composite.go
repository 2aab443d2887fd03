package tracking

import "time"

// ConvergenceCollector extends RunCollector with best-fitness improvement tracking
type ConvergenceCollector struct {
	RunCollector
	best            float64
	bestSet         bool
	improvements    int
	lastImprovement int
}

// NewConvergenceCollector creates a collector that also counts improvements of MetricBestFitness
func NewConvergenceCollector() *ConvergenceCollector {
	return &ConvergenceCollector{
		RunCollector: *NewRunCollector(),
	}
}

func (c *ConvergenceCollector) Collect(metrics MetricBundle, dt time.Duration) {
	c.RunCollector.Collect(metrics, dt)

	best, ok := metrics[MetricBestFitness]
	if !ok {
		return
	}
	if !c.bestSet || best < c.best {
		c.best = best
		c.bestSet = true
		c.improvements++
		c.lastImprovement = c.generations
	}
}

func (c *ConvergenceCollector) Finalize(final MetricBundle) MetricBundle {
	result := c.RunCollector.Finalize(final)

	result[MetricImprovements] = float64(c.improvements)
	result[MetricLastImprovement] = float64(c.lastImprovement)

	return result
}

func (c *ConvergenceCollector) Reset() {
	c.RunCollector.Reset()
	c.best = 0
	c.bestSet = false
	c.improvements = 0
	c.lastImprovement = 0
}
