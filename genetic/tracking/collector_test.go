package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCollector_Accumulation(t *testing.T) {
	c := NewRunCollector()

	c.Collect(MetricBundle{MetricFitness: 10.0, MetricBitsSet: 4}, 50*time.Millisecond)
	c.Collect(MetricBundle{MetricFitness: 20.0, MetricBitsSet: 6}, 50*time.Millisecond)
	c.Collect(MetricBundle{MetricFitness: 30.0}, 50*time.Millisecond)

	result := c.Finalize(MetricBundle{MetricSolved: 1.0})

	assert.Equal(t, 3.0, result[MetricGenerations])
	assert.InDelta(t, 0.15, result[MetricElapsed], 1e-9)
	assert.Equal(t, 20.0, result["avg_fitness"])
	assert.Equal(t, 5.0, result["avg_bits_set"])
	assert.Equal(t, 1.0, result[MetricSolved])
}

func TestRunCollector_MinMax(t *testing.T) {
	c := NewRunCollector()

	c.Collect(MetricBundle{"value": 5.0}, time.Millisecond)
	c.Collect(MetricBundle{"value": 2.0}, time.Millisecond)
	c.Collect(MetricBundle{"value": 8.0}, time.Millisecond)

	result := c.Finalize(nil)

	assert.Equal(t, 2.0, result["min_value"])
	assert.Equal(t, 8.0, result["max_value"])
}

func TestRunCollector_Reset(t *testing.T) {
	c := NewRunCollector()

	c.Collect(MetricBundle{"x": 10.0}, time.Second)
	c.Reset()
	c.Collect(MetricBundle{"x": 5.0}, time.Second)

	result := c.Finalize(nil)

	assert.Equal(t, 1.0, result[MetricGenerations])
	assert.Equal(t, 5.0, result["avg_x"])
}

func TestConvergenceCollector_Improvements(t *testing.T) {
	c := NewConvergenceCollector()

	c.Collect(MetricBundle{MetricBestFitness: 9.0}, time.Second)
	c.Collect(MetricBundle{MetricBestFitness: 9.0}, time.Second)
	c.Collect(MetricBundle{MetricBestFitness: 4.0}, time.Second)
	c.Collect(MetricBundle{}, time.Second)
	c.Collect(MetricBundle{MetricBestFitness: 1.0}, time.Second)

	result := c.Finalize(nil)

	assert.Equal(t, 3.0, result[MetricImprovements])
	assert.Equal(t, 5.0, result[MetricLastImprovement])
	assert.Equal(t, 5.0, result[MetricGenerations])
	assert.Equal(t, 1.0, result["min_best_fitness"])
}

func TestCollectorPool_Reuse(t *testing.T) {
	pool := NewCollectorPool(2)

	c1 := pool.Acquire()
	c1.Collect(MetricBundle{MetricBestFitness: 1.0}, time.Second)

	pool.Release(c1)

	c2 := pool.Acquire()
	require.Same(t, c1, c2, "expected pooled collector to be reused")

	result := c2.Finalize(nil)
	assert.Zero(t, result[MetricGenerations], "expected collector to be reset on acquire")
	assert.Zero(t, result[MetricImprovements])
}

func TestMetricBundle_GetMerge(t *testing.T) {
	b := MetricBundle{"a": 1}
	assert.Equal(t, 1.0, b.Get("a", 7))
	assert.Equal(t, 7.0, b.Get("b", 7))

	merged := b.Merge(MetricBundle{"a": 2, "b": 3})
	assert.Equal(t, MetricBundle{"a": 2, "b": 3}, merged)
	assert.Equal(t, 1.0, b["a"], "merge must not modify the receiver")
}
