package benchmark

import (
	"bytes"
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lixenwraith/subsetsum/config"
	"github.com/lixenwraith/subsetsum/dataset"
	"github.com/lixenwraith/subsetsum/genetic/tracking"
	"github.com/lixenwraith/subsetsum/status"
)

func benchConfig(mode string) config.Config {
	seed := uint64(2024)
	cfg := config.Default()
	cfg.Seed = &seed
	cfg.Solver.GenerationSize = 10
	cfg.Solver.GenerationsMaxCount = 40
	cfg.Solver.Timeout = 0
	cfg.Solver.FitnessThreshold = config.NewAmount("0.1")
	cfg.Balance.Seeding = "RandomSum"
	cfg.Bench.Mode = mode
	cfg.Bench.Runs = 6
	cfg.Bench.Parallelism = 3
	cfg.Bench.SetSize = 24
	return cfg
}

func outcomes(m *Metrics, mode string) float64 {
	return testutil.ToFloat64(m.RunsTotal.WithLabelValues(mode, OutcomeSolved)) +
		testutil.ToFloat64(m.RunsTotal.WithLabelValues(mode, OutcomeUnsolved))
}

func TestRunner_AllModes(t *testing.T) {
	for _, mode := range []string{config.ModeSubset, config.ModeSubset128, config.ModeBalance} {
		t.Run(mode, func(t *testing.T) {
			progress := status.NewRegistry()
			r := NewRunner(benchConfig(mode), dataset.Embedded(), progress, zaptest.NewLogger(t))

			report, err := r.Run(context.Background())
			require.NoError(t, err)

			require.Len(t, report.Runs, 6)
			assert.Equal(t, mode, report.Mode)
			for i, run := range report.Runs {
				assert.Equal(t, i, run.Index)
				assert.Positive(t, run.Generations)
				assert.LessOrEqual(t, run.Generations, 40)
				assert.Equal(t, run.Generations, int(run.Stats[tracking.MetricGenerations]))
				if mode != config.ModeBalance {
					assert.True(t, run.Target.IsPositive())
				}
			}

			assert.Equal(t, 6.0, outcomes(r.Metrics(), mode))
			assert.Equal(t, float64(report.Solved()), testutil.ToFloat64(r.Metrics().RunsTotal.WithLabelValues(mode, OutcomeSolved)))
			assert.Zero(t, testutil.ToFloat64(r.Metrics().ActiveRuns))
			assert.Equal(t, 1, testutil.CollectAndCount(r.Metrics().RunGenerations))

			assert.Len(t, progress.Labels(), 6)
			for _, label := range progress.Labels() {
				assert.True(t, progress.Progress(label).Snapshot().Completed, label)
			}
		})
	}
}

func TestRunner_SeedReproducesRuns(t *testing.T) {
	cfg := benchConfig(config.ModeSubset)

	first, err := NewRunner(cfg, dataset.Embedded(), nil, nil).Run(context.Background())
	require.NoError(t, err)
	second, err := NewRunner(cfg, dataset.Embedded(), nil, nil).Run(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	for i := range first.Runs {
		assert.Equal(t, first.Runs[i].Generations, second.Runs[i].Generations)
		assert.True(t, first.Runs[i].BestFitness.Equal(second.Runs[i].BestFitness))
		assert.True(t, first.Runs[i].Target.Equal(second.Runs[i].Target))
	}
}

func TestRunner_InverseMutation(t *testing.T) {
	cfg := benchConfig(config.ModeSubset)
	cfg.Bench.InverseMutation = true

	r := NewRunner(cfg, dataset.Embedded(), nil, nil)
	assert.InDelta(t, 0.1, r.cfg.Solver.MutationChance, 1e-12)
}

func TestRunner_PackedRejectsLargeSets(t *testing.T) {
	cfg := benchConfig(config.ModeSubset128)
	cfg.Bench.SetSize = 200

	r := NewRunner(cfg, dataset.Embedded(), nil, nil)
	_, err := r.Run(context.Background())
	require.Error(t, err)
	assert.Positive(t, testutil.ToFloat64(r.Metrics().RunsTotal.WithLabelValues(config.ModeSubset128, OutcomeFailed)))
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(benchConfig(config.ModeSubset), dataset.Embedded(), nil, nil).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestMetrics_WriteText(t *testing.T) {
	r := NewRunner(benchConfig(config.ModeBalance), dataset.Embedded(), nil, nil)
	_, err := r.Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Metrics().WriteText(&buf))
	assert.Contains(t, buf.String(), "subsetsum_bench_runs_total")
	assert.Contains(t, buf.String(), "subsetsum_bench_run_duration_seconds_bucket")
}

func TestReport_Aggregates(t *testing.T) {
	report := &Report{Runs: []RunResult{
		{Generations: 10, Solved: true, Elapsed: 2},
		{Generations: 30, Elapsed: 4},
	}}
	assert.Equal(t, 1, report.Solved())
	assert.Equal(t, 20.0, report.MeanGenerations())
	assert.EqualValues(t, 3, report.MeanElapsed())

	empty := &Report{}
	assert.Zero(t, empty.MeanGenerations())
	assert.Zero(t, empty.MeanElapsed())
}
