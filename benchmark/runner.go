// Package benchmark runs many independent solver instances concurrently on
// sets drawn from a dataset and aggregates their outcomes.
package benchmark

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/subsetsum/config"
	"github.com/lixenwraith/subsetsum/dataset"
	"github.com/lixenwraith/subsetsum/driver"
	"github.com/lixenwraith/subsetsum/genetic"
	"github.com/lixenwraith/subsetsum/genetic/tracking"
	"github.com/lixenwraith/subsetsum/status"
)

// Run outcomes used as metric labels
const (
	OutcomeSolved   = "solved"
	OutcomeUnsolved = "unsolved"
	OutcomeFailed   = "failed"
)

// RunResult is the record of one solver run
type RunResult struct {
	Index       int
	ID          uuid.UUID
	Target      decimal.Decimal
	Generations int
	BestFitness decimal.Decimal
	Solved      bool
	Feasible    bool
	Elapsed     time.Duration
	Stats       tracking.MetricBundle
}

// Report aggregates a whole benchmark
type Report struct {
	ID      uuid.UUID
	Mode    string
	Runs    []RunResult
	Elapsed time.Duration
}

// Solved returns the number of runs that met the fitness threshold
func (r *Report) Solved() int {
	n := 0
	for _, run := range r.Runs {
		if run.Solved {
			n++
		}
	}
	return n
}

// MeanElapsed returns the average run duration
func (r *Report) MeanElapsed() time.Duration {
	if len(r.Runs) == 0 {
		return 0
	}
	var total time.Duration
	for _, run := range r.Runs {
		total += run.Elapsed
	}
	return total / time.Duration(len(r.Runs))
}

// MeanGenerations returns the average generation count
func (r *Report) MeanGenerations() float64 {
	if len(r.Runs) == 0 {
		return 0
	}
	total := 0
	for _, run := range r.Runs {
		total += run.Generations
	}
	return float64(total) / float64(len(r.Runs))
}

// Runner executes benchmarks described by a config
type Runner struct {
	cfg      config.Config
	provider *dataset.Provider
	log      *zap.Logger
	progress *status.Registry
	metrics  *Metrics
	pool     *tracking.CollectorPool
	now      func() time.Time
}

// NewRunner wires a runner; progress and log may be nil
func NewRunner(cfg config.Config, provider *dataset.Provider, progress *status.Registry, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if progress == nil {
		progress = status.NewRegistry()
	}
	if cfg.Bench.InverseMutation {
		cfg.Solver.MutationChance = 1 / float64(cfg.Solver.GenerationSize)
	}

	return &Runner{
		cfg:      cfg,
		provider: provider,
		log:      log,
		progress: progress,
		metrics:  NewMetrics(),
		pool:     tracking.NewCollectorPool(cfg.Bench.Parallelism),
		now:      time.Now,
	}
}

// Metrics returns the collectors updated by Run
func (r *Runner) Metrics() *Metrics {
	return r.metrics
}

// Run executes cfg.Bench.Runs independent runs, at most cfg.Bench.Parallelism at a time
// The first failing run cancels the rest
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	values, err := r.provider.Values()
	if err != nil {
		return nil, fmt.Errorf("benchmark: %w", err)
	}
	mean, err := r.provider.Mean()
	if err != nil {
		return nil, fmt.Errorf("benchmark: %w", err)
	}

	report := &Report{
		ID:   uuid.New(),
		Mode: r.cfg.Bench.Mode,
		Runs: make([]RunResult, r.cfg.Bench.Runs),
	}
	log := r.log.With(zap.Stringer("benchmark_id", report.ID), zap.String("mode", report.Mode))
	log.Info("benchmark started",
		zap.Int("runs", r.cfg.Bench.Runs),
		zap.Int("parallelism", r.cfg.Bench.Parallelism),
		zap.Int("set_size", r.cfg.Bench.SetSize))

	// Seeds are drawn up front so a fixed config seed reproduces every run regardless of scheduling
	base := r.cfg.Random()
	seeds := make([][2]uint64, r.cfg.Bench.Runs)
	for i := range seeds {
		seeds[i] = [2]uint64{base.Uint64(), base.Uint64()}
	}

	start := r.now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Bench.Parallelism)

	for i := range seeds {
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(seeds[i][0], seeds[i][1]))
			result, err := r.runOne(gctx, i, rng, values, mean, log)
			if err != nil {
				r.metrics.RunsTotal.WithLabelValues(report.Mode, OutcomeFailed).Inc()
				return fmt.Errorf("run %d: %w", i, err)
			}
			report.Runs[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("benchmark aborted", zap.Error(err))
		return nil, err
	}

	report.Elapsed = r.now().Sub(start)
	log.Info("benchmark finished",
		zap.Int("solved", report.Solved()),
		zap.Duration("elapsed", report.Elapsed),
		zap.Float64("mean_generations", report.MeanGenerations()))
	return report, nil
}

func (r *Runner) runOne(ctx context.Context, index int, rng *rand.Rand, values []decimal.Decimal, mean decimal.Decimal, log *zap.Logger) (RunResult, error) {
	id := uuid.New()
	log = log.With(zap.Int("run", index), zap.Stringer("run_id", id))

	step, target, err := r.buildSolver(rng, values, mean, log)
	if err != nil {
		return RunResult{}, err
	}

	collector := r.pool.Acquire()
	defer r.pool.Release(collector)

	d := &driver.Driver{
		Progress:  status.NewProgress(r.progress, fmt.Sprintf("run-%03d", index), id.String()),
		Collector: collector,
		Now:       r.now,
	}

	r.metrics.ActiveRuns.Inc()
	out, elapsed, err := d.Run(ctx, step)
	r.metrics.ActiveRuns.Dec()
	if err != nil {
		return RunResult{}, err
	}

	result := RunResult{
		Index:       index,
		ID:          id,
		Target:      target,
		Generations: out.Generation,
		BestFitness: out.BestFitness,
		Solved:      out.ThresholdSatisfied,
		Feasible:    out.Feasible(),
		Elapsed:     elapsed,
	}
	solved := 0.0
	if result.Solved {
		solved = 1
	}
	result.Stats = collector.Finalize(tracking.MetricBundle{tracking.MetricSolved: solved})

	outcome := OutcomeUnsolved
	if result.Solved {
		outcome = OutcomeSolved
	}
	mode := r.cfg.Bench.Mode
	r.metrics.RunsTotal.WithLabelValues(mode, outcome).Inc()
	r.metrics.RunDurationSeconds.WithLabelValues(mode).Observe(elapsed.Seconds())
	r.metrics.RunGenerations.WithLabelValues(mode).Observe(float64(out.Generation))
	if result.Feasible {
		r.metrics.BestFitness.WithLabelValues(mode).Observe(out.BestFitness.InexactFloat64())
	}

	log.Debug("run finished",
		zap.Int("generations", out.Generation),
		zap.String("best_fitness", out.BestFitness.String()),
		zap.Bool("solved", result.Solved),
		zap.Duration("elapsed", elapsed))
	return result, nil
}

// buildSolver draws the run's sets and constructs the solver for the configured mode
// The returned target is the subset sum, or zero for balance runs
func (r *Runner) buildSolver(rng *rand.Rand, values []decimal.Decimal, mean decimal.Decimal, log *zap.Logger) (driver.Stepper, decimal.Decimal, error) {
	bench := r.cfg.Bench

	if bench.Mode == config.ModeBalance {
		first, second, err := r.drawPair(rng, values, bench.SetSize/2)
		if err != nil {
			return nil, decimal.Zero, err
		}
		opts, err := r.cfg.BalanceOptions(rng, first, second, log)
		if err != nil {
			return nil, decimal.Zero, err
		}
		solver, err := genetic.NewBalanceSolver(opts)
		if err != nil {
			return nil, decimal.Zero, err
		}
		return driver.Balance(solver), decimal.Zero, nil
	}

	target := r.cfg.Subset.SubsetSum.Decimal
	if target.IsZero() {
		target = bench.MeanScale.Mul(mean)
	}
	set, err := dataset.TakeN(values, bench.SetSize, rng, dataset.AtMost(target))
	if err != nil {
		return nil, decimal.Zero, err
	}
	opts, err := r.cfg.SubsetOptions(rng, set, target, log)
	if err != nil {
		return nil, decimal.Zero, err
	}

	if bench.Mode == config.ModeSubset128 {
		solver, err := genetic.NewSubsetSolver128(opts)
		if err != nil {
			return nil, decimal.Zero, err
		}
		return driver.Subset(solver), target, nil
	}

	solver, err := genetic.NewSubsetSolver(opts)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return driver.Subset(solver), target, nil
}

func (r *Runner) drawPair(rng *rand.Rand, values []decimal.Decimal, count int) ([]decimal.Decimal, []decimal.Decimal, error) {
	if r.cfg.Bench.Disjoint {
		return dataset.TakeNWithoutIntersection(values, count, rng)
	}
	first, err := dataset.TakeN(values, count, rng, nil)
	if err != nil {
		return nil, nil, err
	}
	second, err := dataset.TakeN(values, count, rng, nil)
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}
