// Package driver runs a solver to completion while publishing progress
// and collecting per-generation statistics.
package driver

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lixenwraith/subsetsum/genetic"
	"github.com/lixenwraith/subsetsum/genetic/tracking"
	"github.com/lixenwraith/subsetsum/status"
)

// Outcome is the variant-independent view of one Step result
type Outcome struct {
	State                genetic.State
	Generation           int
	Completed            bool
	ThresholdSatisfied   bool
	BestFitness          decimal.Decimal
	IterationBestFitness decimal.Decimal
	IterationBestBitsSet int
	// Best holds the selected values per set: one slice for subset runs, two for balance runs
	Best [][]decimal.Decimal
}

// Feasible reports whether any valid selection has been recorded
func (o Outcome) Feasible() bool {
	return o.BestFitness.LessThan(genetic.MaxFitness)
}

// Stepper advances a solver by one generation
type Stepper func() Outcome

// Subset adapts a single-set solver of either encoding
func Subset[G genetic.Genes[G]](s *genetic.SubsetSolver[G]) Stepper {
	return func() Outcome {
		r := s.Step()
		return Outcome{
			State:                s.State(),
			Generation:           r.Generation,
			Completed:            r.IsCompleted,
			ThresholdSatisfied:   r.IsThresholdSatisfied,
			BestFitness:          r.BestFitness,
			IterationBestFitness: r.IterationBestFitness,
			IterationBestBitsSet: r.IterationBestBitsSet,
			Best:                 [][]decimal.Decimal{r.BestSolution},
		}
	}
}

// Balance adapts a two-set solver
func Balance(s *genetic.BalanceSolver) Stepper {
	return func() Outcome {
		r := s.Step()
		return Outcome{
			State:                s.State(),
			Generation:           r.Generation,
			Completed:            r.IsCompleted,
			ThresholdSatisfied:   r.IsThresholdSatisfied,
			BestFitness:          r.BestFitness,
			IterationBestFitness: r.IterationBestFitness,
			IterationBestBitsSet: r.IterationBestBitsSet,
			Best:                 [][]decimal.Decimal{r.BestFirst, r.BestSecond},
		}
	}
}

// Driver loops a Stepper until completion or cancellation
// All hooks are optional
type Driver struct {
	// Progress receives a snapshot after every generation
	Progress *status.Progress
	// Collector receives per-generation metrics
	Collector tracking.Collector
	// OnStep is called after every generation, in the driving goroutine
	OnStep func(Outcome)
	// Now overrides the wall clock
	Now func() time.Time
}

// Run steps until the solver completes, returning the final outcome and elapsed time
// Cancellation is checked between generations; a cancelled run returns the last outcome
func (d *Driver) Run(ctx context.Context, step Stepper) (Outcome, time.Duration, error) {
	now := d.Now
	if now == nil {
		now = time.Now
	}

	start := now()
	last := start
	var out Outcome

	for {
		if err := ctx.Err(); err != nil {
			return out, now().Sub(start), err
		}

		out = step()
		t := now()

		if d.Collector != nil {
			d.Collector.Collect(Metrics(out), t.Sub(last))
		}
		if d.Progress != nil {
			d.Progress.Publish(status.Snapshot{
				State:              out.State.String(),
				Generation:         int64(out.Generation),
				BestFitness:        out.BestFitness,
				IterationFitness:   out.IterationBestFitness,
				IterationBitsSet:   int64(out.IterationBestBitsSet),
				Elapsed:            t.Sub(start),
				Completed:          out.Completed,
				ThresholdSatisfied: out.ThresholdSatisfied,
			})
		}
		if d.OnStep != nil {
			d.OnStep(out)
		}

		last = t
		if out.Completed {
			return out, t.Sub(start), nil
		}
	}
}

// Metrics converts an outcome into a tracking bundle
// Infeasible fitness values are left out so they do not swamp the aggregates
func Metrics(out Outcome) tracking.MetricBundle {
	m := tracking.MetricBundle{
		tracking.MetricBitsSet: float64(out.IterationBestBitsSet),
	}
	if out.IterationBestFitness.LessThan(genetic.MaxFitness) {
		m[tracking.MetricFitness] = out.IterationBestFitness.InexactFloat64()
	}
	if out.Feasible() {
		m[tracking.MetricBestFitness] = out.BestFitness.InexactFloat64()
	}
	return m
}
