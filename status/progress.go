package status

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// Progress metric key suffixes, prefixed by the run label
const (
	KeyGeneration         = "generation"
	KeyBestFitness        = "best_fitness"
	KeyIterationFitness   = "iteration_fitness"
	KeyIterationBitsSet   = "iteration_bits_set"
	KeyCompleted          = "completed"
	KeyThresholdSatisfied = "threshold_satisfied"
	KeyState              = "state"
	KeyRunID              = "run_id"
	KeyElapsed            = "elapsed_seconds"
)

// Snapshot is a point-in-time copy of one run's progress
// Published is false until the first Publish; fitness fields are zero until then
type Snapshot struct {
	Label              string
	RunID              string
	State              string
	Generation         int64
	BestFitness        decimal.Decimal
	IterationFitness   decimal.Decimal
	IterationBitsSet   int64
	Elapsed            time.Duration
	Completed          bool
	ThresholdSatisfied bool
	Published          bool
}

// Progress is the writer side for a single run
// Pointers are resolved once; Publish is lock-free
type Progress struct {
	label string

	generation         *atomic.Int64
	iterationBitsSet   *atomic.Int64
	completed          *atomic.Bool
	thresholdSatisfied *atomic.Bool
	bestFitness        *AtomicDecimal
	iterationFitness   *AtomicDecimal
	state              *AtomicString
	runID              *AtomicString
	elapsed            *AtomicDuration
}

// NewProgress registers the metrics of run label in r
func NewProgress(r *Registry, label, runID string) *Progress {
	p := r.Progress(label)
	p.runID.Store(runID)
	return p
}

// Progress returns the accessor for run label, registering its metrics if absent
func (r *Registry) Progress(label string) *Progress {
	key := func(suffix string) string { return label + "." + suffix }

	return &Progress{
		label:              label,
		generation:         r.Ints.Get(key(KeyGeneration)),
		iterationBitsSet:   r.Ints.Get(key(KeyIterationBitsSet)),
		completed:          r.Bools.Get(key(KeyCompleted)),
		thresholdSatisfied: r.Bools.Get(key(KeyThresholdSatisfied)),
		bestFitness:        r.Decimals.Get(key(KeyBestFitness)),
		iterationFitness:   r.Decimals.Get(key(KeyIterationFitness)),
		state:              r.Strings.Get(key(KeyState)),
		runID:              r.Strings.Get(key(KeyRunID)),
		elapsed:            r.Durations.Get(key(KeyElapsed)),
	}
}

// Label returns the registry prefix of this run
func (p *Progress) Label() string {
	return p.label
}

// Publish stores a snapshot; Label, RunID and Published are ignored
func (p *Progress) Publish(s Snapshot) {
	p.generation.Store(s.Generation)
	p.iterationBitsSet.Store(s.IterationBitsSet)
	p.bestFitness.Store(s.BestFitness)
	p.state.Store(s.State)
	p.thresholdSatisfied.Store(s.ThresholdSatisfied)
	p.iterationFitness.Store(s.IterationFitness)
	p.elapsed.Store(s.Elapsed)
	// Completed last so readers observing it see the final values
	p.completed.Store(s.Completed)
}

// Snapshot reads the current values
func (p *Progress) Snapshot() Snapshot {
	iteration, published := p.iterationFitness.Load()
	best, _ := p.bestFitness.Load()
	return Snapshot{
		Label:              p.label,
		RunID:              p.runID.Load(),
		State:              p.state.Load(),
		Generation:         p.generation.Load(),
		BestFitness:        best,
		IterationFitness:   iteration,
		IterationBitsSet:   p.iterationBitsSet.Load(),
		Elapsed:            p.elapsed.Load(),
		Completed:          p.completed.Load(),
		ThresholdSatisfied: p.thresholdSatisfied.Load(),
		Published:          published,
	}
}

// Labels returns the sorted labels of all runs registered in r
func (r *Registry) Labels() []string {
	var labels []string
	suffix := "." + KeyRunID
	for _, key := range r.Strings.Keys() {
		if label, ok := strings.CutSuffix(key, suffix); ok && label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}
