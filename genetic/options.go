package genetic

import (
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RunOptions holds the parameters shared by both solver variants
type RunOptions struct {
	// Random drives every stochastic decision; required
	Random *rand.Rand
	// FitnessThreshold stops the run once the best fitness is at or below it
	FitnessThreshold decimal.Decimal
	// GenerationSize is the number of candidates per generation, positive and even
	GenerationSize int
	// MutationChance is the per-candidate probability of a single bit flip each generation
	MutationChance float64
	// GenerationsMaxCount caps the number of generations
	GenerationsMaxCount int
	// Timeout caps wall-clock time from construction or Reset, zero disables the bound
	Timeout time.Duration
	// Seeding builds generation 0
	Seeding Seeding
	// Ordering permutes each input set once before the run
	Ordering Ordering
	// Logger receives lifecycle events, nil disables logging
	Logger *zap.Logger
	// Now overrides the wall clock, nil uses time.Now
	Now func() time.Time
}

// SubsetOptions configures a single-set solver
type SubsetOptions struct {
	RunOptions
	// Set holds the candidate values; copied at construction
	Set []decimal.Decimal
	// SubsetSum is the target the selected values should add up to
	SubsetSum decimal.Decimal
}

// BalanceOptions configures a two-set solver
type BalanceOptions struct {
	RunOptions
	// FirstSet and SecondSet hold the values of each side; copied at construction
	FirstSet  []decimal.Decimal
	SecondSet []decimal.Decimal
}

func (o *RunOptions) validate() error {
	if o.Random == nil {
		return optionError("Random", "pseudorandom source is required")
	}
	if o.GenerationSize <= 0 || o.GenerationSize%2 != 0 {
		return optionError("GenerationSize", "must be a positive even number, got %d", o.GenerationSize)
	}
	if o.GenerationsMaxCount <= 0 {
		return optionError("GenerationsMaxCount", "must be positive, got %d", o.GenerationsMaxCount)
	}
	if o.MutationChance <= 0 {
		return optionError("MutationChance", "must be positive, got %v", o.MutationChance)
	}
	if o.Timeout < 0 {
		return optionError("Timeout", "must not be negative, got %v", o.Timeout)
	}
	if _, ok := Orderer(o.Ordering); !ok {
		return optionError("Ordering", "unsupported gene ordering %v", o.Ordering)
	}
	return nil
}

func (o *SubsetOptions) validate() error {
	if err := o.RunOptions.validate(); err != nil {
		return err
	}
	if !o.SubsetSum.IsPositive() {
		return optionError("SubsetSum", "must be positive, got %s", o.SubsetSum)
	}
	if len(o.Set) == 0 {
		return optionError("Set", "must not be empty")
	}
	for i, v := range o.Set {
		if !v.IsPositive() || v.GreaterThan(o.SubsetSum) {
			return optionError("Set", "element %d (%s) must be > 0 and <= subset sum", i, v)
		}
	}
	if _, ok := SubsetSeeder(o.Seeding); !ok {
		return optionError("Seeding", "%v is not a single-set seeding", o.Seeding)
	}
	return nil
}

func (o *BalanceOptions) validate() error {
	if err := o.RunOptions.validate(); err != nil {
		return err
	}
	if err := validateSide("FirstSet", o.FirstSet); err != nil {
		return err
	}
	if err := validateSide("SecondSet", o.SecondSet); err != nil {
		return err
	}
	if _, ok := BalanceSeeder(o.Seeding); !ok {
		return optionError("Seeding", "%v is not a two-set seeding", o.Seeding)
	}
	return nil
}

func validateSide(field string, values []decimal.Decimal) error {
	if len(values) == 0 {
		return optionError(field, "must not be empty")
	}
	for i, v := range values {
		if !v.IsPositive() {
			return optionError(field, "element %d (%s) must be > 0", i, v)
		}
	}
	return nil
}

func (o *RunOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o *RunOptions) clock() func() time.Time {
	if o.Now == nil {
		return time.Now
	}
	return o.Now
}
