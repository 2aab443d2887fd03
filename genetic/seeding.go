package genetic

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/shopspring/decimal"
)

// Seeding selects the policy used to build generation 0
type Seeding uint8

const (
	// FullRandom sets every bit independently with a fixed probability
	FullRandom Seeding = iota
	// AllUnset clears every bit
	AllUnset
	// AllSet sets every bit
	AllSet
	// RandomSum picks random positions until a random target below the smaller half-sum is reached (two sets)
	RandomSum
	// RandomSumUntilExceeding picks random positions until the subset sum is reached (one set)
	RandomSumUntilExceeding
	// RandomSubArraySum walks a random contiguous run until a random target below the smaller total is reached (two sets)
	RandomSubArraySum
	// RandomSubArraySumHalf walks a random contiguous run until a random target below the smaller half-sum is reached (two sets)
	RandomSubArraySumHalf
	// RandomSubArraySumUntilExceeding walks a random contiguous run until the subset sum is reached (one set)
	RandomSubArraySumUntilExceeding
	// RandomSumUntilExceedingMinHalfSum picks random positions until the smaller half-sum is reached (two sets)
	RandomSumUntilExceedingMinHalfSum
	// RandomSubArraySumUntilExceedingMinHalfSum walks a random contiguous run until the smaller half-sum is reached (two sets)
	RandomSubArraySumUntilExceedingMinHalfSum
)

var seedingNames = [...]string{
	FullRandom:                                "FullRandom",
	AllUnset:                                  "AllUnset",
	AllSet:                                    "AllSet",
	RandomSum:                                 "RandomSum",
	RandomSumUntilExceeding:                   "RandomSumUntilExceeding",
	RandomSubArraySum:                         "RandomSubArraySum",
	RandomSubArraySumHalf:                     "RandomSubArraySumHalf",
	RandomSubArraySumUntilExceeding:           "RandomSubArraySumUntilExceeding",
	RandomSumUntilExceedingMinHalfSum:         "RandomSumUntilExceedingMinHalfSum",
	RandomSubArraySumUntilExceedingMinHalfSum: "RandomSubArraySumUntilExceedingMinHalfSum",
}

func (s Seeding) String() string {
	if int(s) < len(seedingNames) {
		return seedingNames[s]
	}
	return fmt.Sprintf("Seeding(%d)", uint8(s))
}

// ParseSeeding resolves a case-insensitive seeding name
func ParseSeeding(name string) (Seeding, error) {
	for i, n := range seedingNames {
		if strings.EqualFold(n, name) {
			return Seeding(i), nil
		}
	}
	return 0, fmt.Errorf("unknown seeding %q", name)
}

// --- Single-set policies ---

// SubsetSeedParams carries the inputs a single-set policy may consult
type SubsetSeedParams struct {
	Values      []decimal.Decimal
	Target      decimal.Decimal
	Probability float64
}

// SubsetSeedFunc fills one selection vector
type SubsetSeedFunc func(genes Selector, p *SubsetSeedParams, rng *rand.Rand)

var subsetSeeders = map[Seeding]SubsetSeedFunc{
	// Per-bit probability is the configured mutation chance, kept for parity with existing runs
	FullRandom: func(genes Selector, p *SubsetSeedParams, rng *rand.Rand) {
		fillProbability(genes, p.Probability, rng)
	},
	AllUnset: func(genes Selector, _ *SubsetSeedParams, _ *rand.Rand) {
		genes.SetAll(false)
	},
	AllSet: func(genes Selector, _ *SubsetSeedParams, _ *rand.Rand) {
		genes.SetAll(true)
	},
	RandomSumUntilExceeding: func(genes Selector, p *SubsetSeedParams, rng *rand.Rand) {
		fillRandomPositions(genes, p.Values, p.Target, rng)
	},
	RandomSubArraySumUntilExceeding: func(genes Selector, p *SubsetSeedParams, rng *rand.Rand) {
		fillRun(genes, p.Values, p.Target, rng)
	},
}

// SubsetSeeder returns the single-set policy for s
func SubsetSeeder(s Seeding) (SubsetSeedFunc, bool) {
	fn, ok := subsetSeeders[s]
	return fn, ok
}

// --- Two-set policies ---

// BalanceSeedParams carries the inputs a two-set policy may consult
type BalanceSeedParams struct {
	FirstValues  []decimal.Decimal
	SecondValues []decimal.Decimal
	// MinHalfSum is min(sum(first)/2, sum(second)/2)
	MinHalfSum decimal.Decimal
	// MinSum is min(sum(first), sum(second))
	MinSum decimal.Decimal
}

// NewBalanceSeedParams derives the sum bounds of both sets
func NewBalanceSeedParams(first, second []decimal.Decimal) *BalanceSeedParams {
	sum1, sum2 := sum(first), sum(second)
	minSum := decimal.Min(sum1, sum2)
	return &BalanceSeedParams{
		FirstValues:  first,
		SecondValues: second,
		MinHalfSum:   minSum.Div(decimal.NewFromInt(2)),
		MinSum:       minSum,
	}
}

// BalanceSeedFunc fills both halves of one paired candidate
type BalanceSeedFunc func(first, second Selector, p *BalanceSeedParams, rng *rand.Rand)

var balanceSeeders = map[Seeding]BalanceSeedFunc{
	FullRandom: func(first, second Selector, _ *BalanceSeedParams, rng *rand.Rand) {
		fillProbability(first, 0.5, rng)
		fillProbability(second, 0.5, rng)
	},
	AllUnset: func(first, second Selector, _ *BalanceSeedParams, _ *rand.Rand) {
		first.SetAll(false)
		second.SetAll(false)
	},
	AllSet: func(first, second Selector, _ *BalanceSeedParams, _ *rand.Rand) {
		first.SetAll(true)
		second.SetAll(true)
	},
	RandomSum: func(first, second Selector, p *BalanceSeedParams, rng *rand.Rand) {
		target := randomBelow(p.MinHalfSum, rng)
		fillRandomPositions(first, p.FirstValues, target, rng)
		fillRandomPositions(second, p.SecondValues, target, rng)
	},
	RandomSubArraySum: func(first, second Selector, p *BalanceSeedParams, rng *rand.Rand) {
		target := randomBelow(p.MinSum, rng)
		fillRun(first, p.FirstValues, target, rng)
		fillRun(second, p.SecondValues, target, rng)
	},
	RandomSubArraySumHalf: func(first, second Selector, p *BalanceSeedParams, rng *rand.Rand) {
		target := randomBelow(p.MinHalfSum, rng)
		fillRun(first, p.FirstValues, target, rng)
		fillRun(second, p.SecondValues, target, rng)
	},
	RandomSumUntilExceedingMinHalfSum: func(first, second Selector, p *BalanceSeedParams, rng *rand.Rand) {
		fillRandomPositions(first, p.FirstValues, p.MinHalfSum, rng)
		fillRandomPositions(second, p.SecondValues, p.MinHalfSum, rng)
	},
	RandomSubArraySumUntilExceedingMinHalfSum: func(first, second Selector, p *BalanceSeedParams, rng *rand.Rand) {
		fillRun(first, p.FirstValues, p.MinHalfSum, rng)
		fillRun(second, p.SecondValues, p.MinHalfSum, rng)
	},
}

// BalanceSeeder returns the two-set policy for s
func BalanceSeeder(s Seeding) (BalanceSeedFunc, bool) {
	fn, ok := balanceSeeders[s]
	return fn, ok
}

// --- Fill primitives ---

func fillProbability(genes Selector, probability float64, rng *rand.Rand) {
	for i := range genes.Len() {
		genes.Set(i, chance(rng, probability))
	}
}

// fillRandomPositions draws up to n positions with replacement, selecting unselected ones,
// until the selected sum reaches target
func fillRandomPositions(genes Selector, values []decimal.Decimal, target decimal.Decimal, rng *rand.Rand) {
	genes.SetAll(false)
	n := len(values)
	total := decimal.Zero
	for range n {
		idx := rng.IntN(n)
		if !genes.Get(idx) {
			genes.Set(idx, true)
			total = total.Add(values[idx])
		}
		if total.GreaterThanOrEqual(target) {
			return
		}
	}
}

// fillRun selects a contiguous run starting at a random position, wrapping at the end,
// until the selected sum reaches target or every position has been visited
func fillRun(genes Selector, values []decimal.Decimal, target decimal.Decimal, rng *rand.Rand) {
	genes.SetAll(false)
	n := len(values)
	start := rng.IntN(n)
	total := decimal.Zero
	for k := range n {
		idx := (start + k) % n
		genes.Set(idx, true)
		total = total.Add(values[idx])
		if total.GreaterThanOrEqual(target) {
			return
		}
	}
}

// randomBelow draws a value uniformly from [0, bound)
func randomBelow(bound decimal.Decimal, rng *rand.Rand) decimal.Decimal {
	return bound.Mul(decimal.NewFromFloat(rng.Float64()))
}
