package genetic

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedingNames_RoundTrip(t *testing.T) {
	for i := range seedingNames {
		s := Seeding(i)
		parsed, err := ParseSeeding(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	parsed, err := ParseSeeding("randomsumuntilexceeding")
	require.NoError(t, err)
	assert.Equal(t, RandomSumUntilExceeding, parsed)

	_, err = ParseSeeding("Nope")
	assert.Error(t, err)
}

func TestSeeders_TablesCoverVariants(t *testing.T) {
	for _, s := range []Seeding{FullRandom, AllUnset, AllSet, RandomSumUntilExceeding, RandomSubArraySumUntilExceeding} {
		_, ok := SubsetSeeder(s)
		assert.True(t, ok, "single-set %v", s)
	}
	for _, s := range []Seeding{
		FullRandom, AllUnset, AllSet, RandomSum, RandomSubArraySum, RandomSubArraySumHalf,
		RandomSumUntilExceedingMinHalfSum, RandomSubArraySumUntilExceedingMinHalfSum,
	} {
		_, ok := BalanceSeeder(s)
		assert.True(t, ok, "two-set %v", s)
	}

	_, ok := SubsetSeeder(RandomSum)
	assert.False(t, ok)
	_, ok = BalanceSeeder(RandomSumUntilExceeding)
	assert.False(t, ok)
}

func TestFillRun_ContiguousWithWraparound(t *testing.T) {
	values := ints(1, 1, 1, 1, 1, 1, 1, 1)
	target := decimal.NewFromInt(3)

	for seed := range uint64(50) {
		rng := rand.New(rand.NewPCG(seed, 7))
		genes := NewBitVector(len(values))
		fillRun(genes, values, target, rng)

		require.Equal(t, 3, genes.Count())

		// Exactly one selected position has an unselected predecessor (cyclically)
		starts := 0
		for i := range values {
			prev := (i + len(values) - 1) % len(values)
			if genes.Get(i) && !genes.Get(prev) {
				starts++
			}
		}
		assert.Equal(t, 1, starts, "seed %d selected %v", seed, bitsOf(genes))
	}
}

func TestFillRun_UnreachableTargetSelectsEverything(t *testing.T) {
	values := ints(1, 2, 3)
	genes := NewBitVector(3)
	fillRun(genes, values, decimal.NewFromInt(1000), rand.New(rand.NewPCG(1, 1)))
	assert.Equal(t, 3, genes.Count())
}

func TestFillRandomPositions_Bounded(t *testing.T) {
	values := ints(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	rng := rand.New(rand.NewPCG(3, 4))

	for range 100 {
		genes := NewBits128(len(values))
		fillRandomPositions(genes, values, decimal.NewFromInt(10_000), rng)
		// n draws with replacement never select more than n positions
		require.LessOrEqual(t, genes.Count(), len(values))
		require.Positive(t, genes.Count())
	}
}

func TestFillRandomPositions_StopsAtTarget(t *testing.T) {
	values := ints(5, 5, 5, 5, 5, 5, 5, 5, 5, 5)
	rng := rand.New(rand.NewPCG(5, 6))

	for range 100 {
		genes := NewBitVector(len(values))
		fillRandomPositions(genes, values, decimal.NewFromInt(10), rng)
		require.LessOrEqual(t, genes.Count(), 2)
	}
}

func TestFullRandom_UsesProbability(t *testing.T) {
	fn, _ := SubsetSeeder(FullRandom)
	rng := rand.New(rand.NewPCG(9, 9))
	genes := NewBitVector(64)

	fn(genes, &SubsetSeedParams{Probability: 1}, rng)
	assert.Equal(t, 64, genes.Count())

	fn(genes, &SubsetSeedParams{Probability: 0}, rng)
	assert.Zero(t, genes.Count())
}

func TestBalanceSeeders_TargetBothSides(t *testing.T) {
	first := ints(4, 4, 4, 4, 4, 4)
	second := ints(3, 3, 3, 3, 3, 3, 3, 3)
	params := NewBalanceSeedParams(first, second)

	assert.Equal(t, "12", params.MinHalfSum.String())
	assert.Equal(t, "24", params.MinSum.String())

	rng := rand.New(rand.NewPCG(11, 12))
	for _, s := range []Seeding{RandomSumUntilExceedingMinHalfSum, RandomSubArraySumUntilExceedingMinHalfSum} {
		fn, _ := BalanceSeeder(s)
		for range 20 {
			g1, g2 := NewBitVector(len(first)), NewBitVector(len(second))
			fn(g1, g2, params, rng)

			sum1 := sum(selectedValues(g1, first))
			sum2 := sum(selectedValues(g2, second))
			if s == RandomSubArraySumUntilExceedingMinHalfSum {
				// Contiguous walks always reach the target when the total allows it
				assert.Equal(t, "12", sum1.String(), "%v", s)
				assert.Equal(t, "12", sum2.String(), "%v", s)
			}
			assert.True(t, sum1.LessThanOrEqual(decimal.NewFromInt(12)), "%v", s)
			assert.True(t, sum2.LessThanOrEqual(decimal.NewFromInt(12)), "%v", s)
		}
	}
}

func TestRandomBelow_InRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 3))
	bound := decimal.RequireFromString("12.5")
	for range 1000 {
		v := randomBelow(bound, rng)
		require.False(t, v.IsNegative())
		require.True(t, v.LessThan(bound))
	}
}

func TestOrderers(t *testing.T) {
	values := ints(5, 1, 4, 2, 3, 6, 9, 7)
	original := slices.Clone(values)
	rng := rand.New(rand.NewPCG(2, 2))

	for _, o := range []Ordering{NoSorting, RandomOrder, Increasing, Hump} {
		fn, ok := Orderer(o)
		require.True(t, ok)
		out := fn(values, rng)

		assert.Equal(t, original, values, "%v must not modify input", o)
		assert.ElementsMatch(t, strs(values), strs(out), "%v must be a permutation", o)

		switch o {
		case NoSorting:
			assert.Equal(t, strs(values), strs(out))
		case Increasing:
			assert.True(t, slices.IsSortedFunc(out, decimal.Decimal.Cmp))
		case Hump:
			mid := len(out) / 2
			assert.True(t, slices.IsSortedFunc(out[:mid], decimal.Decimal.Cmp))
			assert.True(t, slices.IsSortedFunc(out[mid:], func(a, b decimal.Decimal) int { return b.Cmp(a) }))
		}
	}
}

func TestOrderingNames(t *testing.T) {
	o, err := ParseOrdering("hump")
	require.NoError(t, err)
	assert.Equal(t, Hump, o)

	o, err = ParseOrdering("Random")
	require.NoError(t, err)
	assert.Equal(t, RandomOrder, o)

	_, err = ParseOrdering("sideways")
	assert.Error(t, err)
}

func strs(values []decimal.Decimal) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}
