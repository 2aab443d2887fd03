package genetic

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Ordering selects the permutation applied to a set before generation 0
// Crossover splices contiguous ranges, so the ordering decides which values tend to be inherited together
type Ordering uint8

const (
	// NoSorting keeps input order
	NoSorting Ordering = iota
	// RandomOrder shuffles uniformly
	RandomOrder
	// Increasing sorts ascending by value
	Increasing
	// Hump shuffles, then sorts the first half ascending and the second half descending
	Hump
)

var orderingNames = [...]string{
	NoSorting:   "NoSorting",
	RandomOrder: "Random",
	Increasing:  "Increasing",
	Hump:        "Hump",
}

func (o Ordering) String() string {
	if int(o) < len(orderingNames) {
		return orderingNames[o]
	}
	return fmt.Sprintf("Ordering(%d)", uint8(o))
}

// ParseOrdering resolves a case-insensitive ordering name
func ParseOrdering(name string) (Ordering, error) {
	for i, n := range orderingNames {
		if strings.EqualFold(n, name) {
			return Ordering(i), nil
		}
	}
	return 0, fmt.Errorf("unknown gene ordering %q", name)
}

// OrderFunc returns a reordered copy of values; the input slice is never modified
type OrderFunc func(values []decimal.Decimal, rng *rand.Rand) []decimal.Decimal

var orderers = map[Ordering]OrderFunc{
	NoSorting:   orderNone,
	RandomOrder: orderRandom,
	Increasing:  orderIncreasing,
	Hump:        orderHump,
}

// Orderer returns the pure ordering function for o
func Orderer(o Ordering) (OrderFunc, bool) {
	fn, ok := orderers[o]
	return fn, ok
}

func orderNone(values []decimal.Decimal, _ *rand.Rand) []decimal.Decimal {
	return slices.Clone(values)
}

func orderRandom(values []decimal.Decimal, rng *rand.Rand) []decimal.Decimal {
	out := slices.Clone(values)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func orderIncreasing(values []decimal.Decimal, _ *rand.Rand) []decimal.Decimal {
	out := slices.Clone(values)
	slices.SortStableFunc(out, decimal.Decimal.Cmp)
	return out
}

// orderHump produces a unimodal profile: large values meet in the middle of the vector
func orderHump(values []decimal.Decimal, rng *rand.Rand) []decimal.Decimal {
	out := orderRandom(values, rng)
	mid := len(out) / 2
	slices.SortStableFunc(out[:mid], decimal.Decimal.Cmp)
	slices.SortStableFunc(out[mid:], func(a, b decimal.Decimal) int {
		return b.Cmp(a)
	})
	return out
}
