package dataset

import (
	"errors"
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoCandidates is returned when no value passes the filter
	ErrNoCandidates = errors.New("dataset: no value passes the filter")

	// ErrNotSeparable is returned when disjoint draws are impossible
	ErrNotSeparable = errors.New("dataset: fewer than two distinct values")
)

// Filter accepts or rejects a candidate value
type Filter func(decimal.Decimal) bool

// AtMost accepts values not exceeding limit
func AtMost(limit decimal.Decimal) Filter {
	return func(v decimal.Decimal) bool {
		return v.LessThanOrEqual(limit)
	}
}

// TakeN draws count values uniformly with replacement, keeping only those accepted by filter
// A nil filter accepts everything
func TakeN(values []decimal.Decimal, count int, rng *rand.Rand, filter Filter) ([]decimal.Decimal, error) {
	candidates := values
	if filter != nil {
		candidates = make([]decimal.Decimal, 0, len(values))
		for _, v := range values {
			if filter(v) {
				candidates = append(candidates, v)
			}
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	result := make([]decimal.Decimal, count)
	for i := range result {
		result[i] = candidates[rng.IntN(len(candidates))]
	}
	return result, nil
}

// TakeNWithoutIntersection draws two sets of count values each, alternating sides,
// such that no value appears in both
func TakeNWithoutIntersection(values []decimal.Decimal, count int, rng *rand.Rand) ([]decimal.Decimal, []decimal.Decimal, error) {
	if !hasTwoDistinct(values) {
		return nil, nil, ErrNotSeparable
	}

	first := make([]decimal.Decimal, count)
	second := make([]decimal.Decimal, count)

	// Keyed by canonical string so 1.5 and 1.50 collide
	inFirst := make(map[string]struct{})
	inSecond := make(map[string]struct{})

	draw := func(exclude map[string]struct{}) (decimal.Decimal, string) {
		for {
			v := values[rng.IntN(len(values))]
			key := v.String()
			if _, taken := exclude[key]; !taken {
				return v, key
			}
		}
	}

	for i := range count {
		v, key := draw(inSecond)
		inFirst[key] = struct{}{}
		first[i] = v

		v, key = draw(inFirst)
		inSecond[key] = struct{}{}
		second[i] = v
	}

	return first, second, nil
}

func hasTwoDistinct(values []decimal.Decimal) bool {
	for _, v := range values[min(1, len(values)):] {
		if !v.Equal(values[0]) {
			return true
		}
	}
	return false
}
