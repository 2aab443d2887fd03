// Package genetic implements an elitist genetic algorithm for subset-sum problems
//  1. SubsetSolver searches one set for a subset whose sum is closest to a target
//  2. BalanceSolver searches two sets for subsets whose sums are closest to each other
//  3. Both are written once over the Genes capability, so packed and dynamic encodings share the loop
//  4. Solvers are single-threaded and synchronous; use one instance per goroutine
package genetic

import (
	"math/rand/v2"
	"slices"
)

// --- Operators ---

// ranked orders candidates by fitness
type ranked[T any] interface {
	Compare(other T) int
}

// bestTwo returns the two lowest-fitness candidates among a, b, c, d
// Ties resolve toward the earlier argument, so a parent beats an equally fit child
func bestTwo[T ranked[T]](a, b, c, d T) (T, T) {
	candidates := [4]T{a, b, c, d}

	first := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Compare(candidates[first]) < 0 {
			first = i
		}
	}

	second := -1
	for i := range candidates {
		if i == first {
			continue
		}
		if second < 0 || candidates[i].Compare(candidates[second]) < 0 {
			second = i
		}
	}

	return candidates[first], candidates[second]
}

// cutPoint draws a single-point crossover position strictly inside a vector of the given length
// Lengths below 2 have no interior, the whole vector is then inherited from the first parent
func cutPoint(rng *rand.Rand, length int) int {
	if length < 2 {
		return length
	}
	return 1 + rng.IntN(length-1)
}

// sortGeneration orders a generation ascending by fitness
// Stable so equal-fitness candidates keep their relative order and runs stay reproducible
func sortGeneration[T ranked[T]](generation []T) {
	slices.SortStableFunc(generation, func(a, b T) int {
		return a.Compare(b)
	})
}
