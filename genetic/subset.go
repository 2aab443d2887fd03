package genetic

import (
	"math/rand/v2"
	"slices"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SubsetSolver searches one set for a subset whose sum is closest to a target
// G selects the selection vector encoding: *BitVector for any size, *Bits128 for sets of at most 128 values
type SubsetSolver[G Genes[G]] struct {
	engine   *engine[*Individual[G]]
	newGenes func(n int) G

	values []decimal.Decimal
	target decimal.Decimal
	seeder SubsetSeedFunc
	params SubsetSeedParams

	best []decimal.Decimal
}

// NewSubsetSolver creates a single-set solver over dynamically sized vectors
func NewSubsetSolver(opts SubsetOptions) (*SubsetSolver[*BitVector], error) {
	return newSubsetSolver(opts, NewBitVector)
}

// NewSubsetSolver128 creates a single-set solver over packed 128-bit vectors
// Sets larger than MaxBits128 are rejected
func NewSubsetSolver128(opts SubsetOptions) (*SubsetSolver[*Bits128], error) {
	if len(opts.Set) > MaxBits128 {
		return nil, optionError("Set", "packed solver supports at most %d values, got %d", MaxBits128, len(opts.Set))
	}
	return newSubsetSolver(opts, NewBits128)
}

func newSubsetSolver[G Genes[G]](opts SubsetOptions, newGenes func(n int) G) (*SubsetSolver[G], error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	order, _ := Orderer(opts.Ordering)
	seeder, _ := SubsetSeeder(opts.Seeding)
	values := order(opts.Set, opts.Random)

	s := &SubsetSolver[G]{
		newGenes: newGenes,
		values:   values,
		target:   opts.SubsetSum,
		seeder:   seeder,
		params: SubsetSeedParams{
			Values:      values,
			Target:      opts.SubsetSum,
			Probability: opts.MutationChance,
		},
	}
	s.engine = newEngine[*Individual[G]](s, &opts.RunOptions)

	s.engine.log.Info("subset solver created",
		zap.Int("set_size", len(values)),
		zap.String("subset_sum", opts.SubsetSum.String()),
		zap.Stringer("seeding", opts.Seeding),
		zap.Stringer("ordering", opts.Ordering),
		zap.Int("generation_size", opts.GenerationSize))

	s.Reset()
	return s, nil
}

// Reset re-seeds the population, clears the best solution and restarts the timeout clock
func (s *SubsetSolver[G]) Reset() {
	s.engine.reset()
}

// Step runs one generation and reports progress
// After completion it returns the final state without further evolution
func (s *SubsetSolver[G]) Step() SubsetResult {
	completed := s.engine.step()
	iterationFitness, iterationBits := s.engine.iterationBest()

	return SubsetResult{
		IsCompleted:          completed,
		IsThresholdSatisfied: s.engine.thresholdSatisfied(),
		Generation:           s.engine.generation,
		BestFitness:          s.engine.bestFitness,
		BestSolution:         slices.Clone(s.best),
		IterationBestFitness: iterationFitness,
		IterationBestBitsSet: iterationBits,
	}
}

// State returns the lifecycle position of the solver
func (s *SubsetSolver[G]) State() State {
	return s.engine.state
}

// Generation returns the number of generations run since the last Reset
func (s *SubsetSolver[G]) Generation() int {
	return s.engine.generation
}

// Values returns a copy of the set in gene order
func (s *SubsetSolver[G]) Values() []decimal.Decimal {
	return slices.Clone(s.values)
}

// Population returns the current generation, sorted by fitness after each Step
// The returned individuals are live buffers and are overwritten by the next Step
func (s *SubsetSolver[G]) Population() []*Individual[G] {
	return s.engine.current
}

// --- problem binding ---

func (s *SubsetSolver[G]) newCandidate() *Individual[G] {
	return NewIndividual(s.newGenes(len(s.values)))
}

func (s *SubsetSolver[G]) geneLength() int {
	return len(s.values)
}

func (s *SubsetSolver[G]) seed(ind *Individual[G], rng *rand.Rand) {
	s.seeder(ind.Genes, &s.params, rng)
}

func (s *SubsetSolver[G]) blank(ind *Individual[G]) {
	ind.Genes.SetAll(false)
}

func (s *SubsetSolver[G]) evaluate(ind *Individual[G]) {
	ind.Fitness, ind.BitsSet = subsetFitness(ind.Genes, s.values, s.target)
}

func (s *SubsetSolver[G]) mutate(ind *Individual[G], rng *rand.Rand) {
	ind.Genes.Flip(rng.IntN(len(s.values)))
}

func (s *SubsetSolver[G]) fitness(ind *Individual[G]) decimal.Decimal {
	return ind.Fitness
}

func (s *SubsetSolver[G]) bitsSet(ind *Individual[G]) int {
	return ind.BitsSet
}

func (s *SubsetSolver[G]) record(ind *Individual[G]) {
	s.best = selectedValues(ind.Genes, s.values)
}

func (s *SubsetSolver[G]) clearBest() {
	s.best = nil
}
