package genetic

import (
	"math/rand/v2"
	"slices"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BalanceSolver searches two sets for subsets whose sums are closest to each other
type BalanceSolver struct {
	engine *engine[*PairedIndividual]

	first  []decimal.Decimal
	second []decimal.Decimal
	// firstShare is the probability that a mutation lands in the first side
	firstShare float64
	seeder     BalanceSeedFunc
	params     *BalanceSeedParams

	bestFirst  []decimal.Decimal
	bestSecond []decimal.Decimal
}

// NewBalanceSolver creates a two-set solver
func NewBalanceSolver(opts BalanceOptions) (*BalanceSolver, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	order, _ := Orderer(opts.Ordering)
	seeder, _ := BalanceSeeder(opts.Seeding)
	first := order(opts.FirstSet, opts.Random)
	second := order(opts.SecondSet, opts.Random)

	s := &BalanceSolver{
		first:      first,
		second:     second,
		firstShare: float64(len(first)) / float64(len(first)+len(second)),
		seeder:     seeder,
		params:     NewBalanceSeedParams(first, second),
	}
	s.engine = newEngine[*PairedIndividual](s, &opts.RunOptions)

	s.engine.log.Info("balance solver created",
		zap.Int("first_size", len(first)),
		zap.Int("second_size", len(second)),
		zap.Stringer("seeding", opts.Seeding),
		zap.Stringer("ordering", opts.Ordering),
		zap.Int("generation_size", opts.GenerationSize))

	s.Reset()
	return s, nil
}

// Reset re-seeds the population, clears the best solution and restarts the timeout clock
func (s *BalanceSolver) Reset() {
	s.engine.reset()
}

// Step runs one generation and reports progress
func (s *BalanceSolver) Step() BalanceResult {
	completed := s.engine.step()
	iterationFitness, iterationBits := s.engine.iterationBest()

	return BalanceResult{
		IsCompleted:          completed,
		IsThresholdSatisfied: s.engine.thresholdSatisfied(),
		Generation:           s.engine.generation,
		BestFitness:          s.engine.bestFitness,
		BestFirst:            slices.Clone(s.bestFirst),
		BestSecond:           slices.Clone(s.bestSecond),
		IterationBestFitness: iterationFitness,
		IterationBestBitsSet: iterationBits,
	}
}

// State returns the lifecycle position of the solver
func (s *BalanceSolver) State() State {
	return s.engine.state
}

// Generation returns the number of generations run since the last Reset
func (s *BalanceSolver) Generation() int {
	return s.engine.generation
}

// Values returns copies of both sets in gene order
func (s *BalanceSolver) Values() ([]decimal.Decimal, []decimal.Decimal) {
	return slices.Clone(s.first), slices.Clone(s.second)
}

// Population returns the live current generation
func (s *BalanceSolver) Population() []*PairedIndividual {
	return s.engine.current
}

// --- problem binding ---

func (s *BalanceSolver) newCandidate() *PairedIndividual {
	return NewPairedIndividual(len(s.first), len(s.second))
}

func (s *BalanceSolver) geneLength() int {
	return len(s.first) + len(s.second)
}

func (s *BalanceSolver) seed(p *PairedIndividual, rng *rand.Rand) {
	s.seeder(p.First.Genes, p.Second.Genes, s.params, rng)
}

func (s *BalanceSolver) blank(p *PairedIndividual) {
	p.SetAll(false)
}

func (s *BalanceSolver) evaluate(p *PairedIndividual) {
	fitness, count1, count2 := balanceFitness(p.First.Genes, p.Second.Genes, s.first, s.second)
	p.Fitness = fitness
	p.First.Fitness = fitness
	p.Second.Fitness = fitness
	p.First.BitsSet = count1
	p.Second.BitsSet = count2
	p.TotalBitsSet = count1 + count2
}

// mutate picks a side proportionally to its share of the combined length, then a position within it
func (s *BalanceSolver) mutate(p *PairedIndividual, rng *rand.Rand) {
	if chance(rng, s.firstShare) {
		p.First.Genes.Flip(rng.IntN(len(s.first)))
		return
	}
	p.Second.Genes.Flip(rng.IntN(len(s.second)))
}

func (s *BalanceSolver) fitness(p *PairedIndividual) decimal.Decimal {
	return p.Fitness
}

func (s *BalanceSolver) bitsSet(p *PairedIndividual) int {
	return p.TotalBitsSet
}

func (s *BalanceSolver) record(p *PairedIndividual) {
	s.bestFirst = selectedValues(p.First.Genes, s.first)
	s.bestSecond = selectedValues(p.Second.Genes, s.second)
}

func (s *BalanceSolver) clearBest() {
	s.bestFirst = nil
	s.bestSecond = nil
}
