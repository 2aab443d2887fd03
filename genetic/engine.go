package genetic

import (
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// --- Algorithm Engine ---

// candidate is the capability the loop needs from a population member
type candidate[C any] interface {
	comparable
	ranked[C]
	Splice(a, b C, cut int)
	CopyFrom(src C)
}

// problem binds a candidate encoding to its fitness, mutation and seeding rules
type problem[C any] interface {
	// newCandidate allocates one unevaluated member
	newCandidate() C
	// geneLength is the crossover span of one candidate
	geneLength() int
	// seed fills c with the configured policy, blank fills it with AllUnset
	seed(c C, rng *rand.Rand)
	blank(c C)
	// evaluate refreshes the cached fitness and selected count of c
	evaluate(c C)
	// mutate flips one random gene of c
	mutate(c C, rng *rand.Rand)
	fitness(c C) decimal.Decimal
	bitsSet(c C) int
	// record materializes c as the best-ever solution
	record(c C)
	clearBest()
}

// engine runs the generational protocol shared by every solver
// It owns two generation buffers and swaps their roles after each crossover pass
type engine[C candidate[C]] struct {
	problem problem[C]

	// Configuration
	rng                 *rand.Rand
	threshold           decimal.Decimal
	generationSize      int
	mutationChance      float64
	generationsMaxCount int
	timeout             time.Duration
	now                 func() time.Time
	log                 *zap.Logger

	// State
	state       State
	generation  int
	deadline    time.Time
	current     []C
	next        []C
	bestFitness decimal.Decimal
	bestBitsSet int
}

func newEngine[C candidate[C]](p problem[C], opts *RunOptions) *engine[C] {
	e := &engine[C]{
		problem:             p,
		rng:                 opts.Random,
		threshold:           opts.FitnessThreshold,
		generationSize:      opts.GenerationSize,
		mutationChance:      opts.MutationChance,
		generationsMaxCount: opts.GenerationsMaxCount,
		timeout:             opts.Timeout,
		now:                 opts.clock(),
		log:                 opts.logger(),
		current:             make([]C, opts.GenerationSize),
		next:                make([]C, opts.GenerationSize),
	}
	for i := range e.generationSize {
		e.current[i] = p.newCandidate()
		e.next[i] = p.newCandidate()
	}
	return e
}

// reset re-seeds both buffers, clears best tracking and restarts the clock
func (e *engine[C]) reset() {
	e.generation = 0
	e.deadline = time.Time{}
	if e.timeout > 0 {
		e.deadline = e.now().Add(e.timeout)
	}
	e.bestFitness = MaxFitness
	e.bestBitsSet = 0
	e.problem.clearBest()

	e.fill(e.current, e.problem.seed)
	e.fill(e.next, func(c C, _ *rand.Rand) { e.problem.blank(c) })

	e.state = StateReady
	e.log.Debug("generation seeded",
		zap.Int("generation_size", e.generationSize),
		zap.String("iteration_best_fitness", e.problem.fitness(e.current[0]).String()))
}

// fill applies a seeding policy to every member, evaluates and sorts the generation
func (e *engine[C]) fill(generation []C, seed func(C, *rand.Rand)) {
	for _, c := range generation {
		seed(c, e.rng)
		e.problem.evaluate(c)
	}
	sortGeneration(generation)
}

// step advances one generation and reports whether the run is complete
// Once complete it keeps returning true without touching the population
func (e *engine[C]) step() bool {
	if e.state == StateStopped || e.shouldStop() {
		e.stop()
		return true
	}

	e.state = StateRunning
	e.generation++

	e.crossover()
	e.mutation()
	e.updateBest()

	if e.shouldStop() {
		e.stop()
		return true
	}
	return false
}

// crossover recombines adjacent pairs into the next buffer, keeping the best two of parents and children
func (e *engine[C]) crossover() {
	length := e.problem.geneLength()

	for i := 0; i < e.generationSize; i += 2 {
		parent1, parent2 := e.current[i], e.current[i+1]
		child1, child2 := e.next[i], e.next[i+1]

		cut := cutPoint(e.rng, length)
		child1.Splice(parent1, parent2, cut)
		child2.Splice(parent2, parent1, cut)
		e.problem.evaluate(child1)
		e.problem.evaluate(child2)

		best1, best2 := bestTwo(parent1, parent2, child1, child2)
		child1Wins := best1 == child1 || best2 == child1
		child2Wins := best1 == child2 || best2 == child2

		switch {
		case child1Wins && child2Wins:
		case child1Wins:
			child2.CopyFrom(other(best1, best2, child1))
		case child2Wins:
			child1.CopyFrom(other(best1, best2, child2))
		default:
			child1.CopyFrom(best1)
			child2.CopyFrom(best2)
		}
	}

	e.current, e.next = e.next, e.current
}

// mutation flips one random gene of each member with probability mutationChance
func (e *engine[C]) mutation() {
	for _, c := range e.current {
		if chance(e.rng, e.mutationChance) {
			e.problem.mutate(c, e.rng)
			e.problem.evaluate(c)
		}
	}
}

// updateBest sorts the generation and records its head when it improves on the best-ever solution
// Equal fitness with more selected elements also counts as an improvement
func (e *engine[C]) updateBest() {
	sortGeneration(e.current)

	head := e.current[0]
	fitness := e.problem.fitness(head)
	bitsSet := e.problem.bitsSet(head)

	cmp := fitness.Cmp(e.bestFitness)
	if cmp > 0 || (cmp == 0 && bitsSet <= e.bestBitsSet) {
		return
	}

	e.bestFitness = fitness
	e.bestBitsSet = bitsSet
	e.problem.record(head)

	e.log.Debug("best solution improved",
		zap.Int("generation", e.generation),
		zap.String("fitness", fitness.String()),
		zap.Int("bits_set", bitsSet))
}

func (e *engine[C]) thresholdSatisfied() bool {
	return e.bestFitness.LessThanOrEqual(e.threshold)
}

func (e *engine[C]) timedOut() bool {
	return !e.deadline.IsZero() && e.now().After(e.deadline)
}

func (e *engine[C]) shouldStop() bool {
	return e.generation >= e.generationsMaxCount || e.timedOut() || e.thresholdSatisfied()
}

func (e *engine[C]) stop() {
	if e.state == StateStopped {
		return
	}
	e.state = StateStopped
	e.log.Info("run completed",
		zap.Int("generation", e.generation),
		zap.String("best_fitness", e.bestFitness.String()),
		zap.Bool("threshold_satisfied", e.thresholdSatisfied()))
}

// iterationBest returns the head of the current generation
func (e *engine[C]) iterationBest() (decimal.Decimal, int) {
	head := e.current[0]
	return e.problem.fitness(head), e.problem.bitsSet(head)
}

// other returns whichever of a, b is not skip
func other[C comparable](a, b, skip C) C {
	if a == skip {
		return b
	}
	return a
}
