package parameter

import "time"

// Genetic Algorithm - Solver Defaults
const (
	// GAGenerationSize is the number of candidates per generation, must be even
	GAGenerationSize = 200

	// GAMutationChance is the per-candidate probability of a single bit flip
	GAMutationChance = 0.2

	// GAGenerationsMaxCount caps a single run
	GAGenerationsMaxCount = 100_000

	// GATimeout caps wall-clock time for a single run
	GATimeout = 30 * time.Second

	// GAFitnessThreshold is the default acceptable distance from the target
	GAFitnessThreshold = "0"

	// GASeeding and GAOrdering name the default policies
	GASeeding  = "RandomSumUntilExceeding"
	GAOrdering = "Increasing"

	// GABalanceSeeding is the default policy for two-set runs
	GABalanceSeeding = "RandomSumUntilExceedingMinHalfSum"
)

// Benchmark Configuration
const (
	// BenchRuns is the number of independent solver runs per benchmark
	BenchRuns = 20

	// BenchParallelism bounds concurrently running solver instances
	BenchParallelism = 4

	// BenchSetSize is the number of values drawn per run
	BenchSetSize = 128

	// BenchMeanScale multiplies the dataset mean to derive the subset sum
	BenchMeanScale = 5
)

// Driver Output
const (
	// ProgressEvery prints one progress line per N generations
	ProgressEvery = 1

	// MonitorRefresh is the redraw interval of the live progress view
	MonitorRefresh = 100 * time.Millisecond

	// LogDir and LogFileName locate the debug log
	LogDir      = "logs"
	LogFileName = "subsetsum.log"

	// MaxLogSize rotates the debug log once exceeded
	MaxLogSize = 10 * 1024 * 1024
)
