package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/subsetsum/genetic"
	"github.com/lixenwraith/subsetsum/parameter"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, parameter.GAGenerationSize, cfg.Solver.GenerationSize)
	assert.Equal(t, parameter.GATimeout, cfg.Solver.Timeout)
	assert.Equal(t, parameter.GASeeding, cfg.Subset.Seeding)
	assert.Equal(t, parameter.GABalanceSeeding, cfg.Balance.Seeding)
	assert.True(t, cfg.Solver.FitnessThreshold.IsZero())
	assert.Nil(t, cfg.Seed)
}

func TestLoad_OverridesFromYAML(t *testing.T) {
	path := writeConfig(t, `
seed: 42
solver:
  fitness_threshold: "0.10"
  generation_size: 50
  mutation_chance: 0.05
  timeout: 5s
  ordering: Hump
subset:
  seeding: RandomSubArraySumUntilExceeding
  subset_sum: 2478.10
  packed: true
bench:
  mode: balance
  runs: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(42), *cfg.Seed)
	assert.Equal(t, "0.1", cfg.Solver.FitnessThreshold.String())
	assert.Equal(t, 50, cfg.Solver.GenerationSize)
	assert.Equal(t, 5*time.Second, cfg.Solver.Timeout)
	assert.Equal(t, "Hump", cfg.Solver.Ordering)
	assert.Equal(t, "2478.1", cfg.Subset.SubsetSum.String())
	assert.True(t, cfg.Subset.Packed)
	assert.Equal(t, ModeBalance, cfg.Bench.Mode)
	assert.Equal(t, 3, cfg.Bench.Runs)

	// Untouched fields keep their defaults
	assert.Equal(t, parameter.GAGenerationsMaxCount, cfg.Solver.GenerationsMaxCount)
	assert.Equal(t, parameter.BenchParallelism, cfg.Bench.Parallelism)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"odd generation", "solver:\n  generation_size: 7\n", "even"},
		{"zero mutation", "solver:\n  mutation_chance: 0\n", "gt"},
		{"unknown ordering", "solver:\n  ordering: Sideways\n", "ordering"},
		{"unknown seeding", "subset:\n  seeding: Lucky\n", "seeding"},
		{"negative threshold", "solver:\n  fitness_threshold: -1\n", "gte"},
		{"unknown mode", "bench:\n  mode: fast\n", "oneof"},
		{"half a pair", "balance:\n  first_set_path: a.json\n", "required_with"},
		{"unknown field", "solver:\n  population: 10\n", "population"},
		{"malformed amount", "subset:\n  subset_sum: ten\n", "invalid amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_SubsetOptions(t *testing.T) {
	seed := uint64(7)
	cfg := Default()
	cfg.Seed = &seed
	cfg.Solver.Ordering = "Random"

	set := []decimal.Decimal{decimal.NewFromInt(3), decimal.NewFromInt(4)}
	opts, err := cfg.SubsetOptions(cfg.Random(), set, decimal.NewFromInt(7), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, genetic.RandomSumUntilExceeding, opts.Seeding)
	assert.Equal(t, genetic.RandomOrder, opts.Ordering)
	assert.Equal(t, "7", opts.SubsetSum.String())
	assert.NotNil(t, opts.Random)

	solver, err := genetic.NewSubsetSolver(opts)
	require.NoError(t, err)
	assert.Equal(t, genetic.StateReady, solver.State())
}

func TestConfig_BalanceOptions(t *testing.T) {
	cfg := Default()
	first := []decimal.Decimal{decimal.NewFromInt(1)}
	second := []decimal.Decimal{decimal.NewFromInt(1)}

	opts, err := cfg.BalanceOptions(cfg.Random(), first, second, nil)
	require.NoError(t, err)
	assert.Equal(t, genetic.RandomSumUntilExceedingMinHalfSum, opts.Seeding)

	// Seedings valid for one variant only surface at solver construction
	cfg.Balance.Seeding = "RandomSumUntilExceeding"
	opts, err = cfg.BalanceOptions(cfg.Random(), first, second, nil)
	require.NoError(t, err)
	_, err = genetic.NewBalanceSolver(opts)
	require.ErrorIs(t, err, genetic.ErrInvalidOptions)
}

func TestConfig_SeededRandomIsReproducible(t *testing.T) {
	seed := uint64(99)
	cfg := Config{Seed: &seed}
	assert.Equal(t, cfg.Random().Uint64(), cfg.Random().Uint64())
}

func TestAmount_MarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Subset.SubsetSum = NewAmount("12.50")

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), `subset_sum: "12.5"`)

	var back Config
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.True(t, back.Subset.SubsetSum.Equal(cfg.Subset.SubsetSum.Decimal))
}
