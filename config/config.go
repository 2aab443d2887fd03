// Package config loads the driver configuration from YAML, applies defaults
// and converts it into solver options.
package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/subsetsum/genetic"
	"github.com/lixenwraith/subsetsum/parameter"
)

// Bench modes
const (
	ModeSubset    = "subset"
	ModeSubset128 = "subset128"
	ModeBalance   = "balance"
)

// Config is the root of the driver configuration file
type Config struct {
	// Seed fixes the pseudorandom stream; nil draws a fresh seed per process
	Seed    *uint64       `yaml:"seed,omitempty"`
	Solver  SolverConfig  `yaml:"solver"`
	Subset  SubsetConfig  `yaml:"subset"`
	Balance BalanceConfig `yaml:"balance"`
	Bench   BenchConfig   `yaml:"bench"`
}

// SolverConfig holds the options shared by both solver variants
type SolverConfig struct {
	FitnessThreshold    Amount        `yaml:"fitness_threshold" validate:"gte=0"`
	GenerationSize      int           `yaml:"generation_size" validate:"gt=0,even"`
	MutationChance      float64       `yaml:"mutation_chance" validate:"gt=0,lte=1"`
	GenerationsMaxCount int           `yaml:"generations_max_count" validate:"gt=0"`
	Timeout             time.Duration `yaml:"timeout" validate:"gte=0"`
	Ordering            string        `yaml:"ordering" validate:"ordering"`
}

// SubsetConfig describes a single-set run
// A zero SubsetSum is derived as Bench.MeanScale times the rounded set mean
type SubsetConfig struct {
	Seeding   string `yaml:"seeding" validate:"seeding"`
	SubsetSum Amount `yaml:"subset_sum" validate:"gte=0"`
	// SetPath is a JSON array of values; empty draws from the built-in set
	SetPath string `yaml:"set_path,omitempty"`
	// Packed selects the fixed 128-bit encoding
	Packed bool `yaml:"packed"`
}

// BalanceConfig describes a two-set run
type BalanceConfig struct {
	Seeding       string `yaml:"seeding" validate:"seeding"`
	FirstSetPath  string `yaml:"first_set_path,omitempty" validate:"required_with=SecondSetPath"`
	SecondSetPath string `yaml:"second_set_path,omitempty" validate:"required_with=FirstSetPath"`
	// Count is the per-side draw size when no paths are given
	Count int `yaml:"count" validate:"gt=0"`
}

// BenchConfig drives repeated independent runs
type BenchConfig struct {
	Mode        string `yaml:"mode" validate:"oneof=subset subset128 balance"`
	Runs        int    `yaml:"runs" validate:"gt=0"`
	Parallelism int    `yaml:"parallelism" validate:"gt=0"`
	SetSize     int    `yaml:"set_size" validate:"gt=0"`
	MeanScale   Amount `yaml:"mean_scale" validate:"gt=0"`
	// Disjoint draws the two sides of balance runs without shared values
	Disjoint bool `yaml:"disjoint"`
	// InverseMutation overrides the mutation chance with 1/generation_size
	InverseMutation bool `yaml:"inverse_mutation"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterCustomTypeFunc(amountValue, Amount{})
	_ = validate.RegisterValidation("even", validateEven)
	_ = validate.RegisterValidation("seeding", validateSeeding)
	_ = validate.RegisterValidation("ordering", validateOrdering)
}

func validateEven(fl validator.FieldLevel) bool {
	return fl.Field().Int()%2 == 0
}

func validateSeeding(fl validator.FieldLevel) bool {
	_, err := genetic.ParseSeeding(fl.Field().String())
	return err == nil
}

func validateOrdering(fl validator.FieldLevel) bool {
	_, err := genetic.ParseOrdering(fl.Field().String())
	return err == nil
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Solver: SolverConfig{
			FitnessThreshold:    NewAmount(parameter.GAFitnessThreshold),
			GenerationSize:      parameter.GAGenerationSize,
			MutationChance:      parameter.GAMutationChance,
			GenerationsMaxCount: parameter.GAGenerationsMaxCount,
			Timeout:             parameter.GATimeout,
			Ordering:            parameter.GAOrdering,
		},
		Subset: SubsetConfig{
			Seeding: parameter.GASeeding,
		},
		Balance: BalanceConfig{
			Seeding: parameter.GABalanceSeeding,
			Count:   parameter.BenchSetSize / 2,
		},
		Bench: BenchConfig{
			Mode:        ModeSubset,
			Runs:        parameter.BenchRuns,
			Parallelism: parameter.BenchParallelism,
			SetSize:     parameter.BenchSetSize,
			MeanScale:   NewAmount(fmt.Sprint(parameter.BenchMeanScale)),
			Disjoint:    true,
		},
	}
}

// Load reads path over the defaults and validates the result
// An empty path yields the validated defaults
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		// Report the first violation by its YAML-facing path
		fe := fieldErrs[0]
		return fmt.Errorf("%s: failed %q (value %v)", fe.Namespace(), fe.ActualTag(), fe.Value())
	}
	return err
}

// Random builds the pseudorandom source, seeded from Seed when present
func (c *Config) Random() *rand.Rand {
	if c.Seed != nil {
		return rand.New(rand.NewPCG(*c.Seed, *c.Seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// RunOptions converts the shared section; seeding is parsed from the variant section
func (c *Config) RunOptions(rng *rand.Rand, seeding string, logger *zap.Logger) (genetic.RunOptions, error) {
	s, err := genetic.ParseSeeding(seeding)
	if err != nil {
		return genetic.RunOptions{}, err
	}
	o, err := genetic.ParseOrdering(c.Solver.Ordering)
	if err != nil {
		return genetic.RunOptions{}, err
	}

	return genetic.RunOptions{
		Random:              rng,
		FitnessThreshold:    c.Solver.FitnessThreshold.Decimal,
		GenerationSize:      c.Solver.GenerationSize,
		MutationChance:      c.Solver.MutationChance,
		GenerationsMaxCount: c.Solver.GenerationsMaxCount,
		Timeout:             c.Solver.Timeout,
		Seeding:             s,
		Ordering:            o,
		Logger:              logger,
	}, nil
}

// SubsetOptions builds single-set solver options for set and target
func (c *Config) SubsetOptions(rng *rand.Rand, set []decimal.Decimal, target decimal.Decimal, logger *zap.Logger) (genetic.SubsetOptions, error) {
	run, err := c.RunOptions(rng, c.Subset.Seeding, logger)
	if err != nil {
		return genetic.SubsetOptions{}, err
	}
	return genetic.SubsetOptions{
		RunOptions: run,
		Set:        set,
		SubsetSum:  target,
	}, nil
}

// BalanceOptions builds two-set solver options
func (c *Config) BalanceOptions(rng *rand.Rand, first, second []decimal.Decimal, logger *zap.Logger) (genetic.BalanceOptions, error) {
	run, err := c.RunOptions(rng, c.Balance.Seeding, logger)
	if err != nil {
		return genetic.BalanceOptions{}, err
	}
	return genetic.BalanceOptions{
		RunOptions: run,
		FirstSet:   first,
		SecondSet:  second,
	}, nil
}
