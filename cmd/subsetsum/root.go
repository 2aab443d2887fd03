package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/subsetsum/config"
	"github.com/lixenwraith/subsetsum/dataset"
)

// app carries state shared by all subcommands
type app struct {
	configPath     string
	debug          bool
	seed           uint64
	generationSize int
	maxGenerations int
	timeout        time.Duration
	threshold      string
	monitor        bool
	quiet          bool
	savePath       string

	cfg     config.Config
	log     *zap.Logger
	logFile *os.File
}

// execute runs the CLI with args, writing command output to out
func execute(ctx context.Context, args []string, out io.Writer) error {
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(out)
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "subsetsum",
		Short:         "Genetic-algorithm solver for subset-sum and two-set balancing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	flags.BoolVar(&a.debug, "debug", false, "write debug logs under the logs directory")
	flags.Uint64Var(&a.seed, "seed", 0, "pseudorandom seed (overrides config)")
	flags.IntVar(&a.generationSize, "generation-size", 0, "candidates per generation (overrides config)")
	flags.IntVar(&a.maxGenerations, "generations", 0, "generation budget (overrides config)")
	flags.DurationVar(&a.timeout, "timeout", 0, "wall-clock budget, 0 disables (overrides config)")
	flags.StringVar(&a.threshold, "threshold", "", "acceptable fitness (overrides config)")
	flags.BoolVar(&a.monitor, "monitor", false, "show a live progress view instead of progress lines")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress per-generation progress lines")
	flags.StringVar(&a.savePath, "save", "", "directory receiving JSON records of finished runs")

	root.AddCommand(newSolveCmd(a), newBalanceCmd(a), newBenchCmd(a))
	return root
}

// init loads configuration, applies flag overrides and sets up logging
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = &a.seed
	}
	if flags.Changed("generation-size") {
		cfg.Solver.GenerationSize = a.generationSize
	}
	if flags.Changed("generations") {
		cfg.Solver.GenerationsMaxCount = a.maxGenerations
	}
	if flags.Changed("timeout") {
		cfg.Solver.Timeout = a.timeout
	}
	if flags.Changed("threshold") {
		var amount config.Amount
		if err := amount.UnmarshalText([]byte(a.threshold)); err != nil {
			return err
		}
		cfg.Solver.FitnessThreshold = amount
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	log, file, err := setupLogging(a.debug)
	if err != nil {
		return err
	}
	a.log, a.logFile = log, file

	a.log.Debug("configuration loaded",
		zap.String("path", a.configPath),
		zap.Int("generation_size", cfg.Solver.GenerationSize),
		zap.Int("generations_max_count", cfg.Solver.GenerationsMaxCount),
		zap.Duration("timeout", cfg.Solver.Timeout))
	return nil
}

func (a *app) close() {
	if a.log != nil {
		_ = a.log.Sync()
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// provider returns the value source: a JSON file when path is set, else the built-in set
func (a *app) provider(path string) *dataset.Provider {
	if path != "" {
		return dataset.FromFile(path)
	}
	return dataset.Embedded()
}
