package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/subsetsum/benchmark"
	"github.com/lixenwraith/subsetsum/persistence"
	"github.com/lixenwraith/subsetsum/report"
	"github.com/lixenwraith/subsetsum/status"
)

func newBenchCmd(a *app) *cobra.Command {
	var (
		setPath     string
		metricsPath string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run many independent solver instances and summarize them",
		Long: `Bench repeats solver runs on sets drawn from the built-in set (or --set),
running up to --parallelism instances at a time. Mode is one of subset, subset128 or balance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			bench := &a.cfg.Bench
			if flags.Changed("mode") {
				bench.Mode, _ = flags.GetString("mode")
			}
			if flags.Changed("runs") {
				bench.Runs, _ = flags.GetInt("runs")
			}
			if flags.Changed("parallelism") {
				bench.Parallelism, _ = flags.GetInt("parallelism")
			}
			if flags.Changed("set-size") {
				bench.SetSize, _ = flags.GetInt("set-size")
			}
			if flags.Changed("inverse-mutation") {
				bench.InverseMutation, _ = flags.GetBool("inverse-mutation")
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			if setPath == "" {
				setPath = a.cfg.Subset.SetPath
			}
			return a.runBench(cmd, setPath, metricsPath)
		},
	}

	cmd.Flags().StringVar(&setPath, "set", "", "JSON array to draw values from")
	cmd.Flags().String("mode", "", "subset, subset128 or balance (overrides config)")
	cmd.Flags().Int("runs", 0, "number of runs (overrides config)")
	cmd.Flags().Int("parallelism", 0, "concurrent runs (overrides config)")
	cmd.Flags().Int("set-size", 0, "values per run (overrides config)")
	cmd.Flags().Bool("inverse-mutation", false, "use 1/generation-size as mutation chance")
	cmd.Flags().StringVar(&metricsPath, "metrics", "", "write Prometheus text metrics to a file, - for stdout")
	return cmd
}

func (a *app) runBench(cmd *cobra.Command, setPath, metricsPath string) error {
	registry := status.NewRegistry()
	runner := benchmark.NewRunner(a.cfg, a.provider(setPath), registry, a.log)

	var result *benchmark.Report
	run := func(ctx context.Context) error {
		var err error
		result, err = runner.Run(ctx)
		return err
	}

	var err error
	if a.monitor {
		err = withMonitor(cmd.Context(), registry, "subsetsum bench", run)
	} else {
		err = run(cmd.Context())
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report.New(out).Bench(result)

	if metricsPath != "" {
		if err := writeMetrics(runner.Metrics(), metricsPath, out); err != nil {
			return err
		}
	}

	if a.savePath != "" {
		name := "bench-" + result.ID.String()
		if err := persistence.NewManager(a.savePath).SaveReport(name, persistence.FromReport(result)); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
	}
	return nil
}

func writeMetrics(m *benchmark.Metrics, path string, stdout io.Writer) error {
	if path == "-" {
		return m.WriteText(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	defer f.Close()

	if err := m.WriteText(f); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}
