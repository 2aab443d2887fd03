package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/subsetsum/config"
	"github.com/lixenwraith/subsetsum/dataset"
	"github.com/lixenwraith/subsetsum/driver"
	"github.com/lixenwraith/subsetsum/genetic"
	"github.com/lixenwraith/subsetsum/report"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		setPath string
		target  string
		packed  bool
		size    int
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find a subset whose sum is as close as possible to a target",
		Long: `Solve selects values from one set so that their sum approaches the target.
Values come from --set (a JSON array) or are drawn from the built-in set.
Without --target the target is mean_scale times the rounded set mean.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if setPath == "" {
				setPath = a.cfg.Subset.SetPath
			}
			if !cmd.Flags().Changed("size") {
				size = a.cfg.Bench.SetSize
			}
			return a.runSolve(cmd, setPath, target, packed || a.cfg.Subset.Packed, size)
		},
	}

	cmd.Flags().StringVar(&setPath, "set", "", "JSON array of values")
	cmd.Flags().StringVar(&target, "target", "", "subset sum to approach")
	cmd.Flags().BoolVar(&packed, "packed", false, "use the fixed 128-bit encoding")
	cmd.Flags().IntVar(&size, "size", 0, "values drawn from the built-in set when --set is absent")
	return cmd
}

func (a *app) runSolve(cmd *cobra.Command, setPath, targetFlag string, packed bool, size int) error {
	provider := a.provider(setPath)
	values, err := provider.Values()
	if err != nil {
		return err
	}

	target := a.cfg.Subset.SubsetSum.Decimal
	if targetFlag != "" {
		var amount config.Amount
		if err := amount.UnmarshalText([]byte(targetFlag)); err != nil {
			return err
		}
		target = amount.Decimal
	}
	if target.IsZero() {
		mean, err := provider.Mean()
		if err != nil {
			return err
		}
		target = a.cfg.Bench.MeanScale.Mul(mean)
	}

	rng := a.cfg.Random()
	if setPath == "" {
		if values, err = dataset.TakeN(values, size, rng, dataset.AtMost(target)); err != nil {
			return err
		}
	}

	opts, err := a.cfg.SubsetOptions(rng, values, target, a.log)
	if err != nil {
		return err
	}
	step, err := subsetStepper(opts, packed)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	result, err := a.drive(cmd.Context(), out, "solve", step)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	report.New(out).Subset(result.Outcome, target, result.Elapsed)
	if err != nil {
		fmt.Fprintln(out, "interrupted")
	}
	return a.save("solve", result, target)
}

func subsetStepper(opts genetic.SubsetOptions, packed bool) (driver.Stepper, error) {
	if packed {
		solver, err := genetic.NewSubsetSolver128(opts)
		if err != nil {
			return nil, err
		}
		return driver.Subset(solver), nil
	}

	solver, err := genetic.NewSubsetSolver(opts)
	if err != nil {
		return nil, err
	}
	return driver.Subset(solver), nil
}
