package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/subsetsum/dataset"
	"github.com/lixenwraith/subsetsum/driver"
	"github.com/lixenwraith/subsetsum/genetic"
	"github.com/lixenwraith/subsetsum/report"
)

func newBalanceCmd(a *app) *cobra.Command {
	var (
		firstPath  string
		secondPath string
		count      int
	)

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Select a subset of each of two sets so that their sums match",
		Long: `Balance selects values from two sets so that the sums of both selections are as close as possible.
Sets come from --first and --second (JSON arrays) or are drawn from the built-in set without shared values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if firstPath == "" && secondPath == "" {
				firstPath, secondPath = a.cfg.Balance.FirstSetPath, a.cfg.Balance.SecondSetPath
			}
			if (firstPath == "") != (secondPath == "") {
				return errors.New("--first and --second must be given together")
			}
			if !cmd.Flags().Changed("count") {
				count = a.cfg.Balance.Count
			}
			return a.runBalance(cmd, firstPath, secondPath, count)
		},
	}

	cmd.Flags().StringVar(&firstPath, "first", "", "JSON array of first-set values")
	cmd.Flags().StringVar(&secondPath, "second", "", "JSON array of second-set values")
	cmd.Flags().IntVar(&count, "count", 0, "values per side drawn from the built-in set")
	return cmd
}

func (a *app) runBalance(cmd *cobra.Command, firstPath, secondPath string, count int) error {
	rng := a.cfg.Random()

	var first, second []decimal.Decimal
	var err error
	if firstPath != "" {
		if first, err = dataset.LoadFile(firstPath); err != nil {
			return err
		}
		if second, err = dataset.LoadFile(secondPath); err != nil {
			return err
		}
	} else {
		values, err := dataset.Embedded().Values()
		if err != nil {
			return err
		}
		if first, second, err = dataset.TakeNWithoutIntersection(values, count, rng); err != nil {
			return err
		}
	}

	opts, err := a.cfg.BalanceOptions(rng, first, second, a.log)
	if err != nil {
		return err
	}
	solver, err := genetic.NewBalanceSolver(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	result, err := a.drive(cmd.Context(), out, "balance", driver.Balance(solver))
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	report.New(out).Balance(result.Outcome, result.Elapsed)
	if err != nil {
		fmt.Fprintln(out, "interrupted")
	}
	return a.save("balance", result, decimal.Zero)
}
