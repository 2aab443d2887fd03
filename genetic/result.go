package genetic

import "github.com/shopspring/decimal"

// SubsetResult reports one single-set Step
// BestSolution is a private copy; callers may keep or modify it
type SubsetResult struct {
	IsCompleted          bool
	IsThresholdSatisfied bool
	Generation           int
	BestFitness          decimal.Decimal
	BestSolution         []decimal.Decimal
	IterationBestFitness decimal.Decimal
	IterationBestBitsSet int
}

// BalanceResult reports one two-set Step
type BalanceResult struct {
	IsCompleted          bool
	IsThresholdSatisfied bool
	Generation           int
	BestFitness          decimal.Decimal
	BestFirst            []decimal.Decimal
	BestSecond           []decimal.Decimal
	IterationBestFitness decimal.Decimal
	IterationBestBitsSet int
}
