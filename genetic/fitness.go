package genetic

import "github.com/shopspring/decimal"

// subsetFitness returns |target - sum(selected)| and the selected count
// An empty selection is infeasible and scores MaxFitness
func subsetFitness(genes Selector, values []decimal.Decimal, target decimal.Decimal) (decimal.Decimal, int) {
	remaining := target
	count := 0
	for i, v := range values {
		if genes.Get(i) {
			remaining = remaining.Sub(v)
			count++
		}
	}
	if count == 0 {
		return MaxFitness, 0
	}
	return remaining.Abs(), count
}

// balanceFitness returns |sum(first selected) - sum(second selected)| and the selected count of each side
// Both sides must select at least one element to be feasible
func balanceFitness(first, second Selector, firstValues, secondValues []decimal.Decimal) (decimal.Decimal, int, int) {
	diff := decimal.Zero
	count1, count2 := 0, 0
	for i, v := range firstValues {
		if first.Get(i) {
			diff = diff.Add(v)
			count1++
		}
	}
	for i, v := range secondValues {
		if second.Get(i) {
			diff = diff.Sub(v)
			count2++
		}
	}
	if count1 == 0 || count2 == 0 {
		return MaxFitness, count1, count2
	}
	return diff.Abs(), count1, count2
}

// sum adds every value in the slice
func sum(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// selectedValues copies out the values at selected positions
func selectedValues(genes Selector, values []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, 0)
	for i, v := range values {
		if genes.Get(i) {
			out = append(out, v)
		}
	}
	return out
}
