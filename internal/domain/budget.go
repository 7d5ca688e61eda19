package domain

import "math"

// Band is the inclusive USD range attached to a BudgetRange.
type Band struct {
	Min int
	Max int
}

var budgetBands = map[BudgetRange]Band{
	BudgetEconomy:  {Min: 500, Max: 1000},
	BudgetStandard: {Min: 1000, Max: 2000},
	BudgetComfort:  {Min: 2000, Max: 3500},
	BudgetLuxury:   {Min: 3500, Max: 6000},
}

// BandFor returns the band for r. ok is false for unknown ranges.
func BandFor(r BudgetRange) (Band, bool) {
	b, ok := budgetBands[r]
	return b, ok
}

// Midpoint returns the band midpoint rounded to the nearest dollar.
func (b Band) Midpoint() int {
	return int(math.Round(float64(b.Min+b.Max) / 2))
}

// Clamp pins amount into [Min, Max].
func (b Band) Clamp(amount int) int {
	if amount < b.Min {
		return b.Min
	}
	if amount > b.Max {
		return b.Max
	}
	return amount
}

// Contains reports whether amount lies inside the band.
func (b Band) Contains(amount int) bool {
	return amount >= b.Min && amount <= b.Max
}

// BudgetLine is one category of the indicative per-person budget split.
type BudgetLine struct {
	Category string
	Percent  int
	Amount   int
}

var budgetSplit = []struct {
	category string
	percent  int
}{
	{"Accommodation", 30},
	{"Meals", 20},
	{"Guide & porter", 25},
	{"Transport", 15},
	{"Permits & misc", 10},
}

// BudgetBreakdown splits amount across the fixed categories. Rounding
// leftovers go to the last line so the amounts always sum to amount.
func BudgetBreakdown(amount int) []BudgetLine {
	lines := make([]BudgetLine, 0, len(budgetSplit))
	allocated := 0
	for i, s := range budgetSplit {
		share := int(math.Round(float64(amount) * float64(s.percent) / 100))
		if i == len(budgetSplit)-1 {
			share = amount - allocated
		}
		allocated += share
		lines = append(lines, BudgetLine{Category: s.category, Percent: s.percent, Amount: share})
	}
	return lines
}
