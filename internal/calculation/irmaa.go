package calculation

import (
	"github.com/khoward/glidepath/internal/tables"
	"github.com/shopspring/decimal"
)

// IRMAAResult breaks an IRMAA determination into its annual Part B and
// Part D dollar components.
type IRMAAResult struct {
	PartB decimal.Decimal
	PartD decimal.Decimal
	Total decimal.Decimal
}

// IRMAA determines the annual Medicare premium surcharge for a household.
// The applicable tier is the highest one whose threshold is strictly
// exceeded by MAGI, falling back to the base tier; monthly Part B and
// Part D premiums are annualized and multiplied by the number of people
// on Medicare. The MAGI passed in must be the value from two years prior
// to the premium year; carrying that lookback is the caller's job.
func IRMAA(magi decimal.Decimal, table tables.IRMAATable, numberOfPeople int) IRMAAResult {
	if numberOfPeople <= 0 || len(table.Tiers) == 0 {
		return IRMAAResult{PartB: decimal.Zero, PartD: decimal.Zero, Total: decimal.Zero}
	}

	selected := table.Tiers[0]
	for _, tier := range table.Tiers[1:] {
		if magi.GreaterThan(tier.Threshold) {
			selected = tier
		}
	}

	people := decimal.NewFromInt(int64(numberOfPeople))
	partB := selected.PartBMonthly.Mul(decimalTwelve).Mul(people)
	partD := selected.PartDMonthly.Mul(decimalTwelve).Mul(people)

	return IRMAAResult{PartB: partB, PartD: partD, Total: partB.Add(partD)}
}
