package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSummaryEmpty(t *testing.T) {
	summary := CalculateSummary(nil)
	assert.Equal(t, 0, summary.Years)
	assert.True(t, summary.TotalTax.IsZero())
	assert.Equal(t, 0, summary.DepletionYear)
}

func TestCalculateSummaryAggregates(t *testing.T) {
	engine := NewProjectionEngine()
	records, err := engine.GenerateProjections(baseParams())
	require.NoError(t, err)

	summary := CalculateSummary(records)

	assert.Equal(t, 5, summary.Years)
	assert.Equal(t, 2026, summary.FirstYear)
	assert.Equal(t, 2030, summary.LastYear)

	var tax, irmaa, expenses, withdrawals decimal.Decimal
	for _, rec := range records {
		tax = tax.Add(rec.TotalTax)
		irmaa = irmaa.Add(rec.IRMAATotal)
		expenses = expenses.Add(rec.Expenses)
		withdrawals = withdrawals.Add(rec.Withdrawals.Total())
	}
	assert.True(t, summary.TotalTax.Equal(tax))
	assert.True(t, summary.TotalIRMAA.Equal(irmaa))
	assert.True(t, summary.TotalExpenses.Equal(expenses))
	assert.True(t, summary.TotalWithdrawals.Equal(withdrawals))
	assert.True(t, summary.TotalConversions.IsZero())

	last := records[len(records)-1]
	assert.True(t, summary.FinalBalances.Total().Equal(last.EndingBalances.Total()))
	assert.True(t, summary.FinalHeirNominal.Equal(last.HeirValueNominal))
	assert.True(t, summary.FinalHeirPV.Equal(last.HeirValuePV))

	assert.True(t, summary.PeakBalance.GreaterThan(decimal.Zero))
	assert.Empty(t, summary.ShortfallYears)
	assert.Equal(t, 0, summary.DepletionYear)
}

func TestCalculateSummaryDepletion(t *testing.T) {
	params := baseParams()
	params.EndYear = params.StartYear + 1
	params.AfterTaxBalance = decimal.NewFromInt(10000)
	params.AfterTaxBasis = decimal.NewFromInt(10000)
	params.IRABalance = decimal.Zero
	params.RothBalance = decimal.NewFromInt(5000)
	params.SocialSecurity.MonthlyBenefit = decimal.Zero
	params.Expenses.BaseAnnual = decimal.NewFromInt(100000)

	engine := NewProjectionEngine()
	records, err := engine.GenerateProjections(params)
	require.NoError(t, err)

	summary := CalculateSummary(records)
	assert.Equal(t, 2026, summary.DepletionYear, "depletion pins to the first empty year")
	assert.Equal(t, []int{2026, 2027}, summary.ShortfallYears)
	assert.True(t, summary.TotalShortfall.GreaterThan(decimal.Zero))
}
