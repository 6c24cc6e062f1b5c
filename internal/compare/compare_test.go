package compare

import (
	"context"
	"testing"

	"github.com/khoward/glidepath/internal/calculation"
	"github.com/khoward/glidepath/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compareBase() domain.ParameterSet {
	return domain.ParameterSet{
		StartYear:    2026,
		EndYear:      2030,
		BirthYear:    1964,
		FilingStatus: domain.FilingMarriedFilingJointly,

		AfterTaxBalance: decimal.NewFromInt(500000),
		AfterTaxBasis:   decimal.NewFromInt(400000),
		IRABalance:      decimal.NewFromInt(1000000),
		RothBalance:     decimal.NewFromInt(300000),

		Returns: domain.ReturnAssumptions{
			Mode: domain.ReturnModeFixed,
			Fixed: domain.FixedReturns{
				AfterTax: decimal.NewFromFloat(0.05),
				IRA:      decimal.NewFromFloat(0.06),
				Roth:     decimal.NewFromFloat(0.04),
			},
		},
		SocialSecurity: domain.SocialSecurityParams{
			MonthlyBenefit: decimal.NewFromInt(3000),
			COLARate:       decimal.NewFromFloat(0.02),
		},
		Expenses: domain.ExpenseParams{
			BaseAnnual:    decimal.NewFromInt(120000),
			InflationRate: decimal.NewFromFloat(0.025),
		},
		Taxes: domain.TaxParams{
			BracketInflationRate: decimal.NewFromFloat(0.02),
			CapitalGainsRatio:    decimal.NewFromFloat(0.5),
			SSExemptFromState:    true,
		},
		Calc: domain.CalcToggles{
			IterativeTax:  true,
			MaxIterations: 10,
			DiscountRate:  decimal.NewFromFloat(0.03),
		},
	}
}

func TestCompareScenarios(t *testing.T) {
	engine := NewEngine(calculation.NewProjectionEngine())

	conversion := domain.YearAmounts{2026: decimal.NewFromInt(200000)}
	lowSpend := decimal.NewFromInt(90000)
	overrides := map[string]domain.ParameterOverrides{
		"convert_200k": {RothConversions: conversion},
		"lean_budget": {Expenses: &domain.ExpenseParams{
			BaseAnnual:    lowSpend,
			InflationRate: decimal.NewFromFloat(0.025),
		}},
	}

	set, err := engine.CompareScenarios(context.Background(), compareBase(), overrides)
	require.NoError(t, err)

	assert.Equal(t, "base", set.Base.Name)
	require.Len(t, set.Alternatives, 2)
	assert.Equal(t, "convert_200k", set.Alternatives[0].Name, "alternatives sort by name")
	assert.Equal(t, "lean_budget", set.Alternatives[1].Name)

	// The conversion scenario pays more tax than the base.
	assert.True(t, set.Alternatives[0].TaxDelta.GreaterThan(decimal.Zero))
	// Spending less leaves more behind.
	assert.True(t, set.Alternatives[1].HeirPVDelta.GreaterThan(decimal.Zero))
	assert.Equal(t, "lean_budget", set.BestHeirPV)

	// Overrides never leak into the base parameters.
	assert.Nil(t, set.Base.Params.RothConversions)
	assert.True(t, set.Base.Params.Expenses.BaseAnnual.Equal(decimal.NewFromInt(120000)))
}

func TestCompareScenariosNoOverrides(t *testing.T) {
	engine := NewEngine(calculation.NewProjectionEngine())
	set, err := engine.CompareScenarios(context.Background(), compareBase(), nil)
	require.NoError(t, err)
	assert.Empty(t, set.Alternatives)
	assert.Equal(t, "base", set.BestHeirPV)
}

func TestCompareScenariosPropagatesFailure(t *testing.T) {
	engine := NewEngine(calculation.NewProjectionEngine())
	badStatus := domain.FilingStatus("widowed")
	overrides := map[string]domain.ParameterOverrides{
		"broken": {FilingStatus: &badStatus},
	}
	_, err := engine.CompareScenarios(context.Background(), compareBase(), overrides)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestCompareScenariosCancelledContext(t *testing.T) {
	engine := NewEngine(calculation.NewProjectionEngine())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := engine.CompareScenarios(ctx, compareBase(), nil)
	assert.Error(t, err)
}

func TestMergeOverrideWins(t *testing.T) {
	base := compareBase()
	newBalance := decimal.NewFromInt(750000)
	single := domain.FilingSingle

	merged := base.Merge(domain.ParameterOverrides{
		IRABalance:   &newBalance,
		FilingStatus: &single,
	})

	assert.True(t, merged.IRABalance.Equal(newBalance))
	assert.Equal(t, domain.FilingSingle, merged.FilingStatus)
	// Untouched fields keep base values; the base itself is unchanged.
	assert.True(t, merged.AfterTaxBalance.Equal(base.AfterTaxBalance))
	assert.True(t, base.IRABalance.Equal(decimal.NewFromInt(1000000)))
	assert.Equal(t, domain.FilingMarriedFilingJointly, base.FilingStatus)
}
