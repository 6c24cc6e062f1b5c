package config

import (
	"testing"

	"github.com/khoward/glidepath/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPlanYAML = `
base:
  start_year: 2026
  end_year: 2030
  birth_year: 1964
  filing_status: married_filing_jointly
  people_on_medicare: 2
  after_tax_balance: 500000
  after_tax_basis: 400000
  ira_balance: 1000000
  roth_balance: 300000
  returns:
    mode: fixed
    fixed:
      after_tax: 0.05
      ira: 0.06
      roth: 0.04
  social_security:
    monthly_benefit: 3000
    cola_rate: 0.02
  expenses:
    base_annual: 120000
    inflation_rate: 0.025
  taxes:
    state_code: PA
    state_rate: 0.0307
    bracket_inflation_rate: 0.02
    capital_gains_ratio: 0.5
    ss_exempt_from_state: true
  roth_conversions:
    2027: 100000
  heirs:
    - name: Avery
      split_percent: 0.6
      state_code: PA
      agi: 80000
      reinvestment_return: 0.05
    - name: Jordan
      split_percent: 0.4
      agi: 40000
      reinvestment_return: 0.04
  calc:
    iterative_tax: true
    max_iterations: 10
    discount_rate: 0.03
scenarios:
  big_conversion:
    roth_conversions:
      2026: 250000
  early_death:
    survivor:
      death_year: 2028
      ss_percent: 0.6
      expense_percent: 0.75
`

func TestLoadValidPlan(t *testing.T) {
	parser := NewInputParser()
	plan, err := parser.Load([]byte(validPlanYAML))
	require.NoError(t, err)

	assert.Equal(t, 2026, plan.Base.StartYear)
	assert.Equal(t, domain.FilingMarriedFilingJointly, plan.Base.FilingStatus)
	assert.True(t, plan.Base.IRABalance.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, plan.Base.RothConversions.Amount(2027).Equal(decimal.NewFromInt(100000)))
	assert.Len(t, plan.Base.Heirs, 2)
	assert.Len(t, plan.Scenarios, 2)
	assert.NotNil(t, plan.Scenarios["early_death"].Survivor)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.Load([]byte("base: [not a mapping"))
	assert.Error(t, err)
}

func TestValidatePlanErrors(t *testing.T) {
	mutate := func(fn func(*domain.ParameterSet)) *PlanFile {
		parser := NewInputParser()
		plan, err := parser.Load([]byte(validPlanYAML))
		require.NoError(t, err)
		fn(&plan.Base)
		return plan
	}

	tests := []struct {
		name    string
		plan    *PlanFile
		wantErr string
	}{
		{
			name:    "inverted year range",
			plan:    mutate(func(ps *domain.ParameterSet) { ps.EndYear = ps.StartYear - 5 }),
			wantErr: "must not precede",
		},
		{
			name:    "bad filing status",
			plan:    mutate(func(ps *domain.ParameterSet) { ps.FilingStatus = "widowed" }),
			wantErr: "filing status",
		},
		{
			name:    "negative balance",
			plan:    mutate(func(ps *domain.ParameterSet) { ps.IRABalance = decimal.NewFromInt(-1) }),
			wantErr: "must not be negative",
		},
		{
			name: "basis above balance",
			plan: mutate(func(ps *domain.ParameterSet) {
				ps.AfterTaxBasis = ps.AfterTaxBalance.Add(decimal.NewFromInt(1))
			}),
			wantErr: "basis",
		},
		{
			name:    "missing return mode",
			plan:    mutate(func(ps *domain.ParameterSet) { ps.Returns.Mode = "" }),
			wantErr: "return mode",
		},
		{
			name: "gains ratio above one",
			plan: mutate(func(ps *domain.ParameterSet) {
				ps.Taxes.CapitalGainsRatio = decimal.NewFromFloat(1.5)
			}),
			wantErr: "capital gains ratio",
		},
		{
			name: "heir splits off",
			plan: mutate(func(ps *domain.ParameterSet) {
				ps.Heirs[0].SplitPercent = decimal.NewFromFloat(0.9)
			}),
			wantErr: "sum to 1.0",
		},
		{
			name: "survivor outside window",
			plan: mutate(func(ps *domain.ParameterSet) {
				ps.Survivor = &domain.SurvivorEvent{DeathYear: 2050}
			}),
			wantErr: "survivor death year",
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parser.ValidatePlan(tt.plan)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidatePlanChecksMergedScenarios(t *testing.T) {
	parser := NewInputParser()
	plan, err := parser.Load([]byte(validPlanYAML))
	require.NoError(t, err)

	badYear := 2019
	plan.Scenarios["truncated"] = domain.ParameterOverrides{EndYear: &badYear}
	err = parser.ValidatePlan(plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

func TestLoadFromFileMissing(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromFile("/nonexistent/plan.yaml")
	assert.Error(t, err)
}
