package domain

import (
	"github.com/shopspring/decimal"
)

// FilingStatus selects which bracket tables apply to a projection run.
// It is resolved once when a run starts, never re-branched per lookup.
type FilingStatus string

const (
	FilingSingle               FilingStatus = "single"
	FilingMarriedFilingJointly FilingStatus = "married_filing_jointly"
)

// IsValid reports whether the filing status is one of the supported variants.
func (fs FilingStatus) IsValid() bool {
	return fs == FilingSingle || fs == FilingMarriedFilingJointly
}

// ReturnMode selects between fixed per-account return rates and a blended
// three-tier risk allocation.
type ReturnMode string

const (
	ReturnModeFixed   ReturnMode = "fixed"
	ReturnModeBlended ReturnMode = "blended"
)

// YearAmounts is a sparse year -> dollar amount schedule (Roth conversions,
// gain-harvest overrides, expense overrides). Absent years default to zero;
// callers that need a base-value default use the (amount, ok) form.
type YearAmounts map[int]decimal.Decimal

// Amount returns the scheduled amount for a year, zero when absent.
func (ya YearAmounts) Amount(year int) decimal.Decimal {
	if ya == nil {
		return decimal.Zero
	}
	if amt, ok := ya[year]; ok {
		return amt
	}
	return decimal.Zero
}

// Lookup returns the scheduled amount and whether the year is present.
func (ya YearAmounts) Lookup(year int) (decimal.Decimal, bool) {
	if ya == nil {
		return decimal.Zero, false
	}
	amt, ok := ya[year]
	return amt, ok
}

// FixedReturns holds per-account annual growth rates for fixed return mode.
type FixedReturns struct {
	AfterTax decimal.Decimal `yaml:"after_tax" json:"afterTax"`
	IRA      decimal.Decimal `yaml:"ira" json:"ira"`
	Roth     decimal.Decimal `yaml:"roth" json:"roth"`
}

// RiskTargets defines the three-tier risk allocation for blended return
// mode. LowTarget and ModerateTarget are portfolio-level dollar targets;
// whatever remains above both is the high tier.
type RiskTargets struct {
	LowTarget      decimal.Decimal `yaml:"low_target" json:"lowTarget"`
	ModerateTarget decimal.Decimal `yaml:"moderate_target" json:"moderateTarget"`
	LowRate        decimal.Decimal `yaml:"low_rate" json:"lowRate"`
	ModerateRate   decimal.Decimal `yaml:"moderate_rate" json:"moderateRate"`
	HighRate       decimal.Decimal `yaml:"high_rate" json:"highRate"`
}

// ReturnAssumptions selects and parameterizes the growth model.
type ReturnAssumptions struct {
	Mode    ReturnMode   `yaml:"mode" json:"mode"`
	Fixed   FixedReturns `yaml:"fixed" json:"fixed"`
	Blended RiskTargets  `yaml:"blended" json:"blended"`
}

// SocialSecurityParams describes the household Social Security benefit.
type SocialSecurityParams struct {
	MonthlyBenefit decimal.Decimal `yaml:"monthly_benefit" json:"monthlyBenefit"`
	COLARate       decimal.Decimal `yaml:"cola_rate" json:"colaRate"`
}

// ExpenseParams describes the household expense schedule.
type ExpenseParams struct {
	BaseAnnual    decimal.Decimal `yaml:"base_annual" json:"baseAnnual"`
	InflationRate decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
	Overrides     YearAmounts     `yaml:"overrides" json:"overrides,omitempty"`
}

// TaxParams holds the tax knobs that are not bracket-table data.
// CapitalGainsRatio is the share of an after-tax withdrawal treated as
// realized gain (the remainder is basis recovery).
type TaxParams struct {
	StateCode            string          `yaml:"state_code" json:"stateCode"`
	StateRate            decimal.Decimal `yaml:"state_rate" json:"stateRate"`
	BracketInflationRate decimal.Decimal `yaml:"bracket_inflation_rate" json:"bracketInflationRate"`
	CapitalGainsRatio    decimal.Decimal `yaml:"capital_gains_ratio" json:"capitalGainsRatio"`
	SSExemptFromState    bool            `yaml:"ss_exempt_from_state" json:"ssExemptFromState"`
}

// MAGIHistory carries the two pre-projection MAGI values needed for the
// IRMAA two-year lookback in the first two simulated years.
type MAGIHistory struct {
	TwoYearsPrior decimal.Decimal `yaml:"two_years_prior" json:"twoYearsPrior"`
	OneYearPrior  decimal.Decimal `yaml:"one_year_prior" json:"oneYearPrior"`
}

// SurvivorEvent models the death of one spouse partway through the
// projection. From DeathYear onward Social Security and expenses are scaled
// by the configured percentages.
type SurvivorEvent struct {
	DeathYear      int             `yaml:"death_year" json:"deathYear"`
	SSPercent      decimal.Decimal `yaml:"ss_percent" json:"ssPercent"`
	ExpensePercent decimal.Decimal `yaml:"expense_percent" json:"expensePercent"`
}

// Heir describes one inheritor of the estate. SplitPercent values across
// all heirs must sum to 1.0.
type Heir struct {
	Name               string          `yaml:"name" json:"name"`
	SplitPercent       decimal.Decimal `yaml:"split_percent" json:"splitPercent"`
	StateCode          string          `yaml:"state_code" json:"stateCode"`
	AGI                decimal.Decimal `yaml:"agi" json:"agi"`
	ReinvestmentReturn decimal.Decimal `yaml:"reinvestment_return" json:"reinvestmentReturn"`
}

// CalcToggles controls the tax-convergence iteration and present-value
// discounting.
type CalcToggles struct {
	IterativeTax  bool            `yaml:"iterative_tax" json:"iterativeTax"`
	MaxIterations int             `yaml:"max_iterations" json:"maxIterations"`
	DiscountRate  decimal.Decimal `yaml:"discount_rate" json:"discountRate"`
}

// ParameterSet is the complete, immutable input for one projection run.
type ParameterSet struct {
	StartYear        int          `yaml:"start_year" json:"startYear"`
	EndYear          int          `yaml:"end_year" json:"endYear"`
	BirthYear        int          `yaml:"birth_year" json:"birthYear"`
	FilingStatus     FilingStatus `yaml:"filing_status" json:"filingStatus"`
	PeopleOnMedicare int          `yaml:"people_on_medicare" json:"peopleOnMedicare"`

	AfterTaxBalance decimal.Decimal `yaml:"after_tax_balance" json:"afterTaxBalance"`
	AfterTaxBasis   decimal.Decimal `yaml:"after_tax_basis" json:"afterTaxBasis"`
	IRABalance      decimal.Decimal `yaml:"ira_balance" json:"iraBalance"`
	RothBalance     decimal.Decimal `yaml:"roth_balance" json:"rothBalance"`

	Returns        ReturnAssumptions    `yaml:"returns" json:"returns"`
	SocialSecurity SocialSecurityParams `yaml:"social_security" json:"socialSecurity"`
	Expenses       ExpenseParams        `yaml:"expenses" json:"expenses"`
	Taxes          TaxParams            `yaml:"taxes" json:"taxes"`

	RothConversions YearAmounts `yaml:"roth_conversions" json:"rothConversions,omitempty"`
	GainHarvests    YearAmounts `yaml:"gain_harvests" json:"gainHarvests,omitempty"`

	MAGIHistory MAGIHistory    `yaml:"magi_history" json:"magiHistory"`
	Survivor    *SurvivorEvent `yaml:"survivor" json:"survivor,omitempty"`
	Heirs       []Heir         `yaml:"heirs" json:"heirs,omitempty"`
	Calc        CalcToggles    `yaml:"calc" json:"calc"`
}

// Years returns the number of simulated years, zero for malformed ranges.
func (ps *ParameterSet) Years() int {
	n := ps.EndYear - ps.StartYear + 1
	if n < 0 {
		return 0
	}
	return n
}

// HeirSplitSum returns the sum of all heir split percentages.
func (ps *ParameterSet) HeirSplitSum() decimal.Decimal {
	total := decimal.Zero
	for _, h := range ps.Heirs {
		total = total.Add(h.SplitPercent)
	}
	return total
}
