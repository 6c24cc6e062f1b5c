package domain

import "github.com/shopspring/decimal"

// ParameterOverrides is a fully enumerated, typed override record for
// scenario comparison. A nil field keeps the base value; a set field wins.
// Every overridable ParameterSet field is listed here so nothing can
// silently vanish or appear untyped during a merge.
type ParameterOverrides struct {
	StartYear        *int          `yaml:"start_year" json:"startYear,omitempty"`
	EndYear          *int          `yaml:"end_year" json:"endYear,omitempty"`
	BirthYear        *int          `yaml:"birth_year" json:"birthYear,omitempty"`
	FilingStatus     *FilingStatus `yaml:"filing_status" json:"filingStatus,omitempty"`
	PeopleOnMedicare *int          `yaml:"people_on_medicare" json:"peopleOnMedicare,omitempty"`

	AfterTaxBalance *decimal.Decimal `yaml:"after_tax_balance" json:"afterTaxBalance,omitempty"`
	AfterTaxBasis   *decimal.Decimal `yaml:"after_tax_basis" json:"afterTaxBasis,omitempty"`
	IRABalance      *decimal.Decimal `yaml:"ira_balance" json:"iraBalance,omitempty"`
	RothBalance     *decimal.Decimal `yaml:"roth_balance" json:"rothBalance,omitempty"`

	Returns        *ReturnAssumptions    `yaml:"returns" json:"returns,omitempty"`
	SocialSecurity *SocialSecurityParams `yaml:"social_security" json:"socialSecurity,omitempty"`
	Expenses       *ExpenseParams        `yaml:"expenses" json:"expenses,omitempty"`
	Taxes          *TaxParams            `yaml:"taxes" json:"taxes,omitempty"`

	RothConversions YearAmounts `yaml:"roth_conversions" json:"rothConversions,omitempty"`
	GainHarvests    YearAmounts `yaml:"gain_harvests" json:"gainHarvests,omitempty"`

	MAGIHistory *MAGIHistory   `yaml:"magi_history" json:"magiHistory,omitempty"`
	Survivor    *SurvivorEvent `yaml:"survivor" json:"survivor,omitempty"`
	Heirs       []Heir         `yaml:"heirs" json:"heirs,omitempty"`
	Calc        *CalcToggles   `yaml:"calc" json:"calc,omitempty"`
}

// Merge applies the overrides on top of a copy of the base parameter set.
// The base is never mutated; the override wins on every set field.
func (ps ParameterSet) Merge(o ParameterOverrides) ParameterSet {
	merged := ps

	if o.StartYear != nil {
		merged.StartYear = *o.StartYear
	}
	if o.EndYear != nil {
		merged.EndYear = *o.EndYear
	}
	if o.BirthYear != nil {
		merged.BirthYear = *o.BirthYear
	}
	if o.FilingStatus != nil {
		merged.FilingStatus = *o.FilingStatus
	}
	if o.PeopleOnMedicare != nil {
		merged.PeopleOnMedicare = *o.PeopleOnMedicare
	}
	if o.AfterTaxBalance != nil {
		merged.AfterTaxBalance = *o.AfterTaxBalance
	}
	if o.AfterTaxBasis != nil {
		merged.AfterTaxBasis = *o.AfterTaxBasis
	}
	if o.IRABalance != nil {
		merged.IRABalance = *o.IRABalance
	}
	if o.RothBalance != nil {
		merged.RothBalance = *o.RothBalance
	}
	if o.Returns != nil {
		merged.Returns = *o.Returns
	}
	if o.SocialSecurity != nil {
		merged.SocialSecurity = *o.SocialSecurity
	}
	if o.Expenses != nil {
		merged.Expenses = *o.Expenses
	}
	if o.Taxes != nil {
		merged.Taxes = *o.Taxes
	}
	if o.RothConversions != nil {
		merged.RothConversions = o.RothConversions
	}
	if o.GainHarvests != nil {
		merged.GainHarvests = o.GainHarvests
	}
	if o.MAGIHistory != nil {
		merged.MAGIHistory = *o.MAGIHistory
	}
	if o.Survivor != nil {
		merged.Survivor = o.Survivor
	}
	if o.Heirs != nil {
		merged.Heirs = o.Heirs
	}
	if o.Calc != nil {
		merged.Calc = *o.Calc
	}

	return merged
}
