package domain

import (
	"github.com/shopspring/decimal"
)

// AccountBalances is a snapshot of the three account balances plus the
// after-tax cost basis.
type AccountBalances struct {
	AfterTax      decimal.Decimal `json:"afterTax"`
	AfterTaxBasis decimal.Decimal `json:"afterTaxBasis"`
	IRA           decimal.Decimal `json:"ira"`
	Roth          decimal.Decimal `json:"roth"`
}

// Total returns the sum of the three account balances (basis excluded).
func (ab AccountBalances) Total() decimal.Decimal {
	return ab.AfterTax.Add(ab.IRA).Add(ab.Roth)
}

// AccountWithdrawals records the gross amount taken from each account.
type AccountWithdrawals struct {
	AfterTax decimal.Decimal `json:"afterTax"`
	IRA      decimal.Decimal `json:"ira"`
	Roth     decimal.Decimal `json:"roth"`
}

// Total returns the combined withdrawal across accounts.
func (aw AccountWithdrawals) Total() decimal.Decimal {
	return aw.AfterTax.Add(aw.IRA).Add(aw.Roth)
}

// TierAllocation is one account's split across the three risk tiers and
// the blended return that split produces.
type TierAllocation struct {
	Low         decimal.Decimal `json:"low"`
	Moderate    decimal.Decimal `json:"moderate"`
	High        decimal.Decimal `json:"high"`
	BlendedRate decimal.Decimal `json:"blendedRate"`
}

// RiskBreakdown is the per-account tier allocation recorded when return
// mode is blended.
type RiskBreakdown struct {
	AfterTax TierAllocation `json:"afterTax"`
	IRA      TierAllocation `json:"ira"`
	Roth     TierAllocation `json:"roth"`
}

// ProjectionRecord is one simulated year. Records are created in strict
// chronological order and never mutated afterward; later years read only
// the prior year's ending balances.
type ProjectionRecord struct {
	Year           int `json:"year"`
	Age            int `json:"age"`
	YearsFromStart int `json:"yearsFromStart"`

	BeginningBalances AccountBalances    `json:"beginningBalances"`
	EndingBalances    AccountBalances    `json:"endingBalances"`
	Withdrawals       AccountWithdrawals `json:"withdrawals"`

	RMDAmount  decimal.Decimal `json:"rmdAmount"`
	RMDDivisor decimal.Decimal `json:"rmdDivisor"`

	RothConversion decimal.Decimal `json:"rothConversion"`

	Expenses   decimal.Decimal `json:"expenses"`
	SSBenefit  decimal.Decimal `json:"ssBenefit"`
	TaxableSS  decimal.Decimal `json:"taxableSs"`
	IsSurvivor bool            `json:"isSurvivor"`

	// Taxable-income bases and the tax components they produced.
	OrdinaryIncome     decimal.Decimal `json:"ordinaryIncome"`
	CapitalGainsIncome decimal.Decimal `json:"capitalGainsIncome"`
	MAGI               decimal.Decimal `json:"magi"`
	FederalTax         decimal.Decimal `json:"federalTax"`
	CapitalGainsTax    decimal.Decimal `json:"capitalGainsTax"`
	NIIT               decimal.Decimal `json:"niit"`
	StateTax           decimal.Decimal `json:"stateTax"`
	TotalTax           decimal.Decimal `json:"totalTax"`

	// IRMAA for this year, computed from the MAGI two years prior.
	IRMAAMagi  decimal.Decimal `json:"irmaaMagi"`
	IRMAAPartB decimal.Decimal `json:"irmaaPartB"`
	IRMAAPartD decimal.Decimal `json:"irmaaPartD"`
	IRMAATotal decimal.Decimal `json:"irmaaTotal"`

	CumulativeTax          decimal.Decimal `json:"cumulativeTax"`
	CumulativeIRMAA        decimal.Decimal `json:"cumulativeIrmaa"`
	CumulativeExpenses     decimal.Decimal `json:"cumulativeExpenses"`
	CumulativeCapitalGains decimal.Decimal `json:"cumulativeCapitalGains"`

	HeirValueNominal decimal.Decimal `json:"heirValueNominal"`
	HeirValuePV      decimal.Decimal `json:"heirValuePv"`

	Shortfall    decimal.Decimal `json:"shortfall"`
	HasShortfall bool            `json:"hasShortfall"`

	TaxIterations int `json:"taxIterations"`

	RiskAllocation *RiskBreakdown `json:"riskAllocation,omitempty"`
}

// Summary aggregates a full projection sequence in one pass.
type Summary struct {
	Years     int `json:"years"`
	FirstYear int `json:"firstYear"`
	LastYear  int `json:"lastYear"`

	TotalTax         decimal.Decimal `json:"totalTax"`
	TotalIRMAA       decimal.Decimal `json:"totalIrmaa"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	TotalWithdrawals decimal.Decimal `json:"totalWithdrawals"`
	TotalConversions decimal.Decimal `json:"totalConversions"`

	PeakBalance     decimal.Decimal `json:"peakBalance"`
	PeakBalanceYear int             `json:"peakBalanceYear"`

	FinalBalances    AccountBalances `json:"finalBalances"`
	FinalHeirNominal decimal.Decimal `json:"finalHeirNominal"`
	FinalHeirPV      decimal.Decimal `json:"finalHeirPv"`

	ShortfallYears []int           `json:"shortfallYears,omitempty"`
	TotalShortfall decimal.Decimal `json:"totalShortfall"`

	// DepletionYear is the first year the portfolio hit zero, 0 if never.
	DepletionYear int `json:"depletionYear"`
}
