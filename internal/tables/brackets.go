// Package tables holds the year-anchored constant data the projection
// engine consumes: federal and capital-gains brackets, the IRMAA tier
// table, the RMD Uniform Lifetime table, standard deductions, and the
// Social Security / NIIT thresholds, plus the inflation scaling applied
// to all of them. Every table carries its own anchor year because the
// sources are not anchored uniformly (federal/LTCG data is 2024-anchored,
// IRMAA is 2026-anchored).
package tables

import (
	"fmt"

	"github.com/khoward/glidepath/internal/domain"
	"github.com/shopspring/decimal"
)

// Bracket is one rung of a progressive rate schedule. Threshold is the
// income level at which the rate begins to apply.
type Bracket struct {
	Rate      decimal.Decimal `json:"rate"`
	Threshold decimal.Decimal `json:"threshold"`
}

// BracketSet is an ordered progressive rate schedule. Thresholds ascend
// strictly from zero and rates ascend strictly; both invariants are
// enforced at construction, never re-checked by the engine.
type BracketSet struct {
	AnchorYear int       `json:"anchorYear"`
	Brackets   []Bracket `json:"brackets"`
}

// NewBracketSet builds a validated bracket set. Malformed data (empty set,
// nonzero first threshold, non-ascending thresholds or rates) is a
// programmer error and panics.
func NewBracketSet(anchorYear int, brackets []Bracket) BracketSet {
	if len(brackets) == 0 {
		panic("tables: bracket set must not be empty")
	}
	if !brackets[0].Threshold.IsZero() {
		panic(fmt.Sprintf("tables: first bracket threshold must be 0, got %s", brackets[0].Threshold))
	}
	for i := 1; i < len(brackets); i++ {
		if brackets[i].Threshold.LessThanOrEqual(brackets[i-1].Threshold) {
			panic(fmt.Sprintf("tables: bracket thresholds must strictly ascend, %s after %s",
				brackets[i].Threshold, brackets[i-1].Threshold))
		}
		if brackets[i].Rate.LessThanOrEqual(brackets[i-1].Rate) {
			panic(fmt.Sprintf("tables: bracket rates must strictly ascend, %s after %s",
				brackets[i].Rate, brackets[i-1].Rate))
		}
	}
	return BracketSet{AnchorYear: anchorYear, Brackets: brackets}
}

// Inflate scales every threshold by (1+rate)^years, leaving rates alone.
// Zero years returns the set unchanged.
func (bs BracketSet) Inflate(rate decimal.Decimal, years int) BracketSet {
	if years == 0 {
		return bs
	}
	factor := InflationFactor(rate, years)
	scaled := make([]Bracket, len(bs.Brackets))
	for i, b := range bs.Brackets {
		scaled[i] = Bracket{Rate: b.Rate, Threshold: b.Threshold.Mul(factor).Round(0)}
	}
	return BracketSet{AnchorYear: bs.AnchorYear, Brackets: scaled}
}

// InflationFactor returns (1+rate)^years.
func InflationFactor(rate decimal.Decimal, years int) decimal.Decimal {
	return decimal.NewFromInt(1).Add(rate).Pow(decimal.NewFromInt(int64(years)))
}

func bracket(rate float64, threshold int64) Bracket {
	return Bracket{Rate: decimal.NewFromFloat(rate), Threshold: decimal.NewFromInt(threshold)}
}

// FederalAnchorYear is the tax year the federal and capital-gains tables
// are stated in.
const FederalAnchorYear = 2024

var federalMFJ = NewBracketSet(FederalAnchorYear, []Bracket{
	bracket(0.10, 0),
	bracket(0.12, 23200),
	bracket(0.22, 94300),
	bracket(0.24, 201050),
	bracket(0.32, 383900),
	bracket(0.35, 487450),
	bracket(0.37, 731200),
})

var federalSingle = NewBracketSet(FederalAnchorYear, []Bracket{
	bracket(0.10, 0),
	bracket(0.12, 11600),
	bracket(0.22, 47150),
	bracket(0.24, 100525),
	bracket(0.32, 191950),
	bracket(0.35, 243725),
	bracket(0.37, 609350),
})

var capitalGainsMFJ = NewBracketSet(FederalAnchorYear, []Bracket{
	bracket(0.00, 0),
	bracket(0.15, 94050),
	bracket(0.20, 583750),
})

var capitalGainsSingle = NewBracketSet(FederalAnchorYear, []Bracket{
	bracket(0.00, 0),
	bracket(0.15, 47025),
	bracket(0.20, 518900),
})

// FederalBrackets returns the ordinary-income schedule for a filing status.
func FederalBrackets(fs domain.FilingStatus) BracketSet {
	if fs == domain.FilingSingle {
		return federalSingle
	}
	return federalMFJ
}

// CapitalGainsBrackets returns the long-term capital-gains schedule for a
// filing status.
func CapitalGainsBrackets(fs domain.FilingStatus) BracketSet {
	if fs == domain.FilingSingle {
		return capitalGainsSingle
	}
	return capitalGainsMFJ
}

// StandardDeduction returns the 2024-anchored standard deduction.
func StandardDeduction(fs domain.FilingStatus) decimal.Decimal {
	if fs == domain.FilingSingle {
		return decimal.NewFromInt(14600)
	}
	return decimal.NewFromInt(29200)
}

// SSThresholds returns the two combined-income tiers that govern how much
// of a Social Security benefit is taxable. These are set in statute and
// not inflation indexed, so they never pass through Inflate.
func SSThresholds(fs domain.FilingStatus) (tier1, tier2 decimal.Decimal) {
	if fs == domain.FilingSingle {
		return decimal.NewFromInt(25000), decimal.NewFromInt(34000)
	}
	return decimal.NewFromInt(32000), decimal.NewFromInt(44000)
}

// NIITRate is the Net Investment Income Tax surtax rate.
var NIITRate = decimal.NewFromFloat(0.038)

// NIITThreshold returns the MAGI level above which NIIT applies.
func NIITThreshold(fs domain.FilingStatus) decimal.Decimal {
	if fs == domain.FilingSingle {
		return decimal.NewFromInt(200000)
	}
	return decimal.NewFromInt(250000)
}

// stateRates is a flat investment-income rate per jurisdiction, used for
// heir marginal-rate lookups. States absent from the table are treated as
// no-income-tax states.
var stateRates = map[string]decimal.Decimal{
	"CA": decimal.NewFromFloat(0.093),
	"NY": decimal.NewFromFloat(0.0685),
	"NJ": decimal.NewFromFloat(0.0637),
	"VA": decimal.NewFromFloat(0.0575),
	"MA": decimal.NewFromFloat(0.05),
	"PA": decimal.NewFromFloat(0.0307),
	"AZ": decimal.NewFromFloat(0.025),
}

// StateRate returns the flat rate for a state code, zero when the state
// levies no income tax or is unknown.
func StateRate(code string) decimal.Decimal {
	if rate, ok := stateRates[code]; ok {
		return rate
	}
	return decimal.Zero
}
