// Package calculation contains the pure tax calculators, the year-by-year
// projection engine, and the post-pass heir and summary calculators. All
// money math uses shopspring/decimal; every function here is deterministic
// and touches no shared state.
package calculation

import (
	"github.com/khoward/glidepath/internal/tables"
	"github.com/shopspring/decimal"
)

var (
	decimalOne    = decimal.NewFromInt(1)
	decimalTwelve = decimal.NewFromInt(12)
	decimalHalf   = decimal.NewFromFloat(0.5)
)

// FederalTax computes progressive ordinary-income tax on taxableIncome.
// Each bracket taxes the slice of income between its threshold and the
// next; the result is rounded to whole dollars at the end only.
func FederalTax(taxableIncome decimal.Decimal, brackets tables.BracketSet) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	tax := decimal.Zero
	for i, b := range brackets.Brackets {
		if taxableIncome.LessThanOrEqual(b.Threshold) {
			break
		}
		sliceTop := taxableIncome
		if i+1 < len(brackets.Brackets) {
			sliceTop = decimal.Min(taxableIncome, brackets.Brackets[i+1].Threshold)
		}
		tax = tax.Add(sliceTop.Sub(b.Threshold).Mul(b.Rate))
	}

	return tax.Round(0)
}

// CapitalGainsTax computes preferential-rate tax on long-term gains that
// stack on top of ordinary taxable income: brackets already filled by
// ordinary income are skipped, and the gains fill the remaining bracket
// space in order. Ordinary income therefore pushes gains into higher
// preferential tiers.
func CapitalGainsTax(gains, taxableOrdinaryIncome decimal.Decimal, brackets tables.BracketSet) decimal.Decimal {
	if gains.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	ordinary := taxableOrdinaryIncome
	if ordinary.LessThan(decimal.Zero) {
		ordinary = decimal.Zero
	}
	stackTop := ordinary.Add(gains)

	tax := decimal.Zero
	for i, b := range brackets.Brackets {
		if stackTop.LessThanOrEqual(b.Threshold) {
			break
		}
		sliceTop := stackTop
		if i+1 < len(brackets.Brackets) {
			sliceTop = decimal.Min(stackTop, brackets.Brackets[i+1].Threshold)
		}
		sliceBottom := decimal.Max(b.Threshold, ordinary)
		if sliceTop.GreaterThan(sliceBottom) {
			tax = tax.Add(sliceTop.Sub(sliceBottom).Mul(b.Rate))
		}
	}

	return tax.Round(0)
}

// NetInvestmentIncomeTax computes the NIIT surtax: the rate applies to the
// lesser of investment income or the MAGI excess over the filing
// threshold, zero at or below the threshold.
func NetInvestmentIncomeTax(investmentIncome, magi, filingThreshold decimal.Decimal) decimal.Decimal {
	excess := magi.Sub(filingThreshold)
	if excess.LessThanOrEqual(decimal.Zero) || investmentIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	base := decimal.Min(investmentIncome, excess)
	return base.Mul(tables.NIITRate).Round(0)
}

// TaxableSocialSecurity determines the federally taxable portion of a
// Social Security benefit. Combined income is other income plus half the
// benefit; below tier1 nothing is taxable, between the tiers up to 50% of
// the excess is taxable (capped at half the benefit), and above tier2 the
// 85% rules apply with an overall cap of 85% of the benefit.
func TaxableSocialSecurity(ssBenefit, otherIncome, tier1, tier2 decimal.Decimal) decimal.Decimal {
	if ssBenefit.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	combined := otherIncome.Add(ssBenefit.Mul(decimalHalf))
	if combined.LessThanOrEqual(tier1) {
		return decimal.Zero
	}

	halfBenefit := ssBenefit.Mul(decimalHalf)
	if combined.LessThanOrEqual(tier2) {
		return decimal.Min(combined.Sub(tier1).Mul(decimalHalf), halfBenefit)
	}

	rate85 := decimal.NewFromFloat(0.85)
	lowerTierAmount := decimal.Min(tier2.Sub(tier1).Mul(decimalHalf), halfBenefit)
	taxable := combined.Sub(tier2).Mul(rate85).Add(lowerTierAmount)
	return decimal.Min(taxable, ssBenefit.Mul(rate85))
}

// StateTaxableIncome carries the income components a state calculator may
// tax. Which components actually enter the base varies by jurisdiction.
type StateTaxableIncome struct {
	OrdinaryIncome    decimal.Decimal
	InvestmentIncome  decimal.Decimal
	TaxableSSBenefits decimal.Decimal
}

// StateTaxCalculator is the pluggable per-jurisdiction strategy. States
// differ mainly in which retirement income they exempt, so the strategy
// owns the base definition as well as the rate.
type StateTaxCalculator interface {
	Name() string
	CalculateTax(income StateTaxableIncome) decimal.Decimal
}

// FlatRateStateTax is the reference state strategy: a single fixed rate on
// investment income, optionally including taxable Social Security for
// states that do not exempt it. Retirement-income exemptions vary enough
// by state that ordinary income stays out of the reference base.
type FlatRateStateTax struct {
	Code              string
	Rate              decimal.Decimal
	TaxSocialSecurity bool
}

// NewStateTaxCalculator builds the strategy for a jurisdiction code. All
// supported states currently share the flat-rate implementation; the
// factory exists so state-specific bases can slot in without touching the
// engine.
func NewStateTaxCalculator(code string, rate decimal.Decimal, ssExempt bool) StateTaxCalculator {
	return &FlatRateStateTax{Code: code, Rate: rate, TaxSocialSecurity: !ssExempt}
}

func (s *FlatRateStateTax) Name() string { return s.Code }

// CalculateTax applies the flat rate to the jurisdiction's taxable base.
func (s *FlatRateStateTax) CalculateTax(income StateTaxableIncome) decimal.Decimal {
	base := income.InvestmentIncome
	if s.TaxSocialSecurity {
		base = base.Add(income.TaxableSSBenefits)
	}
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return base.Mul(s.Rate).Round(0)
}
