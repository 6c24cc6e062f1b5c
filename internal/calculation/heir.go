package calculation

import (
	"github.com/khoward/glidepath/internal/domain"
	"github.com/khoward/glidepath/internal/tables"
	"github.com/shopspring/decimal"
)

// InheritedIRAWindow is the number of years an inherited traditional IRA
// must be emptied within under the SECURE Act, and the default comparison
// horizon for distribution strategies.
const InheritedIRAWindow = 10

// bracketCreepPenalty is added to the heir's base marginal rate when an
// entire inherited IRA is distributed in a single year.
var bracketCreepPenalty = decimal.NewFromFloat(0.05)

// IRADistributionStrategy selects how an heir empties an inherited
// traditional IRA.
type IRADistributionStrategy string

const (
	// DistributeEven takes equal-remaining-balance installments each year
	// across the distribution window.
	DistributeEven IRADistributionStrategy = "even"
	// DistributeLump defers everything to the last allowed year and
	// distributes in one taxed shot.
	DistributeLump IRADistributionStrategy = "lump"
)

// MarginalFederalRate returns the rate of the bracket containing income.
func MarginalFederalRate(income decimal.Decimal, brackets tables.BracketSet) decimal.Decimal {
	rate := brackets.Brackets[0].Rate
	for _, b := range brackets.Brackets[1:] {
		if income.GreaterThan(b.Threshold) {
			rate = b.Rate
		}
	}
	return rate
}

// HeirCombinedRate is the heir's marginal federal rate (looked up from
// their reported AGI, single-filer schedule) plus their state's flat rate.
func HeirCombinedRate(heir domain.Heir) decimal.Decimal {
	federal := MarginalFederalRate(heir.AGI, tables.FederalBrackets(domain.FilingSingle))
	return federal.Add(tables.StateRate(heir.StateCode))
}

// SimpleHeirValue is the immediate-inheritance value of the estate:
// after-tax assets pass at full value via the basis step-up, Roth passes
// tax-free, and the traditional IRA is discounted by each heir's combined
// marginal rate. Balances are split across heirs by their percentages.
// With no heirs configured the estate is valued untaxed.
func SimpleHeirValue(balances domain.AccountBalances, heirs []domain.Heir) decimal.Decimal {
	if len(heirs) == 0 {
		return balances.Total()
	}

	total := decimal.Zero
	for _, heir := range heirs {
		rate := HeirCombinedRate(heir)
		share := balances.AfterTax.Add(balances.Roth).
			Add(balances.IRA.Mul(decimalOne.Sub(rate))).
			Mul(heir.SplitPercent)
		total = total.Add(share)
	}
	return total.Round(2)
}

// HeirDistributionValue normalizes the three account types to a common
// future horizon under a chosen IRA distribution strategy, for one heir's
// share of the estate, then discounts the horizon value back to present
// value at the plan's discount rate. This is the only fair way to compare
// Roth's tax-free-but-windowed growth against the IRA's
// taxed-but-flexible distributions against the already-stepped-up
// after-tax assets.
func HeirDistributionValue(balances domain.AccountBalances, heir domain.Heir, strategy IRADistributionStrategy, horizonYears int, discountRate decimal.Decimal) decimal.Decimal {
	if horizonYears <= 0 {
		horizonYears = InheritedIRAWindow
	}

	split := heir.SplitPercent
	combinedRate := HeirCombinedRate(heir)
	reinvest := heir.ReinvestmentReturn

	afterTax := balances.AfterTax.Mul(split)
	roth := balances.Roth.Mul(split)
	ira := balances.IRA.Mul(split)

	// After-tax: step-up basis makes it immediately tax-free; it then
	// compounds at the heir's taxable reinvestment rate to the horizon.
	atHorizon := afterTax.Mul(compound(reinvest, horizonYears))

	// Roth: tax-free growth inside the account for up to the window,
	// taxable-rate growth after forced distribution.
	rothYearsInside := horizonYears
	if rothYearsInside > InheritedIRAWindow {
		rothYearsInside = InheritedIRAWindow
	}
	rothHorizon := roth.Mul(compound(reinvest, rothYearsInside)).
		Mul(compound(reinvest, horizonYears-rothYearsInside))

	var iraHorizon decimal.Decimal
	switch strategy {
	case DistributeLump:
		iraHorizon = iraLumpValue(ira, combinedRate, reinvest, horizonYears)
	default:
		iraHorizon = iraEvenValue(ira, combinedRate, reinvest, horizonYears)
	}

	horizonValue := atHorizon.Add(rothHorizon).Add(iraHorizon)
	return horizonValue.Div(compound(discountRate, horizonYears)).Round(2)
}

// iraEvenValue distributes the IRA in equal-remaining-balance installments
// across the window: each year's payout is the then-current balance over
// the years remaining, taxed immediately, with the after-tax remainder
// reinvested at the heir's taxable rate until the horizon.
func iraEvenValue(ira, combinedRate, reinvest decimal.Decimal, horizonYears int) decimal.Decimal {
	balance := ira
	value := decimal.Zero
	for year := 1; year <= InheritedIRAWindow; year++ {
		if balance.LessThanOrEqual(decimal.Zero) {
			break
		}
		yearsRemaining := decimal.NewFromInt(int64(InheritedIRAWindow - year + 1))
		payout := balance.Div(yearsRemaining)
		balance = balance.Sub(payout).Mul(decimalOne.Add(reinvest))

		afterTaxPayout := payout.Mul(decimalOne.Sub(combinedRate))
		yearsToHorizon := horizonYears - year
		if yearsToHorizon < 0 {
			yearsToHorizon = 0
		}
		value = value.Add(afterTaxPayout.Mul(compound(reinvest, yearsToHorizon)))
	}
	return value
}

// iraLumpValue defers the full balance to the end of the window, then
// distributes it all at once at an elevated rate reflecting the bracket
// creep a single-year distribution causes.
func iraLumpValue(ira, combinedRate, reinvest decimal.Decimal, horizonYears int) decimal.Decimal {
	deferred := ira.Mul(compound(reinvest, InheritedIRAWindow))
	lumpRate := combinedRate.Add(bracketCreepPenalty)
	if lumpRate.GreaterThan(decimalOne) {
		lumpRate = decimalOne
	}
	afterTax := deferred.Mul(decimalOne.Sub(lumpRate))

	yearsToHorizon := horizonYears - InheritedIRAWindow
	if yearsToHorizon < 0 {
		yearsToHorizon = 0
	}
	return afterTax.Mul(compound(reinvest, yearsToHorizon))
}

// EstateDistributionValue sums HeirDistributionValue across all heirs.
func EstateDistributionValue(balances domain.AccountBalances, heirs []domain.Heir, strategy IRADistributionStrategy, horizonYears int, discountRate decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, heir := range heirs {
		total = total.Add(HeirDistributionValue(balances, heir, strategy, horizonYears, discountRate))
	}
	return total
}

// PresentValue discounts a nominal amount back yearsFromStart years at the
// given rate. Zero years returns the nominal amount exactly.
func PresentValue(nominal, discountRate decimal.Decimal, yearsFromStart int) decimal.Decimal {
	if yearsFromStart <= 0 {
		return nominal
	}
	return nominal.Div(compound(discountRate, yearsFromStart))
}

func compound(rate decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return decimalOne
	}
	return decimalOne.Add(rate).Pow(decimal.NewFromInt(int64(years)))
}
