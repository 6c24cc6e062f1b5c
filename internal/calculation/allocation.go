package calculation

import (
	"github.com/khoward/glidepath/internal/domain"
	"github.com/shopspring/decimal"
)

// AllocateRiskTiers partitions the portfolio-level total into low,
// moderate, and high risk tiers by dollar thresholding, then fills each
// account's allocation in the fixed order After-Tax, IRA, Roth. Each
// account drains the low tier before moderate, moderate before high.
// The ordering pushes ordinary-income-generating assets toward the
// tax-deferred account last; the tier rates are a stand-in for true
// asset-location optimization, not a tax-loss-harvesting engine.
func AllocateRiskTiers(afterTax, ira, roth decimal.Decimal, targets domain.RiskTargets) domain.RiskBreakdown {
	total := afterTax.Add(ira).Add(roth)

	lowPool := decimal.Min(total, decimal.Max(targets.LowTarget, decimal.Zero))
	moderatePool := decimal.Min(total.Sub(lowPool), decimal.Max(targets.ModerateTarget, decimal.Zero))
	highPool := total.Sub(lowPool).Sub(moderatePool)

	fill := func(balance decimal.Decimal) domain.TierAllocation {
		alloc := domain.TierAllocation{
			Low:      decimal.Zero,
			Moderate: decimal.Zero,
			High:     decimal.Zero,
		}

		remaining := balance
		alloc.Low = decimal.Min(remaining, lowPool)
		lowPool = lowPool.Sub(alloc.Low)
		remaining = remaining.Sub(alloc.Low)

		alloc.Moderate = decimal.Min(remaining, moderatePool)
		moderatePool = moderatePool.Sub(alloc.Moderate)
		remaining = remaining.Sub(alloc.Moderate)

		alloc.High = decimal.Min(remaining, highPool)
		highPool = highPool.Sub(alloc.High)

		alloc.BlendedRate = blendedRate(alloc, targets)
		return alloc
	}

	// Fill order is fixed: After-Tax first, Roth last.
	return domain.RiskBreakdown{
		AfterTax: fill(afterTax),
		IRA:      fill(ira),
		Roth:     fill(roth),
	}
}

// blendedRate is the tier-dollar-weighted average return for one account.
func blendedRate(alloc domain.TierAllocation, targets domain.RiskTargets) decimal.Decimal {
	balance := alloc.Low.Add(alloc.Moderate).Add(alloc.High)
	if balance.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	weighted := alloc.Low.Mul(targets.LowRate).
		Add(alloc.Moderate.Mul(targets.ModerateRate)).
		Add(alloc.High.Mul(targets.HighRate))

	return weighted.Div(balance)
}
