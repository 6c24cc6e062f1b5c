package calculation

import (
	"github.com/khoward/glidepath/internal/tables"
	"github.com/shopspring/decimal"
)

// RequiredMinimumDistribution returns the mandatory IRA withdrawal for the
// year along with the Uniform Lifetime divisor used. Below the start age
// both are zero; ages beyond the end of the table clamp to its last
// divisor.
func RequiredMinimumDistribution(iraBalance decimal.Decimal, age int) (amount, divisor decimal.Decimal) {
	if age < tables.RMDStartAge || iraBalance.LessThanOrEqual(decimal.Zero) {
		if age >= tables.RMDStartAge {
			return decimal.Zero, tables.RMDDivisor(age)
		}
		return decimal.Zero, decimal.Zero
	}

	divisor = tables.RMDDivisor(age)
	return iraBalance.Div(divisor).Round(2), divisor
}
