package calculation

import (
	"testing"

	"github.com/khoward/glidepath/internal/domain"
	"github.com/khoward/glidepath/internal/tables"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMarginalFederalRate(t *testing.T) {
	single := tables.FederalBrackets(domain.FilingSingle)
	tests := []struct {
		income int64
		rate   float64
	}{
		{10000, 0.10},
		{30000, 0.12},
		{50000, 0.22},
		{150000, 0.24},
		{700000, 0.37},
	}
	for _, tt := range tests {
		got := MarginalFederalRate(decimal.NewFromInt(tt.income), single)
		want := decimal.NewFromFloat(tt.rate)
		if !got.Equal(want) {
			t.Errorf("MarginalFederalRate(%d) = %s, want %s", tt.income, got, want)
		}
	}
}

func TestHeirCombinedRate(t *testing.T) {
	heir := domain.Heir{AGI: decimal.NewFromInt(50000), StateCode: "PA"}
	got := HeirCombinedRate(heir)
	assert.True(t, got.Equal(decimal.NewFromFloat(0.2507)), "0.22+0.0307, got %s", got)

	noState := domain.Heir{AGI: decimal.NewFromInt(50000)}
	assert.True(t, HeirCombinedRate(noState).Equal(decimal.NewFromFloat(0.22)))
}

func TestSimpleHeirValue(t *testing.T) {
	balances := domain.AccountBalances{
		AfterTax:      decimal.NewFromInt(100000),
		AfterTaxBasis: decimal.NewFromInt(50000),
		IRA:           decimal.NewFromInt(200000),
		Roth:          decimal.NewFromInt(100000),
	}

	// No heirs: the whole estate passes untaxed.
	assert.True(t, SimpleHeirValue(balances, nil).Equal(decimal.NewFromInt(400000)))

	// Single heir at a 22% combined rate discounts only the IRA.
	one := []domain.Heir{{SplitPercent: decimalOne, AGI: decimal.NewFromInt(50000)}}
	got := SimpleHeirValue(balances, one)
	assert.True(t, got.Equal(decimal.NewFromInt(356000)), "100000+100000+200000*0.78, got %s", got)

	// Two heirs in different brackets each discount their own share.
	two := []domain.Heir{
		{SplitPercent: decimalHalf, AGI: decimal.NewFromInt(50000)}, // 22%
		{SplitPercent: decimalHalf, AGI: decimal.NewFromInt(10000)}, // 10%
	}
	got = SimpleHeirValue(balances, two)
	// 0.5*(200000+200000*0.78) + 0.5*(200000+200000*0.90) = 178000+190000
	assert.True(t, got.Equal(decimal.NewFromInt(368000)), "got %s", got)
}

func TestHeirDistributionValueEvenWithZeroRates(t *testing.T) {
	balances := domain.AccountBalances{
		AfterTax: decimal.NewFromInt(100000),
		IRA:      decimal.NewFromInt(100000),
		Roth:     decimal.NewFromInt(100000),
	}
	heir := domain.Heir{SplitPercent: decimalOne, AGI: decimal.NewFromInt(150000)} // 24% federal

	// With zero growth and zero discounting the even strategy reduces to
	// AT + Roth + IRA*(1-rate).
	got := HeirDistributionValue(balances, heir, DistributeEven, InheritedIRAWindow, decimal.Zero)
	want := decimal.NewFromInt(276000)
	assert.True(t, got.Equal(want), "100000+100000+100000*0.76, got %s", got)
}

func TestHeirDistributionValueLumpPaysBracketCreep(t *testing.T) {
	balances := domain.AccountBalances{
		AfterTax: decimal.NewFromInt(100000),
		IRA:      decimal.NewFromInt(100000),
		Roth:     decimal.NewFromInt(100000),
	}
	heir := domain.Heir{SplitPercent: decimalOne, AGI: decimal.NewFromInt(150000)}

	even := HeirDistributionValue(balances, heir, DistributeEven, InheritedIRAWindow, decimal.Zero)
	lump := HeirDistributionValue(balances, heir, DistributeLump, InheritedIRAWindow, decimal.Zero)

	// At zero growth the lump strategy only adds the creep penalty.
	assert.True(t, lump.Equal(decimal.NewFromInt(271000)), "IRA taxed at 0.29, got %s", lump)
	assert.True(t, lump.LessThan(even))
}

func TestHeirDistributionValueDiscounting(t *testing.T) {
	balances := domain.AccountBalances{Roth: decimal.NewFromInt(100000)}
	heir := domain.Heir{SplitPercent: decimalOne}

	nominal := HeirDistributionValue(balances, heir, DistributeEven, InheritedIRAWindow, decimal.Zero)
	discounted := HeirDistributionValue(balances, heir, DistributeEven, InheritedIRAWindow, decimal.NewFromFloat(0.03))
	assert.True(t, discounted.LessThan(nominal), "a positive discount rate must shrink present value")
}

func TestEstateDistributionValueSumsHeirs(t *testing.T) {
	balances := domain.AccountBalances{
		AfterTax: decimal.NewFromInt(200000),
		IRA:      decimal.NewFromInt(200000),
		Roth:     decimal.NewFromInt(200000),
	}
	heirs := []domain.Heir{
		{SplitPercent: decimalHalf, AGI: decimal.NewFromInt(50000)},
		{SplitPercent: decimalHalf, AGI: decimal.NewFromInt(50000)},
	}

	whole := []domain.Heir{{SplitPercent: decimalOne, AGI: decimal.NewFromInt(50000)}}
	split := EstateDistributionValue(balances, heirs, DistributeEven, InheritedIRAWindow, decimal.Zero)
	single := EstateDistributionValue(balances, whole, DistributeEven, InheritedIRAWindow, decimal.Zero)

	diff := split.Sub(single).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.NewFromFloat(0.02)),
		"two identical heirs at 50/50 should value the same as one at 100%%, diff %s", diff)
}

func TestPresentValue(t *testing.T) {
	nominal := decimal.NewFromInt(10000)
	rate := decimal.NewFromFloat(0.05)

	assert.True(t, PresentValue(nominal, rate, 0).Equal(nominal))

	twoYears := PresentValue(nominal, rate, 2)
	assert.True(t, twoYears.Round(2).Equal(decimal.NewFromFloat(9070.29)),
		"10000/1.1025, got %s", twoYears)

	assert.True(t, PresentValue(nominal, decimal.Zero, 10).Equal(nominal))
}
