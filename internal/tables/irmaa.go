package tables

import (
	"fmt"

	"github.com/khoward/glidepath/internal/domain"
	"github.com/shopspring/decimal"
)

// IRMAATier is one Medicare surcharge tier. Threshold is the MAGI level
// that must be strictly exceeded for the tier to apply; the monthly
// premiums are per person.
type IRMAATier struct {
	Threshold    decimal.Decimal `json:"threshold"`
	PartBMonthly decimal.Decimal `json:"partBMonthly"`
	PartDMonthly decimal.Decimal `json:"partDMonthly"`
}

// IRMAATable is the ordered tier schedule for one filing status. The first
// tier has a zero threshold and carries the base premium.
type IRMAATable struct {
	AnchorYear int         `json:"anchorYear"`
	Tiers      []IRMAATier `json:"tiers"`
}

// IRMAAAnchorYear is the calendar year the IRMAA tables are stated in.
// Deliberately independent of FederalAnchorYear: the two sources are not
// anchored to the same year.
const IRMAAAnchorYear = 2026

// NewIRMAATable builds a validated tier table; non-ascending thresholds
// panic, matching bracket-set construction.
func NewIRMAATable(anchorYear int, tiers []IRMAATier) IRMAATable {
	if len(tiers) == 0 {
		panic("tables: IRMAA table must not be empty")
	}
	if !tiers[0].Threshold.IsZero() {
		panic("tables: first IRMAA tier threshold must be 0")
	}
	for i := 1; i < len(tiers); i++ {
		if tiers[i].Threshold.LessThanOrEqual(tiers[i-1].Threshold) {
			panic(fmt.Sprintf("tables: IRMAA thresholds must strictly ascend, %s after %s",
				tiers[i].Threshold, tiers[i-1].Threshold))
		}
	}
	return IRMAATable{AnchorYear: anchorYear, Tiers: tiers}
}

// Inflate scales tier thresholds by (1+rate)^years. Premiums are held
// fixed: real-world Part B/D premiums are reset by CMS each year and do
// not compound with the thresholds.
func (t IRMAATable) Inflate(rate decimal.Decimal, years int) IRMAATable {
	if years == 0 {
		return t
	}
	factor := InflationFactor(rate, years)
	scaled := make([]IRMAATier, len(t.Tiers))
	for i, tier := range t.Tiers {
		scaled[i] = IRMAATier{
			Threshold:    tier.Threshold.Mul(factor).Round(0),
			PartBMonthly: tier.PartBMonthly,
			PartDMonthly: tier.PartDMonthly,
		}
	}
	return IRMAATable{AnchorYear: t.AnchorYear, Tiers: scaled}
}

func irmaaTier(threshold int64, partB, partD float64) IRMAATier {
	return IRMAATier{
		Threshold:    decimal.NewFromInt(threshold),
		PartBMonthly: decimal.NewFromFloat(partB),
		PartDMonthly: decimal.NewFromFloat(partD),
	}
}

var irmaaMFJ = NewIRMAATable(IRMAAAnchorYear, []IRMAATier{
	irmaaTier(0, 185.00, 0),
	irmaaTier(212000, 259.00, 13.70),
	irmaaTier(266000, 370.00, 35.30),
	irmaaTier(334000, 480.90, 57.00),
	irmaaTier(400000, 591.90, 78.60),
	irmaaTier(750000, 628.90, 85.80),
})

var irmaaSingle = NewIRMAATable(IRMAAAnchorYear, []IRMAATier{
	irmaaTier(0, 185.00, 0),
	irmaaTier(106000, 259.00, 13.70),
	irmaaTier(133000, 370.00, 35.30),
	irmaaTier(167000, 480.90, 57.00),
	irmaaTier(200000, 591.90, 78.60),
	irmaaTier(500000, 628.90, 85.80),
})

// IRMAATiers returns the tier table for a filing status.
func IRMAATiers(fs domain.FilingStatus) IRMAATable {
	if fs == domain.FilingSingle {
		return irmaaSingle
	}
	return irmaaMFJ
}
