package calculation

import (
	"github.com/khoward/glidepath/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateSummary folds a projection into its headline aggregates in a
// single pass. An empty projection yields a zero-valued summary.
func CalculateSummary(records []domain.ProjectionRecord) domain.Summary {
	summary := domain.Summary{Years: len(records)}
	if len(records) == 0 {
		return summary
	}

	summary.FirstYear = records[0].Year
	summary.LastYear = records[len(records)-1].Year

	for _, rec := range records {
		summary.TotalTax = summary.TotalTax.Add(rec.TotalTax)
		summary.TotalIRMAA = summary.TotalIRMAA.Add(rec.IRMAATotal)
		summary.TotalExpenses = summary.TotalExpenses.Add(rec.Expenses)
		summary.TotalWithdrawals = summary.TotalWithdrawals.Add(rec.Withdrawals.Total())
		summary.TotalConversions = summary.TotalConversions.Add(rec.RothConversion)

		if total := rec.EndingBalances.Total(); total.GreaterThan(summary.PeakBalance) {
			summary.PeakBalance = total
			summary.PeakBalanceYear = rec.Year
		}

		if rec.HasShortfall {
			summary.ShortfallYears = append(summary.ShortfallYears, rec.Year)
			summary.TotalShortfall = summary.TotalShortfall.Add(rec.Shortfall)
		}

		if summary.DepletionYear == 0 && rec.EndingBalances.Total().LessThanOrEqual(decimal.Zero) {
			summary.DepletionYear = rec.Year
		}
	}

	last := records[len(records)-1]
	summary.FinalBalances = last.EndingBalances
	summary.FinalHeirNominal = last.HeirValueNominal
	summary.FinalHeirPV = last.HeirValuePV

	return summary
}
