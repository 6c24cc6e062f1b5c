// Package output renders projection results as console text, CSV, or JSON.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/khoward/glidepath/internal/compare"
	"github.com/khoward/glidepath/internal/domain"
	"github.com/shopspring/decimal"
)

// ReportData is everything a formatter needs for a single-scenario report.
type ReportData struct {
	Records []domain.ProjectionRecord `json:"records"`
	Summary domain.Summary            `json:"summary"`
}

// Formatter renders a report in one output format.
type Formatter interface {
	Name() string
	Format(data *ReportData) ([]byte, error)
}

// NewFormatter resolves a format name to its formatter.
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "console", "":
		return ConsoleFormatter{}, nil
	case "csv":
		return CSVFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// FormatCurrency formats a decimal as currency.
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal rate as a percentage.
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// ConsoleFormatter renders a styled plan report for terminals.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(data *ReportData) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, titleStyle.Render("RETIREMENT PROJECTION"))
	fmt.Fprintf(&buf, "%s %d-%d (%d years)\n\n",
		labelStyle.Render("Window:"), data.Summary.FirstYear, data.Summary.LastYear, data.Summary.Years)

	fmt.Fprintln(&buf, headerStyle.Render("YEAR BY YEAR"))
	fmt.Fprintf(&buf, "%-6s %-4s %14s %14s %14s %12s %12s %12s\n",
		"Year", "Age", "After-Tax", "IRA", "Roth", "Withdrawn", "Tax", "IRMAA")
	for _, rec := range data.Records {
		line := fmt.Sprintf("%-6d %-4d %14s %14s %14s %12s %12s %12s",
			rec.Year, rec.Age,
			FormatCurrency(rec.EndingBalances.AfterTax),
			FormatCurrency(rec.EndingBalances.IRA),
			FormatCurrency(rec.EndingBalances.Roth),
			FormatCurrency(rec.Withdrawals.Total()),
			FormatCurrency(rec.TotalTax),
			FormatCurrency(rec.IRMAATotal))
		if rec.HasShortfall {
			line += "  " + warningStyle.Render("SHORTFALL "+FormatCurrency(rec.Shortfall))
		}
		fmt.Fprintln(&buf, line)
	}

	fmt.Fprintln(&buf)
	writeSummary(&buf, data.Summary)

	return buf.Bytes(), nil
}

// FormatSummary renders just the summary block, for callers that do not
// want the year-by-year table.
func FormatSummary(summary domain.Summary) []byte {
	var buf bytes.Buffer
	writeSummary(&buf, summary)
	return buf.Bytes()
}

func writeSummary(buf *bytes.Buffer, summary domain.Summary) {
	fmt.Fprintln(buf, headerStyle.Render("SUMMARY"))
	fmt.Fprintf(buf, "%s %s\n", labelStyle.Render("Total tax:"), FormatCurrency(summary.TotalTax))
	fmt.Fprintf(buf, "%s %s\n", labelStyle.Render("Total IRMAA:"), FormatCurrency(summary.TotalIRMAA))
	fmt.Fprintf(buf, "%s %s\n", labelStyle.Render("Total expenses:"), FormatCurrency(summary.TotalExpenses))
	fmt.Fprintf(buf, "%s %s\n", labelStyle.Render("Total withdrawals:"), FormatCurrency(summary.TotalWithdrawals))
	fmt.Fprintf(buf, "%s %s (%d)\n", labelStyle.Render("Peak balance:"),
		FormatCurrency(summary.PeakBalance), summary.PeakBalanceYear)
	fmt.Fprintf(buf, "%s %s\n", labelStyle.Render("Final balance:"), FormatCurrency(summary.FinalBalances.Total()))
	fmt.Fprintf(buf, "%s %s nominal / %s present value\n", labelStyle.Render("Heir value:"),
		FormatCurrency(summary.FinalHeirNominal), FormatCurrency(summary.FinalHeirPV))

	if summary.DepletionYear != 0 {
		fmt.Fprintln(buf, warningStyle.Render(fmt.Sprintf("Portfolio depleted in %d", summary.DepletionYear)))
	}
	if len(summary.ShortfallYears) > 0 {
		fmt.Fprintln(buf, warningStyle.Render(fmt.Sprintf(
			"Shortfalls in %d year(s), total %s", len(summary.ShortfallYears), FormatCurrency(summary.TotalShortfall))))
	}
}

// CSVFormatter emits one row per projected year.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(data *ReportData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"year", "age", "after_tax", "ira", "roth", "withdrawal_after_tax",
		"withdrawal_ira", "withdrawal_roth", "roth_conversion", "rmd",
		"expenses", "ss_benefit", "magi", "federal_tax", "capital_gains_tax",
		"niit", "state_tax", "total_tax", "irmaa", "heir_value_nominal",
		"heir_value_pv", "shortfall",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}

	for _, rec := range data.Records {
		row := []string{
			strconv.Itoa(rec.Year),
			strconv.Itoa(rec.Age),
			rec.EndingBalances.AfterTax.StringFixed(2),
			rec.EndingBalances.IRA.StringFixed(2),
			rec.EndingBalances.Roth.StringFixed(2),
			rec.Withdrawals.AfterTax.StringFixed(2),
			rec.Withdrawals.IRA.StringFixed(2),
			rec.Withdrawals.Roth.StringFixed(2),
			rec.RothConversion.StringFixed(2),
			rec.RMDAmount.StringFixed(2),
			rec.Expenses.StringFixed(2),
			rec.SSBenefit.StringFixed(2),
			rec.MAGI.StringFixed(2),
			rec.FederalTax.StringFixed(2),
			rec.CapitalGainsTax.StringFixed(2),
			rec.NIIT.StringFixed(2),
			rec.StateTax.StringFixed(2),
			rec.TotalTax.StringFixed(2),
			rec.IRMAATotal.StringFixed(2),
			rec.HeirValueNominal.StringFixed(2),
			rec.HeirValuePV.StringFixed(2),
			rec.Shortfall.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing CSV row for %d: %w", rec.Year, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// JSONFormatter emits the full report structure as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(data *ReportData) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling report: %w", err)
	}
	return out, nil
}

// FormatComparison renders a comparison set as a styled console table.
func FormatComparison(set *compare.ComparisonSet) []byte {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, titleStyle.Render("SCENARIO COMPARISON"))
	fmt.Fprintf(&buf, "%-20s %16s %16s %16s %16s\n",
		"Scenario", "Total Tax", "Total IRMAA", "Heir PV", "Shortfall")

	writeRow := func(r compare.ScenarioResult) {
		fmt.Fprintf(&buf, "%-20s %16s %16s %16s %16s\n",
			r.Name,
			FormatCurrency(r.Summary.TotalTax),
			FormatCurrency(r.Summary.TotalIRMAA),
			FormatCurrency(r.Summary.FinalHeirPV),
			FormatCurrency(r.Summary.TotalShortfall))
	}
	writeRow(set.Base)
	for _, alt := range set.Alternatives {
		writeRow(alt)
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, headerStyle.Render("DELTAS VS BASE"))
	for _, alt := range set.Alternatives {
		fmt.Fprintf(&buf, "%-20s tax %s, IRMAA %s, heir PV %s\n",
			alt.Name,
			FormatCurrency(alt.TaxDelta),
			FormatCurrency(alt.IRMAADelta),
			FormatCurrency(alt.HeirPVDelta))
	}
	fmt.Fprintf(&buf, "\n%s %s\n", labelStyle.Render("Best for heirs:"), set.BestHeirPV)

	return buf.Bytes()
}
