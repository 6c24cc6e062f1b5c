package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/khoward/glidepath/internal/calculation"
	"github.com/khoward/glidepath/internal/compare"
	"github.com/khoward/glidepath/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportFixture(t *testing.T) *ReportData {
	t.Helper()
	params := &domain.ParameterSet{
		StartYear:    2026,
		EndYear:      2028,
		BirthYear:    1964,
		FilingStatus: domain.FilingMarriedFilingJointly,

		AfterTaxBalance: decimal.NewFromInt(500000),
		AfterTaxBasis:   decimal.NewFromInt(400000),
		IRABalance:      decimal.NewFromInt(1000000),
		RothBalance:     decimal.NewFromInt(300000),

		Returns: domain.ReturnAssumptions{
			Mode: domain.ReturnModeFixed,
			Fixed: domain.FixedReturns{
				AfterTax: decimal.NewFromFloat(0.05),
				IRA:      decimal.NewFromFloat(0.06),
				Roth:     decimal.NewFromFloat(0.04),
			},
		},
		SocialSecurity: domain.SocialSecurityParams{
			MonthlyBenefit: decimal.NewFromInt(3000),
			COLARate:       decimal.NewFromFloat(0.02),
		},
		Expenses: domain.ExpenseParams{
			BaseAnnual:    decimal.NewFromInt(120000),
			InflationRate: decimal.NewFromFloat(0.025),
		},
		Taxes: domain.TaxParams{
			BracketInflationRate: decimal.NewFromFloat(0.02),
			CapitalGainsRatio:    decimal.NewFromFloat(0.5),
		},
		Calc: domain.CalcToggles{IterativeTax: true, DiscountRate: decimal.NewFromFloat(0.03)},
	}

	records, err := calculation.NewProjectionEngine().GenerateProjections(params)
	require.NoError(t, err)
	return &ReportData{Records: records, Summary: calculation.CalculateSummary(records)}
}

func TestNewFormatter(t *testing.T) {
	for name, want := range map[string]string{
		"console": "console",
		"":        "console",
		"csv":     "csv",
		"json":    "json",
	} {
		f, err := NewFormatter(name)
		require.NoError(t, err)
		assert.Equal(t, want, f.Name())
	}

	_, err := NewFormatter("xml")
	assert.Error(t, err)
}

func TestConsoleFormatter(t *testing.T) {
	data := reportFixture(t)
	out, err := (ConsoleFormatter{}).Format(data)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "RETIREMENT PROJECTION")
	assert.Contains(t, text, "2026")
	assert.Contains(t, text, "2028")
	assert.Contains(t, text, "Total tax:")
	assert.NotContains(t, text, "SHORTFALL", "a funded plan reports no shortfall")
}

func TestCSVFormatter(t *testing.T) {
	data := reportFixture(t)
	out, err := (CSVFormatter{}).Format(data)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4, "header plus one row per year")
	assert.Equal(t, "year", rows[0][0])
	assert.Equal(t, "2026", rows[1][0])
	assert.Equal(t, len(rows[0]), len(rows[1]), "rows match the header width")
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	data := reportFixture(t)
	out, err := (JSONFormatter{}).Format(data)
	require.NoError(t, err)

	var decoded ReportData
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Len(t, decoded.Records, 3)
	assert.Equal(t, data.Summary.FirstYear, decoded.Summary.FirstYear)
}

func TestFormatCurrencyAndPercentage(t *testing.T) {
	assert.Equal(t, "$1234.50", FormatCurrency(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "5.00%", FormatPercentage(decimal.NewFromFloat(0.05)))
}

func TestConsoleFormatterFlagsShortfall(t *testing.T) {
	data := reportFixture(t)
	data.Records[0].HasShortfall = true
	data.Records[0].Shortfall = decimal.NewFromInt(5000)

	out, err := (ConsoleFormatter{}).Format(data)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(out), "SHORTFALL"))
}

func TestFormatSummary(t *testing.T) {
	data := reportFixture(t)
	out := string(FormatSummary(data.Summary))

	assert.Contains(t, out, "SUMMARY")
	assert.Contains(t, out, "Total tax:")
	assert.Contains(t, out, FormatCurrency(data.Summary.TotalTax))
	assert.NotContains(t, out, "YEAR BY YEAR")
}

func TestFormatComparison(t *testing.T) {
	data := reportFixture(t)

	set := &compare.ComparisonSet{
		Base: compare.ScenarioResult{Name: "base", Summary: data.Summary},
		Alternatives: []compare.ScenarioResult{{
			Name:        "lean_budget",
			Summary:     data.Summary,
			TaxDelta:    decimal.NewFromInt(-1200),
			HeirPVDelta: decimal.NewFromInt(50000),
		}},
		BestHeirPV: "lean_budget",
	}

	out := string(FormatComparison(set))
	assert.Contains(t, out, "SCENARIO COMPARISON")
	assert.Contains(t, out, "lean_budget")
	assert.Contains(t, out, "DELTAS VS BASE")
	assert.Contains(t, out, "Best for heirs:")
	assert.Contains(t, out, "$-1200.00")
}
