package calculation

import (
	"fmt"

	"github.com/khoward/glidepath/internal/domain"
	"github.com/khoward/glidepath/internal/tables"
	"github.com/shopspring/decimal"
)

// DefaultMaxTaxIterations bounds the withdrawal/tax fixed-point loop when
// the caller does not set a limit.
const DefaultMaxTaxIterations = 10

// taxConvergenceTolerance is the dollar gap at which the withdrawal/tax
// loop is considered converged.
var taxConvergenceTolerance = decimal.NewFromInt(1)

// ProjectionEngine runs year-by-year retirement projections. The zero
// value is not usable; construct with NewProjectionEngine.
type ProjectionEngine struct {
	Logger Logger
	Debug  bool
}

// NewProjectionEngine creates an engine with a no-op logger.
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{Logger: NopLogger{}}
}

// GenerateProjections simulates every year from StartYear through EndYear
// and returns one record per year in chronological order. Each year:
//
//  1. Expenses, Social Security, and scheduled gain harvests are resolved
//     for the year, with survivor scaling applied from the death year
//     onward.
//  2. The scheduled Roth conversion is applied first, clamped only to the
//     IRA beginning balance; cash withdrawals draw on what remains.
//  3. IRMAA is computed up front from the MAGI two years prior, since it
//     does not depend on anything decided this year. It is reported as a
//     cost on the record but does not enter the cash need.
//  4. The cash need (expenses plus estimated taxes, net of Social
//     Security) is funded after-tax first, then IRA, then Roth, with the
//     RMD forced through the IRA leg. Withdrawals change taxable income
//     which changes taxes which changes the need, so the loop repeats
//     until the tax estimate moves less than a dollar.
//  5. Unfundable need is recorded as a shortfall, never returned as an
//     error; balances floor at zero and the projection continues.
//  6. Remaining balances grow at the configured fixed rates, or at
//     blended rates derived from the three-tier risk allocation.
func (pe *ProjectionEngine) GenerateProjections(params *domain.ParameterSet) ([]domain.ProjectionRecord, error) {
	// A reversed year window is not worth an error; the projection is
	// total over well-formed parameters and just produces no years.
	years := params.Years()
	if years == 0 {
		return []domain.ProjectionRecord{}, nil
	}
	if !params.FilingStatus.IsValid() {
		return nil, fmt.Errorf("unsupported filing status %q", params.FilingStatus)
	}
	if len(params.Heirs) > 0 {
		if diff := params.HeirSplitSum().Sub(decimalOne).Abs(); diff.GreaterThan(decimal.NewFromFloat(0.0001)) {
			return nil, fmt.Errorf("heir split percentages sum to %s, want 1.0", params.HeirSplitSum())
		}
	}

	maxIterations := params.Calc.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxTaxIterations
	}
	if !params.Calc.IterativeTax {
		maxIterations = 1
	}

	stateCalc := NewStateTaxCalculator(params.Taxes.StateCode, params.Taxes.StateRate, params.Taxes.SSExemptFromState)
	bracketRate := params.Taxes.BracketInflationRate

	balances := domain.AccountBalances{
		AfterTax:      params.AfterTaxBalance,
		AfterTaxBasis: params.AfterTaxBasis,
		IRA:           params.IRABalance,
		Roth:          params.RothBalance,
	}
	if balances.AfterTaxBasis.GreaterThan(balances.AfterTax) {
		balances.AfterTaxBasis = balances.AfterTax
	}

	records := make([]domain.ProjectionRecord, 0, years)

	for n := 0; n < years; n++ {
		year := params.StartYear + n
		age := year - params.BirthYear

		survivor := params.Survivor != nil && year >= params.Survivor.DeathYear
		fs := params.FilingStatus
		people := params.PeopleOnMedicare
		if people <= 0 {
			people = 1
			if fs == domain.FilingMarriedFilingJointly {
				people = 2
			}
		}
		if survivor {
			fs = domain.FilingSingle
			people = 1
		}

		fedYears := year - tables.FederalAnchorYear
		fedBrackets := tables.FederalBrackets(fs).Inflate(bracketRate, fedYears)
		cgBrackets := tables.CapitalGainsBrackets(fs).Inflate(bracketRate, fedYears)
		stdDeduction := tables.StandardDeduction(fs).Mul(tables.InflationFactor(bracketRate, fedYears)).Round(0)
		tier1, tier2 := tables.SSThresholds(fs)
		niitThreshold := tables.NIITThreshold(fs)
		irmaaTable := tables.IRMAATiers(fs).Inflate(bracketRate, year-tables.IRMAAAnchorYear)

		begin := balances

		expenses := params.Expenses.BaseAnnual.Mul(compound(params.Expenses.InflationRate, n))
		if override, ok := params.Expenses.Overrides.Lookup(year); ok {
			expenses = override
		}
		ssBenefit := params.SocialSecurity.MonthlyBenefit.Mul(decimalTwelve).Mul(compound(params.SocialSecurity.COLARate, n))
		if survivor {
			expenses = expenses.Mul(params.Survivor.ExpensePercent)
			ssBenefit = ssBenefit.Mul(params.Survivor.SSPercent)
		}
		expenses = expenses.Round(2)
		ssBenefit = ssBenefit.Round(2)

		// The conversion moves IRA dollars to Roth before anything else
		// happens this year; withdrawals can only touch what it leaves.
		conversion := decimal.Min(params.RothConversions.Amount(year), begin.IRA)
		if conversion.IsNegative() {
			conversion = decimal.Zero
		}
		iraAvailable := begin.IRA.Sub(conversion)

		harvest := params.GainHarvests.Amount(year)
		if unrealized := begin.AfterTax.Sub(begin.AfterTaxBasis); harvest.GreaterThan(unrealized) {
			harvest = unrealized
		}
		if harvest.IsNegative() {
			harvest = decimal.Zero
		}

		rmdAmount, rmdDivisor := RequiredMinimumDistribution(begin.IRA, age)

		// IRMAA keys off income from two years back, so it is settled
		// before the withdrawal loop runs.
		var irmaa IRMAAResult
		if age >= 65 {
			irmaa = IRMAA(pe.lookbackMAGI(params, records, n), irmaaTable, people)
		}

		var (
			withdrawals    domain.AccountWithdrawals
			excessRMD      decimal.Decimal
			basisRecovered decimal.Decimal
			shortfall      decimal.Decimal
			capitalGains   decimal.Decimal
			taxableSS      decimal.Decimal
			ordinaryIncome decimal.Decimal
			magi           decimal.Decimal
			federalTax     decimal.Decimal
			cgTax          decimal.Decimal
			niit           decimal.Decimal
			stateTax       decimal.Decimal
			totalTax       decimal.Decimal
		)

		taxEstimate := decimal.Zero
		iterations := 0
		for {
			iterations++

			need := expenses.Add(taxEstimate).Sub(ssBenefit)
			if need.IsNegative() {
				need = decimal.Zero
			}

			withdrawals = domain.AccountWithdrawals{}
			excessRMD = decimal.Zero

			withdrawals.AfterTax = decimal.Min(need, begin.AfterTax)
			remaining := need.Sub(withdrawals.AfterTax)

			withdrawals.IRA = decimal.Min(remaining, iraAvailable)
			if forced := decimal.Min(rmdAmount, iraAvailable); withdrawals.IRA.LessThan(forced) {
				withdrawals.IRA = forced
			}
			remaining = remaining.Sub(withdrawals.IRA)
			if remaining.IsNegative() {
				excessRMD = remaining.Neg()
				remaining = decimal.Zero
			}

			withdrawals.Roth = decimal.Min(remaining, begin.Roth)
			shortfall = remaining.Sub(withdrawals.Roth)

			// Income and tax for this candidate withdrawal mix.
			atGains := withdrawals.AfterTax.Mul(params.Taxes.CapitalGainsRatio)
			basisRecovered = withdrawals.AfterTax.Sub(atGains)
			capitalGains = atGains.Add(harvest)

			iraOrdinary := withdrawals.IRA.Add(conversion)
			taxableSS = TaxableSocialSecurity(ssBenefit, iraOrdinary.Add(capitalGains), tier1, tier2)
			ordinaryIncome = iraOrdinary.Add(taxableSS)
			magi = ordinaryIncome.Add(capitalGains)

			taxableOrdinary := ordinaryIncome.Sub(stdDeduction)
			if taxableOrdinary.IsNegative() {
				taxableOrdinary = decimal.Zero
			}

			federalTax = FederalTax(taxableOrdinary, fedBrackets)
			cgTax = CapitalGainsTax(capitalGains, taxableOrdinary, cgBrackets)
			niit = NetInvestmentIncomeTax(capitalGains, magi, niitThreshold)
			stateTax = stateCalc.CalculateTax(StateTaxableIncome{
				OrdinaryIncome:    iraOrdinary,
				InvestmentIncome:  capitalGains,
				TaxableSSBenefits: taxableSS,
			})
			totalTax = federalTax.Add(cgTax).Add(niit).Add(stateTax)

			if iterations >= maxIterations || totalTax.Sub(taxEstimate).Abs().LessThanOrEqual(taxConvergenceTolerance) {
				break
			}
			taxEstimate = totalTax
		}

		if pe.Debug {
			pe.Logger.Debugf("year %d: need converged after %d iterations, tax %s, withdrawals %s",
				year, iterations, totalTax.StringFixed(2), withdrawals.Total().StringFixed(2))
		}

		// Apply withdrawals, conversion, and the forced-RMD surplus. The
		// surplus was already taxed this year so it lands in after-tax at
		// full basis. Harvested gains reset basis on what they touched.
		end := domain.AccountBalances{
			AfterTax:      begin.AfterTax.Sub(withdrawals.AfterTax).Add(excessRMD),
			AfterTaxBasis: begin.AfterTaxBasis.Sub(basisRecovered).Add(excessRMD).Add(harvest),
			IRA:           begin.IRA.Sub(withdrawals.IRA).Sub(conversion),
			Roth:          begin.Roth.Sub(withdrawals.Roth).Add(conversion),
		}
		end = clampBalances(end)

		var riskAlloc *domain.RiskBreakdown
		var rateAT, rateIRA, rateRoth decimal.Decimal
		if params.Returns.Mode == domain.ReturnModeBlended {
			breakdown := AllocateRiskTiers(end.AfterTax, end.IRA, end.Roth, params.Returns.Blended)
			riskAlloc = &breakdown
			rateAT = breakdown.AfterTax.BlendedRate
			rateIRA = breakdown.IRA.BlendedRate
			rateRoth = breakdown.Roth.BlendedRate
		} else {
			rateAT = params.Returns.Fixed.AfterTax
			rateIRA = params.Returns.Fixed.IRA
			rateRoth = params.Returns.Fixed.Roth
		}

		end.AfterTax = end.AfterTax.Mul(decimalOne.Add(rateAT)).Round(2)
		end.IRA = end.IRA.Mul(decimalOne.Add(rateIRA)).Round(2)
		end.Roth = end.Roth.Mul(decimalOne.Add(rateRoth)).Round(2)
		end = clampBalances(end)

		record := domain.ProjectionRecord{
			Year:           year,
			Age:            age,
			YearsFromStart: n,

			BeginningBalances: begin,
			EndingBalances:    end,
			Withdrawals:       withdrawals,

			RMDAmount:  rmdAmount,
			RMDDivisor: rmdDivisor,

			RothConversion: conversion,

			Expenses:   expenses,
			SSBenefit:  ssBenefit,
			TaxableSS:  taxableSS.Round(2),
			IsSurvivor: survivor,

			OrdinaryIncome:     ordinaryIncome.Round(2),
			CapitalGainsIncome: capitalGains.Round(2),
			MAGI:               magi.Round(2),
			FederalTax:         federalTax,
			CapitalGainsTax:    cgTax,
			NIIT:               niit,
			StateTax:           stateTax,
			TotalTax:           totalTax,

			IRMAAMagi:  pe.lookbackMAGI(params, records, n),
			IRMAAPartB: irmaa.PartB,
			IRMAAPartD: irmaa.PartD,
			IRMAATotal: irmaa.Total,

			Shortfall:    shortfall.Round(2),
			HasShortfall: shortfall.GreaterThan(decimal.Zero),

			TaxIterations: iterations,

			RiskAllocation: riskAlloc,
		}

		if n > 0 {
			prev := records[n-1]
			record.CumulativeTax = prev.CumulativeTax.Add(record.TotalTax)
			record.CumulativeIRMAA = prev.CumulativeIRMAA.Add(record.IRMAATotal)
			record.CumulativeExpenses = prev.CumulativeExpenses.Add(record.Expenses)
			record.CumulativeCapitalGains = prev.CumulativeCapitalGains.Add(record.CapitalGainsIncome)
		} else {
			record.CumulativeTax = record.TotalTax
			record.CumulativeIRMAA = record.IRMAATotal
			record.CumulativeExpenses = record.Expenses
			record.CumulativeCapitalGains = record.CapitalGainsIncome
		}

		record.HeirValueNominal = SimpleHeirValue(end, params.Heirs)
		record.HeirValuePV = PresentValue(record.HeirValueNominal, params.Calc.DiscountRate, n).Round(2)

		records = append(records, record)
		balances = end
	}

	return records, nil
}

// lookbackMAGI resolves the MAGI from two years prior: projected history
// once the run is deep enough, seeded pre-projection values before that.
func (pe *ProjectionEngine) lookbackMAGI(params *domain.ParameterSet, records []domain.ProjectionRecord, n int) decimal.Decimal {
	switch {
	case n >= 2:
		return records[n-2].MAGI
	case n == 1:
		return params.MAGIHistory.OneYearPrior
	default:
		return params.MAGIHistory.TwoYearsPrior
	}
}

// clampBalances floors every balance at zero and keeps the after-tax
// basis from exceeding the after-tax balance.
func clampBalances(b domain.AccountBalances) domain.AccountBalances {
	if b.AfterTax.IsNegative() {
		b.AfterTax = decimal.Zero
	}
	if b.IRA.IsNegative() {
		b.IRA = decimal.Zero
	}
	if b.Roth.IsNegative() {
		b.Roth = decimal.Zero
	}
	if b.AfterTaxBasis.IsNegative() {
		b.AfterTaxBasis = decimal.Zero
	}
	if b.AfterTaxBasis.GreaterThan(b.AfterTax) {
		b.AfterTaxBasis = b.AfterTax
	}
	return b
}
