// Package compare runs one projection per named scenario and reports each
// alternative against the base parameter set.
package compare

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/khoward/glidepath/internal/calculation"
	"github.com/khoward/glidepath/internal/domain"
	"github.com/shopspring/decimal"
)

// ScenarioResult is one fully projected scenario with its deltas against
// the base. Deltas on the base result itself are zero.
type ScenarioResult struct {
	Name    string                    `json:"name"`
	Params  domain.ParameterSet       `json:"params"`
	Records []domain.ProjectionRecord `json:"records"`
	Summary domain.Summary            `json:"summary"`

	TaxDelta       decimal.Decimal `json:"taxDelta"`
	IRMAADelta     decimal.Decimal `json:"irmaaDelta"`
	HeirPVDelta    decimal.Decimal `json:"heirPvDelta"`
	ShortfallDelta decimal.Decimal `json:"shortfallDelta"`
}

// ComparisonSet is the outcome of a multi-scenario run. Alternatives are
// sorted by name so output is deterministic regardless of completion order.
type ComparisonSet struct {
	Base         ScenarioResult   `json:"base"`
	Alternatives []ScenarioResult `json:"alternatives"`

	// BestHeirPV names the scenario leaving the most to heirs in present
	// value terms, the base included.
	BestHeirPV string `json:"bestHeirPv"`
}

// Engine fans scenarios out over the projection engine.
type Engine struct {
	Calc *calculation.ProjectionEngine
}

// NewEngine wraps a projection engine for comparison runs.
func NewEngine(calc *calculation.ProjectionEngine) *Engine {
	return &Engine{Calc: calc}
}

// CompareScenarios projects the base parameter set and every named
// override merged onto it. Scenarios are independent, so the alternatives
// run concurrently; the first failure aborts the whole comparison.
func (e *Engine) CompareScenarios(ctx context.Context, base domain.ParameterSet, overrides map[string]domain.ParameterOverrides) (*ComparisonSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	baseRecords, err := e.Calc.GenerateProjections(&base)
	if err != nil {
		return nil, fmt.Errorf("base scenario: %w", err)
	}
	baseResult := ScenarioResult{
		Name:    "base",
		Params:  base,
		Records: baseRecords,
		Summary: calculation.CalculateSummary(baseRecords),
	}

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]ScenarioResult, len(names))
	errs := make([]error, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string, ov domain.ParameterOverrides) {
			defer wg.Done()
			merged := base.Merge(ov)
			records, err := e.Calc.GenerateProjections(&merged)
			if err != nil {
				errs[i] = fmt.Errorf("scenario %q: %w", name, err)
				return
			}
			results[i] = ScenarioResult{
				Name:    name,
				Params:  merged,
				Records: records,
				Summary: calculation.CalculateSummary(records),
			}
		}(i, name, overrides[name])
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	set := &ComparisonSet{Base: baseResult, Alternatives: results}
	for i := range set.Alternatives {
		set.Alternatives[i].TaxDelta = set.Alternatives[i].Summary.TotalTax.Sub(baseResult.Summary.TotalTax)
		set.Alternatives[i].IRMAADelta = set.Alternatives[i].Summary.TotalIRMAA.Sub(baseResult.Summary.TotalIRMAA)
		set.Alternatives[i].HeirPVDelta = set.Alternatives[i].Summary.FinalHeirPV.Sub(baseResult.Summary.FinalHeirPV)
		set.Alternatives[i].ShortfallDelta = set.Alternatives[i].Summary.TotalShortfall.Sub(baseResult.Summary.TotalShortfall)
	}

	set.BestHeirPV = baseResult.Name
	best := baseResult.Summary.FinalHeirPV
	for _, alt := range set.Alternatives {
		if alt.Summary.FinalHeirPV.GreaterThan(best) {
			best = alt.Summary.FinalHeirPV
			set.BestHeirPV = alt.Name
		}
	}

	return set, nil
}
