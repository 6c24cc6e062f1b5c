// Package config loads and validates projection parameter files.
package config

import (
	"fmt"
	"os"

	"github.com/khoward/glidepath/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PlanFile is the on-disk shape: one base parameter set plus optional
// named scenario overrides for comparison runs.
type PlanFile struct {
	Base      domain.ParameterSet                  `yaml:"base" json:"base"`
	Scenarios map[string]domain.ParameterOverrides `yaml:"scenarios" json:"scenarios,omitempty"`
}

// InputParser handles parsing of plan files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML file and validates it.
func (ip *InputParser) LoadFromFile(filename string) (*PlanFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Load(data)
}

// Load parses and validates plan bytes.
func (ip *InputParser) Load(data []byte) (*PlanFile, error) {
	var plan PlanFile
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return &plan, nil
}

// ValidatePlan checks the base parameter set and every scenario merge for
// the mistakes a projection run cannot recover from.
func (ip *InputParser) ValidatePlan(plan *PlanFile) error {
	if err := ip.validateParams(&plan.Base); err != nil {
		return fmt.Errorf("base parameters: %w", err)
	}
	for name, ov := range plan.Scenarios {
		merged := plan.Base.Merge(ov)
		if err := ip.validateParams(&merged); err != nil {
			return fmt.Errorf("scenario %q: %w", name, err)
		}
	}
	return nil
}

func (ip *InputParser) validateParams(ps *domain.ParameterSet) error {
	if ps.Years() == 0 {
		return fmt.Errorf("end year %d must not precede start year %d", ps.EndYear, ps.StartYear)
	}
	if !ps.FilingStatus.IsValid() {
		return fmt.Errorf("filing status must be %q or %q, got %q",
			domain.FilingSingle, domain.FilingMarriedFilingJointly, ps.FilingStatus)
	}
	if ps.BirthYear <= 0 || ps.BirthYear >= ps.StartYear {
		return fmt.Errorf("birth year %d must be positive and precede the start year", ps.BirthYear)
	}

	for name, balance := range map[string]decimal.Decimal{
		"after-tax balance": ps.AfterTaxBalance,
		"after-tax basis":   ps.AfterTaxBasis,
		"ira balance":       ps.IRABalance,
		"roth balance":      ps.RothBalance,
	} {
		if balance.IsNegative() {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	if ps.AfterTaxBasis.GreaterThan(ps.AfterTaxBalance) {
		return fmt.Errorf("after-tax basis %s exceeds after-tax balance %s", ps.AfterTaxBasis, ps.AfterTaxBalance)
	}

	switch ps.Returns.Mode {
	case domain.ReturnModeFixed, domain.ReturnModeBlended:
	case "":
		return fmt.Errorf("return mode is required (%q or %q)", domain.ReturnModeFixed, domain.ReturnModeBlended)
	default:
		return fmt.Errorf("unknown return mode %q", ps.Returns.Mode)
	}

	ratio := ps.Taxes.CapitalGainsRatio
	if ratio.IsNegative() || ratio.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("capital gains ratio must be within [0, 1], got %s", ratio)
	}

	if len(ps.Heirs) > 0 {
		sum := ps.HeirSplitSum()
		if diff := sum.Sub(decimal.NewFromInt(1)).Abs(); diff.GreaterThan(decimal.NewFromFloat(0.0001)) {
			return fmt.Errorf("heir split percentages must sum to 1.0, got %s", sum)
		}
		for i, heir := range ps.Heirs {
			if heir.SplitPercent.IsNegative() {
				return fmt.Errorf("heir %d (%s): split percent must not be negative", i, heir.Name)
			}
		}
	}

	if ps.Survivor != nil {
		if ps.Survivor.DeathYear < ps.StartYear || ps.Survivor.DeathYear > ps.EndYear {
			return fmt.Errorf("survivor death year %d falls outside the projection window %d-%d",
				ps.Survivor.DeathYear, ps.StartYear, ps.EndYear)
		}
	}

	return nil
}
