package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Scenario is one named set of calculator inputs in a scenario file.
// ReducedAnnualCost is optional and defaults to DefaultReducedCostRatio of the current cost.
type Scenario struct {
	Name              string           `yaml:"name" json:"name"`
	Description       string           `yaml:"description,omitempty" json:"description,omitempty"`
	CurrentAnnualCost decimal.Decimal  `yaml:"current_annual_cost" json:"current_annual_cost"`
	ReducedAnnualCost *decimal.Decimal `yaml:"reduced_annual_cost,omitempty" json:"reduced_annual_cost,omitempty"`
	RebuildDuration   int              `yaml:"rebuild_duration" json:"rebuild_duration"`
	AnalysisHorizon   int              `yaml:"analysis_horizon" json:"analysis_horizon"`
	Granularity       Granularity      `yaml:"granularity,omitempty" json:"granularity,omitempty"` // overrides Configuration.Granularity
}

// Configuration is the top-level scenario file.
type Configuration struct {
	Granularity     Granularity `yaml:"granularity,omitempty" json:"granularity,omitempty"`
	FiscalYearStart int         `yaml:"fiscal_year_start,omitempty" json:"fiscal_year_start,omitempty"`
	Scenarios       []Scenario  `yaml:"scenarios" json:"scenarios"`
}

// CalculatorInputs resolves a scenario against the file-level defaults.
func (s Scenario) CalculatorInputs(cfg *Configuration) CalculatorInputs {
	in := CalculatorInputs{
		CurrentAnnualCost: s.CurrentAnnualCost,
		RebuildDuration:   s.RebuildDuration,
		AnalysisHorizon:   s.AnalysisHorizon,
		Granularity:       s.Granularity,
	}
	if s.ReducedAnnualCost != nil {
		in.ReducedAnnualCost = *s.ReducedAnnualCost
	} else {
		in.ReducedAnnualCost = DefaultReducedCost(s.CurrentAnnualCost)
	}
	if cfg != nil {
		if in.Granularity == "" {
			in.Granularity = cfg.Granularity
		}
		in.FiscalYearStart = cfg.FiscalYearStart
	}
	in.Granularity = in.Granularity.OrDefault()
	return in
}

// GenerateAssumptions lists the modeling assumptions rendered in detailed outputs.
func (c *Configuration) GenerateAssumptions() []string {
	g := GranularityYearly
	if c != nil {
		g = c.Granularity.OrDefault()
	}
	assumptions := []string{
		fmt.Sprintf("Costs are modeled per %s (%d period(s) per year); amounts in $M", g.Unit(), g.PeriodsPerYear()),
		"No savings are realized while the rebuild is in progress; the legacy cost is still paid",
		"Incentive payout: 50% of savings in year 1, 25% in year 2, 12.5% in year 3 after rebuild, none thereafter",
		fmt.Sprintf("Analysis horizon is raised to at least rebuild + %d years", IncentiveWindowYears),
		"Baseline is the legacy cost had no modernization occurred (comparison basis, not billed)",
	}
	if c != nil && c.FiscalYearStart > 0 {
		assumptions = append(assumptions, fmt.Sprintf("Year labels are federal fiscal years starting FY%d", c.FiscalYearStart))
	}
	return assumptions
}

// ScenarioResult pairs a scenario with its computed result.
type ScenarioResult struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Result      *AmortizationResult `json:"result"`
}

// ScenarioComparison is the output of a multi-scenario run and the input to every report formatter.
type ScenarioComparison struct {
	Scenarios    []ScenarioResult `json:"scenarios"`
	BestScenario string           `json:"best_scenario"` // highest total savings
	Assumptions  []string         `json:"assumptions"`
	GeneratedAt  time.Time        `json:"generated_at"`
}

// Rounded returns a copy whose results are rounded with AmortizationResult.Rounded.
func (c *ScenarioComparison) Rounded(places int32) *ScenarioComparison {
	if c == nil {
		return nil
	}
	out := *c
	out.Scenarios = make([]ScenarioResult, len(c.Scenarios))
	for i, sc := range c.Scenarios {
		sc.Result = sc.Result.Rounded(places)
		out.Scenarios[i] = sc
	}
	return &out
}
