package domain

import (
	"github.com/shopspring/decimal"
)

// Sweepable parameter names.
const (
	ParamReducedCostRatio  = "reduced_cost_ratio"
	ParamRebuildDuration   = "rebuild_duration"
	ParamCurrentAnnualCost = "current_annual_cost"
)

// SensitivityParameter describes a one-dimensional sweep.
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"min_value"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"max_value"`
	Steps       int             `yaml:"steps" json:"steps"`
	Unit        string          `yaml:"unit,omitempty" json:"unit,omitempty"` // "ratio", "periods", "$M"
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
}

// SensitivityPoint is the outcome of the calculator at one swept value.
type SensitivityPoint struct {
	Value            decimal.Decimal  `json:"value"`
	Inputs           CalculatorInputs `json:"inputs"`
	TotalBaseline    decimal.Decimal  `json:"total_baseline"`
	TotalModernized  decimal.Decimal  `json:"total_modernized"`
	TotalSavings     decimal.Decimal  `json:"total_savings"`
	TotalPayouts     decimal.Decimal  `json:"total_payouts"`
	SavingsPercent   decimal.Decimal  `json:"savings_percent"` // total savings as % of total baseline
	EffectiveHorizon int              `json:"effective_horizon"`
}

// SensitivityAnalysis is a completed sweep.
type SensitivityAnalysis struct {
	Parameter SensitivityParameter `json:"parameter"`
	Base      CalculatorInputs     `json:"base"`
	Points    []SensitivityPoint   `json:"points"`
	BestValue decimal.Decimal      `json:"best_value"` // value with the highest total savings
	Spread    decimal.Decimal      `json:"spread"`     // max - min total savings across the sweep
}

// Common sweeps.
var (
	ReducedCostRatioParam = SensitivityParameter{
		Name:        ParamReducedCostRatio,
		MinValue:    decimal.NewFromFloat(0.05),
		MaxValue:    decimal.NewFromFloat(0.50),
		Steps:       10,
		Unit:        "ratio",
		Description: "Post-rebuild cost as a fraction of the current annual cost",
	}

	RebuildDurationParam = SensitivityParameter{
		Name:        ParamRebuildDuration,
		MinValue:    decimal.NewFromInt(1),
		MaxValue:    decimal.NewFromInt(5),
		Steps:       5,
		Unit:        "periods",
		Description: "Length of the rebuild phase",
	}
)
