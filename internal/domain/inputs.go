package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Model constants shared by the calculator and its callers.
const (
	MonthsPerYear = 12

	// IncentiveWindowYears is the number of post-rebuild years that carry an incentive payout.
	IncentiveWindowYears = 3

	// MaxHorizonYears caps the analysis horizon so a single computation stays small.
	MaxHorizonYears = 50

	// DefaultReducedCostRatio is the post-rebuild cost assumed when a scenario omits one (10% of current).
	DefaultReducedCostRatio = "0.10"
)

// Granularity selects the length of one period in every series.
type Granularity string

const (
	GranularityYearly  Granularity = "yearly"
	GranularityMonthly Granularity = "monthly"
)

// ParseGranularity accepts the canonical names plus a few common synonyms.
// An empty string resolves to yearly.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yearly", "year", "annual", "annually", "y":
		return GranularityYearly, nil
	case "monthly", "month", "m":
		return GranularityMonthly, nil
	default:
		return "", &ValidationError{Field: "granularity", Reason: fmt.Sprintf("unknown granularity %q (use yearly or monthly)", s)}
	}
}

// UnmarshalText lets YAML, JSON and flag values share ParseGranularity.
func (g *Granularity) UnmarshalText(text []byte) error {
	parsed, err := ParseGranularity(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// PeriodsPerYear returns 12 for monthly, 1 for yearly and 0 for anything else.
func (g Granularity) PeriodsPerYear() int {
	switch g {
	case GranularityMonthly:
		return MonthsPerYear
	case GranularityYearly, "":
		return 1
	default:
		return 0
	}
}

// Unit is the singular period name used in labels ("month", "year").
func (g Granularity) Unit() string {
	if g == GranularityMonthly {
		return "month"
	}
	return "year"
}

// IsValid reports whether g is a known granularity (empty counts as yearly).
func (g Granularity) IsValid() bool { return g.PeriodsPerYear() > 0 }

// OrDefault resolves the empty granularity to yearly.
func (g Granularity) OrDefault() Granularity {
	if g == "" {
		return GranularityYearly
	}
	return g
}

// CalculatorInputs are the four scalar inputs of the amortization model plus
// the period granularity they are expressed in. Costs are in $M.
type CalculatorInputs struct {
	CurrentAnnualCost decimal.Decimal `yaml:"current_annual_cost" json:"current_annual_cost"`
	ReducedAnnualCost decimal.Decimal `yaml:"reduced_annual_cost" json:"reduced_annual_cost"`
	RebuildDuration   int             `yaml:"rebuild_duration" json:"rebuild_duration"`   // periods
	AnalysisHorizon   int             `yaml:"analysis_horizon" json:"analysis_horizon"`   // periods
	Granularity       Granularity     `yaml:"granularity,omitempty" json:"granularity,omitempty"`
	FiscalYearStart   int             `yaml:"fiscal_year_start,omitempty" json:"fiscal_year_start,omitempty"` // 0 = "Year N" labels
}

// PeriodsPerYear is the resolved period count for the inputs' granularity.
func (in CalculatorInputs) PeriodsPerYear() int {
	return in.Granularity.OrDefault().PeriodsPerYear()
}

// IncentiveWindow is the number of periods after rebuild that carry a payout.
func (in CalculatorInputs) IncentiveWindow() int {
	return IncentiveWindowYears * in.PeriodsPerYear()
}

// MinimumHorizon is the smallest horizon the calculator will compute against.
func (in CalculatorInputs) MinimumHorizon() int {
	return in.RebuildDuration + in.IncentiveWindow()
}

// MaxHorizon is the largest accepted horizon in periods.
func (in CalculatorInputs) MaxHorizon() int {
	return MaxHorizonYears * in.PeriodsPerYear()
}

// Validate checks every precondition of the calculator. A horizon below the
// minimum is not an error here; the calculator raises it.
func (in CalculatorInputs) Validate() error {
	if !in.Granularity.IsValid() {
		return &ValidationError{Field: "granularity", Reason: fmt.Sprintf("unknown granularity %q (use yearly or monthly)", string(in.Granularity))}
	}
	if !in.CurrentAnnualCost.IsPositive() {
		return &ValidationError{Field: "current_annual_cost", Reason: "must be positive"}
	}
	if in.ReducedAnnualCost.IsNegative() {
		return &ValidationError{Field: "reduced_annual_cost", Reason: "cannot be negative"}
	}
	if in.RebuildDuration <= 0 {
		return &ValidationError{Field: "rebuild_duration", Reason: "must be at least one period"}
	}
	if in.AnalysisHorizon < 0 {
		return &ValidationError{Field: "analysis_horizon", Reason: "cannot be negative"}
	}
	// Compared by subtraction so a huge rebuild cannot overflow the sum.
	if in.RebuildDuration > in.MaxHorizon()-in.IncentiveWindow() {
		return &ValidationError{Field: "rebuild_duration", Reason: fmt.Sprintf("rebuild plus the %d-year incentive window exceeds the %d-year limit", IncentiveWindowYears, MaxHorizonYears)}
	}
	if in.AnalysisHorizon > in.MaxHorizon() {
		return &ValidationError{Field: "analysis_horizon", Reason: fmt.Sprintf("cannot exceed %d %ss", in.MaxHorizon(), in.Granularity.OrDefault().Unit())}
	}
	if in.FiscalYearStart < 0 {
		return &ValidationError{Field: "fiscal_year_start", Reason: "cannot be negative"}
	}
	return nil
}

// SavingsAreNegative reports whether the reduced cost exceeds the current cost.
func (in CalculatorInputs) SavingsAreNegative() bool {
	return in.ReducedAnnualCost.GreaterThan(in.CurrentAnnualCost)
}

// DefaultReducedCost returns DefaultReducedCostRatio of the given current cost.
func DefaultReducedCost(current decimal.Decimal) decimal.Decimal {
	return current.Mul(decimal.RequireFromString(DefaultReducedCostRatio))
}
