package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/ramp/cost-calculator/internal/domain"
)

// decimalValue is a pflag.Value holding a decimal amount.
type decimalValue struct {
	d   *decimal.Decimal
	set bool
}

func newDecimalValue(def string, p *decimal.Decimal) *decimalValue {
	if def != "" {
		*p = decimal.RequireFromString(def)
	}
	return &decimalValue{d: p}
}

func (v *decimalValue) String() string {
	if v.d == nil {
		return ""
	}
	return v.d.String()
}

func (v *decimalValue) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%q is not a decimal number", s)
	}
	*v.d = d
	v.set = true
	return nil
}

func (v *decimalValue) Type() string { return "decimal" }

// granularityValue is a pflag.Value accepting the granularity names and synonyms.
type granularityValue struct {
	g *domain.Granularity
}

func (v *granularityValue) String() string { return string(*v.g) }

func (v *granularityValue) Set(s string) error {
	g, err := domain.ParseGranularity(s)
	if err != nil {
		return err
	}
	*v.g = g
	return nil
}

func (v *granularityValue) Type() string { return "granularity" }

var (
	_ pflag.Value = (*decimalValue)(nil)
	_ pflag.Value = (*granularityValue)(nil)
)

// inputFlags are the calculator inputs shared by calculate and sensitivity.
type inputFlags struct {
	current     decimal.Decimal
	reduced     decimal.Decimal
	reducedFlag *decimalValue
	rebuild     int
	horizon     int
	granularity domain.Granularity
	fiscalStart int
}

func (f *inputFlags) register(fs *pflag.FlagSet) {
	f.granularity = domain.GranularityYearly
	fs.Var(newDecimalValue("", &f.current), "current", "Current annual cost of the legacy system in $M (required)")
	f.reducedFlag = newDecimalValue("", &f.reduced)
	fs.Var(f.reducedFlag, "reduced", "Annual cost after rebuild in $M (default 10% of current)")
	fs.IntVar(&f.rebuild, "rebuild", 1, "Rebuild duration in periods")
	fs.IntVar(&f.horizon, "horizon", 0, "Analysis horizon in periods (raised to rebuild + 3 years when shorter)")
	fs.Var(&granularityValue{g: &f.granularity}, "granularity", "Period length: yearly or monthly")
	fs.IntVar(&f.fiscalStart, "fiscal-start", 0, "Label years as federal fiscal years starting here (e.g. 2026)")
}

func (f *inputFlags) inputs() domain.CalculatorInputs {
	in := domain.CalculatorInputs{
		CurrentAnnualCost: f.current,
		ReducedAnnualCost: domain.DefaultReducedCost(f.current),
		RebuildDuration:   f.rebuild,
		AnalysisHorizon:   f.horizon,
		Granularity:       f.granularity,
		FiscalYearStart:   f.fiscalStart,
	}
	if f.reducedFlag.set {
		in.ReducedAnnualCost = f.reduced
	}
	return in
}
