package calculation

import (
	"github.com/ramp/cost-calculator/internal/domain"
	money "github.com/ramp/cost-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// MinimumHorizon returns the smallest horizon, in periods, that covers the
// rebuild plus the full incentive window.
func MinimumHorizon(rebuild int, g domain.Granularity) int {
	return rebuild + domain.IncentiveWindowYears*g.OrDefault().PeriodsPerYear()
}

// NormalizeInputs validates the inputs and raises a short horizon to the
// minimum. The returned bool reports whether the horizon was raised.
func NormalizeInputs(in domain.CalculatorInputs) (domain.CalculatorInputs, bool, error) {
	in.Granularity = in.Granularity.OrDefault()
	if err := in.Validate(); err != nil {
		return in, false, err
	}
	if minimum := MinimumHorizon(in.RebuildDuration, in.Granularity); in.AnalysisHorizon < minimum {
		in.AnalysisHorizon = minimum
		return in, true, nil
	}
	return in, false, nil
}

// Compute runs the amortization model. It is pure: the same inputs always
// produce an equal result and nothing is cached between calls. A result that
// fails CheckInvariants is never returned.
//
// During the rebuild the legacy cost is still paid (baseline), nothing is
// spent on the modernized system and no savings are realized. Afterwards the
// modernized cost is the steady-state cost plus the incentive payout, which is
// a declining share of the raw per-period savings.
func Compute(in domain.CalculatorInputs) (*domain.AmortizationResult, error) {
	requested := in.AnalysisHorizon
	norm, adjusted, err := NormalizeInputs(in)
	if err != nil {
		return nil, err
	}

	ppy := norm.PeriodsPerYear()
	n := norm.AnalysisHorizon
	baselinePerPeriod := money.NewMoneyFromDecimal(norm.CurrentAnnualCost).PerPeriod(ppy)
	steadyPerPeriod := money.NewMoneyFromDecimal(norm.ReducedAnnualCost).PerPeriod(ppy)
	rawSavings := baselinePerPeriod.Sub(steadyPerPeriod)

	series := domain.PeriodSeries{
		Baseline:   make([]decimal.Decimal, n),
		Modernized: make([]decimal.Decimal, n),
		Savings:    make([]decimal.Decimal, n),
	}
	payouts := make([]decimal.Decimal, n)
	var totals domain.Totals

	for i := 0; i < n; i++ {
		baseline := baselinePerPeriod.Decimal
		modernized, payout, savings := decimal.Zero, decimal.Zero, decimal.Zero

		if i < norm.RebuildDuration {
			totals.RebuildBaseline = totals.RebuildBaseline.Add(baseline)
		} else {
			payout = rawSavings.Share(PayoutRate(i-norm.RebuildDuration, ppy)).Decimal
			modernized = steadyPerPeriod.Decimal.Add(payout)
			savings = baseline.Sub(modernized)
		}

		series.Baseline[i] = baseline
		series.Modernized[i] = modernized
		series.Savings[i] = savings
		payouts[i] = payout

		totals.Baseline = totals.Baseline.Add(baseline)
		totals.Modernized = totals.Modernized.Add(modernized)
		totals.Savings = totals.Savings.Add(savings)
		totals.Payouts = totals.Payouts.Add(payout)
	}

	result := &domain.AmortizationResult{
		Inputs:           norm,
		RequestedHorizon: requested,
		EffectiveHorizon: n,
		HorizonAdjusted:  adjusted,
		NegativeSavings:  norm.SavingsAreNegative(),
		PeriodsPerYear:   ppy,
		Series:           series,
		Payouts:          payouts,
		Totals:           totals,
		Yearly:           BuildYearlyRollup(norm, series, payouts),
		Summary:          BuildProgramSummary(norm),
	}
	if err := result.CheckInvariants(); err != nil {
		return nil, err
	}
	return result, nil
}
