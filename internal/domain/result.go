package domain

import (
	"github.com/shopspring/decimal"

	money "github.com/ramp/cost-calculator/pkg/decimal"
)

// PeriodSeries holds the three comparison series, one value per period.
type PeriodSeries struct {
	Baseline   []decimal.Decimal `json:"baseline"`   // legacy cost had nothing changed
	Modernized []decimal.Decimal `json:"modernized"` // steady-state cost plus incentive payout
	Savings    []decimal.Decimal `json:"savings"`    // baseline - modernized once rebuilt, 0 during rebuild
}

// Totals are the full-horizon sums of each series. RebuildBaseline is the part
// of Baseline spent during the rebuild phase, where no savings are realized, so
// Savings == Baseline - Modernized - RebuildBaseline.
type Totals struct {
	Baseline        decimal.Decimal `json:"baseline"`
	Modernized      decimal.Decimal `json:"modernized"`
	Savings         decimal.Decimal `json:"savings"`
	Payouts         decimal.Decimal `json:"payouts"`
	RebuildBaseline decimal.Decimal `json:"rebuild_baseline"`
}

// YearBucket is one row of the yearly rollup. The final bucket may hold fewer
// than a full year of periods.
type YearBucket struct {
	Label           string          `json:"label"`
	Year            int             `json:"year"` // 1-based year index within the horizon
	FiscalYear      int             `json:"fiscal_year,omitempty"`
	StartPeriod     int             `json:"start_period"`
	Periods         int             `json:"periods"`
	Baseline        decimal.Decimal `json:"baseline"`
	Modernized      decimal.Decimal `json:"modernized"`
	Savings         decimal.Decimal `json:"savings"`
	Payouts         decimal.Decimal `json:"payouts"`
	ContainsRebuild bool            `json:"contains_rebuild"`
}

// IsPartial reports whether the bucket covers less than a full year.
func (b YearBucket) IsPartial(periodsPerYear int) bool { return b.Periods < periodsPerYear }

// FeeTier is one step of the incentive schedule.
type FeeTier struct {
	Year        int             `json:"year"` // year after rebuild completion, 1-based; 0 = every later year
	Rate        decimal.Decimal `json:"rate"`
	Description string          `json:"description"`
}

// ProgramSummary restates the inputs as the annual figures a reader compares.
type ProgramSummary struct {
	CurrentAnnualCost  decimal.Decimal   `json:"current_annual_cost"`
	ReducedAnnualCost  decimal.Decimal   `json:"reduced_annual_cost"`
	ReducedCostPercent decimal.Decimal   `json:"reduced_cost_percent"`
	AnnualSavings      decimal.Decimal   `json:"annual_savings"`
	AnnualPayouts      []decimal.Decimal `json:"annual_payouts"` // years 1..IncentiveWindowYears after rebuild
	RebuildYears       decimal.Decimal   `json:"rebuild_years"`
	HorizonYears       decimal.Decimal   `json:"horizon_years"`
}

// AmortizationResult is the complete output of one calculator run.
type AmortizationResult struct {
	Inputs           CalculatorInputs  `json:"inputs"` // as computed, horizon already raised
	RequestedHorizon int               `json:"requested_horizon"`
	EffectiveHorizon int               `json:"effective_horizon"`
	HorizonAdjusted  bool              `json:"horizon_adjusted"`
	NegativeSavings  bool              `json:"negative_savings"`
	PeriodsPerYear   int               `json:"periods_per_year"`
	Series           PeriodSeries      `json:"series"`
	Payouts          []decimal.Decimal `json:"payouts"`
	Totals           Totals            `json:"totals"`
	Yearly           []YearBucket      `json:"yearly"`
	Summary          ProgramSummary    `json:"summary"`
}

// Periods returns the number of computed periods.
func (r *AmortizationResult) Periods() int { return len(r.Series.Baseline) }

// IsRebuildPeriod reports whether period i falls in the rebuild phase.
func (r *AmortizationResult) IsRebuildPeriod(i int) bool { return i < r.Inputs.RebuildDuration }

// CheckInvariants verifies the structural guarantees of the series and totals.
func (r *AmortizationResult) CheckInvariants() error {
	n := r.EffectiveHorizon
	if len(r.Series.Baseline) != n || len(r.Series.Modernized) != n || len(r.Series.Savings) != n || len(r.Payouts) != n {
		return invariantf("series lengths %d/%d/%d/%d do not match horizon %d",
			len(r.Series.Baseline), len(r.Series.Modernized), len(r.Series.Savings), len(r.Payouts), n)
	}
	if r.Inputs.RebuildDuration < 0 || r.Inputs.RebuildDuration > n-r.Inputs.IncentiveWindow() {
		return invariantf("horizon %d does not cover rebuild %d plus the %d-period incentive window", n, r.Inputs.RebuildDuration, r.Inputs.IncentiveWindow())
	}

	reducedPerPeriod := money.NewMoneyFromDecimal(r.Inputs.ReducedAnnualCost).PerPeriod(r.Inputs.PeriodsPerYear()).Decimal
	var baseline, modernized, savings, payouts, rebuild decimal.Decimal
	for i := 0; i < n; i++ {
		b, m, s, p := r.Series.Baseline[i], r.Series.Modernized[i], r.Series.Savings[i], r.Payouts[i]
		if r.IsRebuildPeriod(i) {
			if !m.IsZero() || !p.IsZero() || !s.IsZero() {
				return invariantf("period %d: rebuild period carries modernized %s / payout %s / savings %s", i, m, p, s)
			}
			rebuild = rebuild.Add(b)
		} else {
			if !s.Equal(b.Sub(m)) {
				return invariantf("period %d: savings %s != baseline %s - modernized %s", i, s, b, m)
			}
			if !m.Equal(reducedPerPeriod.Add(p)) {
				return invariantf("period %d: modernized %s != steady state %s + payout %s", i, m, reducedPerPeriod, p)
			}
		}
		baseline = baseline.Add(b)
		modernized = modernized.Add(m)
		savings = savings.Add(s)
		payouts = payouts.Add(p)
	}

	if !baseline.Equal(r.Totals.Baseline) || !modernized.Equal(r.Totals.Modernized) ||
		!savings.Equal(r.Totals.Savings) || !payouts.Equal(r.Totals.Payouts) || !rebuild.Equal(r.Totals.RebuildBaseline) {
		return invariantf("totals do not match the series sums")
	}
	if !r.Totals.Savings.Equal(r.Totals.Baseline.Sub(r.Totals.Modernized).Sub(r.Totals.RebuildBaseline)) {
		return invariantf("total savings %s != baseline %s - modernized %s - rebuild baseline %s",
			r.Totals.Savings, r.Totals.Baseline, r.Totals.Modernized, r.Totals.RebuildBaseline)
	}
	return nil
}

// AmountPlaces is the precision amounts are rendered at; 8 places of $M is one cent.
const AmountPlaces = 8

func roundAll(values []decimal.Decimal, places int32) []decimal.Decimal {
	if values == nil {
		return nil
	}
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = v.Round(places)
	}
	return out
}

// Rounded returns a copy with every computed amount rounded to places, for
// rendering. Inputs are left as given. r itself is not modified.
func (r *AmortizationResult) Rounded(places int32) *AmortizationResult {
	if r == nil {
		return nil
	}
	out := *r
	out.Series = PeriodSeries{
		Baseline:   roundAll(r.Series.Baseline, places),
		Modernized: roundAll(r.Series.Modernized, places),
		Savings:    roundAll(r.Series.Savings, places),
	}
	out.Payouts = roundAll(r.Payouts, places)
	out.Totals = Totals{
		Baseline:        r.Totals.Baseline.Round(places),
		Modernized:      r.Totals.Modernized.Round(places),
		Savings:         r.Totals.Savings.Round(places),
		Payouts:         r.Totals.Payouts.Round(places),
		RebuildBaseline: r.Totals.RebuildBaseline.Round(places),
	}
	if r.Yearly != nil {
		out.Yearly = make([]YearBucket, len(r.Yearly))
		for i, b := range r.Yearly {
			b.Baseline = b.Baseline.Round(places)
			b.Modernized = b.Modernized.Round(places)
			b.Savings = b.Savings.Round(places)
			b.Payouts = b.Payouts.Round(places)
			out.Yearly[i] = b
		}
	}
	out.Summary.AnnualSavings = r.Summary.AnnualSavings.Round(places)
	out.Summary.ReducedCostPercent = r.Summary.ReducedCostPercent.Round(places)
	out.Summary.AnnualPayouts = roundAll(r.Summary.AnnualPayouts, places)
	out.Summary.RebuildYears = r.Summary.RebuildYears.Round(places)
	out.Summary.HorizonYears = r.Summary.HorizonYears.Round(places)
	return &out
}
