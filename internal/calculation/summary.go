package calculation

import (
	"github.com/ramp/cost-calculator/internal/domain"
	money "github.com/ramp/cost-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// BuildProgramSummary restates normalized inputs as annual figures: the
// reduced cost as a share of current, the annual savings once rebuilt and the
// payout for each year of the incentive window.
func BuildProgramSummary(in domain.CalculatorInputs) domain.ProgramSummary {
	current := money.NewMoneyFromDecimal(in.CurrentAnnualCost)
	reduced := money.NewMoneyFromDecimal(in.ReducedAnnualCost)
	annualSavings := current.Sub(reduced)

	payouts := make([]decimal.Decimal, domain.IncentiveWindowYears)
	for year := range payouts {
		payouts[year] = annualSavings.Share(PayoutRate(year, 1)).Decimal
	}

	ppy := decimal.NewFromInt(int64(in.PeriodsPerYear()))
	return domain.ProgramSummary{
		CurrentAnnualCost:  in.CurrentAnnualCost,
		ReducedAnnualCost:  in.ReducedAnnualCost,
		ReducedCostPercent: reduced.PercentOf(current),
		AnnualSavings:      annualSavings.Decimal,
		AnnualPayouts:      payouts,
		RebuildYears:       decimal.NewFromInt(int64(in.RebuildDuration)).Div(ppy),
		HorizonYears:       decimal.NewFromInt(int64(in.AnalysisHorizon)).Div(ppy),
	}
}
