package output

import (
	calc "github.com/ramp/cost-calculator/internal/calculation"
	"github.com/ramp/cost-calculator/internal/domain"
	money "github.com/ramp/cost-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName   string
	TotalSavings   decimal.Decimal
	TotalPayouts   decimal.Decimal
	SavingsPercent decimal.Decimal // total savings as a share of total baseline
	RunnerUp       string
	Margin         decimal.Decimal // savings over the runner-up
}

// AnalyzeScenarios ranks scenarios by total savings and describes the winner.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	if results == nil {
		return Recommendation{}
	}
	ranked := calc.RankBySavings(results.Scenarios)
	if len(ranked) == 0 {
		return Recommendation{}
	}

	best := findScenario(results, ranked[0])
	rec := Recommendation{
		ScenarioName:   best.Name,
		TotalSavings:   best.Result.Totals.Savings,
		TotalPayouts:   best.Result.Totals.Payouts,
		SavingsPercent: savingsPercent(best.Result),
	}
	if len(ranked) > 1 {
		runnerUp := findScenario(results, ranked[1])
		rec.RunnerUp = runnerUp.Name
		rec.Margin = best.Result.Totals.Savings.Sub(runnerUp.Result.Totals.Savings)
	}
	return rec
}

func findScenario(results *domain.ScenarioComparison, name string) domain.ScenarioResult {
	for _, sc := range results.Scenarios {
		if sc.Name == name && sc.Result != nil {
			return sc
		}
	}
	return domain.ScenarioResult{}
}

func savingsPercent(r *domain.AmortizationResult) decimal.Decimal {
	return money.NewMoneyFromDecimal(r.Totals.Savings).PercentOf(money.NewMoneyFromDecimal(r.Totals.Baseline))
}
