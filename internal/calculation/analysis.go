package calculation

import (
	"sort"

	"github.com/ramp/cost-calculator/internal/domain"
)

// bestScenario returns the scenario with the highest total savings; ties go to the earlier one.
func bestScenario(results []domain.ScenarioResult) string {
	var best string
	var bestSet bool
	var bestResult *domain.AmortizationResult
	for _, r := range results {
		if r.Result == nil {
			continue
		}
		if !bestSet || r.Result.Totals.Savings.GreaterThan(bestResult.Totals.Savings) {
			best = r.Name
			bestResult = r.Result
			bestSet = true
		}
	}
	return best
}

// RankBySavings returns scenario names ordered by total savings, highest first.
func RankBySavings(results []domain.ScenarioResult) []string {
	ranked := make([]domain.ScenarioResult, 0, len(results))
	for _, r := range results {
		if r.Result != nil {
			ranked = append(ranked, r)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Totals.Savings.GreaterThan(ranked[j].Result.Totals.Savings)
	})
	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.Name
	}
	return names
}
