package output

import (
	"github.com/ramp/cost-calculator/internal/domain"
)

// DefaultAssumptions lists key modeling assumptions rendered when a comparison carries none.
var DefaultAssumptions = (&domain.Configuration{}).GenerateAssumptions()

func assumptionsFor(results *domain.ScenarioComparison) []string {
	if len(results.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return results.Assumptions
}
