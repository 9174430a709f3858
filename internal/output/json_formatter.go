package output

import (
	"encoding/json"

	"github.com/ramp/cost-calculator/internal/domain"
)

// JSONFormatter serializes the scenario comparison as pretty-printed JSON,
// amounts rounded to domain.AmountPlaces.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	return json.MarshalIndent(results.Rounded(domain.AmountPlaces), "", "  ")
}
