package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/ramp/cost-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Granularity", "CurrentAnnualCost", "ReducedAnnualCost", "RebuildDuration", "RequestedHorizon", "EffectiveHorizon", "HorizonAdjusted", "TotalBaseline", "TotalModernized", "TotalPayouts", "TotalSavings", "RebuildBaseline", "NegativeSavings"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioResult(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		r := sc.Result
		if r == nil {
			continue
		}
		row := []string{
			sc.Name,
			string(r.Inputs.Granularity.OrDefault()),
			r.Inputs.CurrentAnnualCost.StringFixed(2),
			r.Inputs.ReducedAnnualCost.StringFixed(2),
			intToString(r.Inputs.RebuildDuration),
			intToString(r.RequestedHorizon),
			intToString(r.EffectiveHorizon),
			boolToString(r.HorizonAdjusted),
			r.Totals.Baseline.StringFixed(2),
			r.Totals.Modernized.StringFixed(2),
			r.Totals.Payouts.StringFixed(2),
			r.Totals.Savings.StringFixed(2),
			r.Totals.RebuildBaseline.StringFixed(2),
			boolToString(r.NegativeSavings),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
