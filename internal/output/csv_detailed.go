package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	calc "github.com/ramp/cost-calculator/internal/calculation"
	"github.com/ramp/cost-calculator/internal/domain"
)

// CSVDetailedExporter writes every period of every scenario.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Period", "Label", "Phase", "PayoutRate", "Baseline", "Modernized", "Payout", "Savings"}
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
		for i := 0; i < r.Periods(); i++ {
			rate := calc.PayoutRate(i-r.Inputs.RebuildDuration, r.PeriodsPerYear)
			row := []string{
				sc.Name,
				intToString(i + 1),
				PeriodLabel(r, i),
				PeriodPhase(r, i),
				rate.String(),
				r.Series.Baseline[i].StringFixed(4),
				r.Series.Modernized[i].StringFixed(4),
				r.Payouts[i].StringFixed(4),
				r.Series.Savings[i].StringFixed(4),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVYearlyExporter writes the yearly rollup of every scenario.
type CSVYearlyExporter struct{}

func (c CSVYearlyExporter) Name() string { return "yearly-csv" }

func (c CSVYearlyExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "Label", "Periods", "ContainsRebuild", "Baseline", "Modernized", "Payout", "Savings"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioResult(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		if sc.Result == nil {
			continue
		}
		for _, b := range sc.Result.Yearly {
			row := []string{
				sc.Name,
				intToString(b.Year),
				b.Label,
				intToString(b.Periods),
				boolToString(b.ContainsRebuild),
				b.Baseline.StringFixed(2),
				b.Modernized.StringFixed(2),
				b.Payouts.StringFixed(2),
				b.Savings.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
