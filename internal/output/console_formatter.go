package output

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/ramp/cost-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "RAMP SCENARIO SUMMARY")
	fmt.Fprintln(&buf, "================================")
	scenarios := append([]domain.ScenarioResult(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		r := sc.Result
		if r == nil {
			continue
		}
		fmt.Fprintf(&buf, "%s: Savings=%s Payouts=%s Baseline=%s Modernized=%s\n",
			sc.Name,
			FormatCurrency(r.Totals.Savings),
			FormatCurrency(r.Totals.Payouts),
			FormatCurrency(r.Totals.Baseline),
			FormatCurrency(r.Totals.Modernized),
		)
		fmt.Fprintf(&buf, "  Rebuild=%sy Horizon=%sy AnnualSavings=%s Reduced=%s\n",
			r.Summary.RebuildYears.String(), r.Summary.HorizonYears.String(),
			FormatCurrency(r.Summary.AnnualSavings), FormatPercentage(r.Summary.ReducedCostPercent))
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (%s / %s of baseline)\n", rec.ScenarioName, FormatCurrency(rec.TotalSavings), FormatPercentage(rec.SavingsPercent))
	}
	return buf.Bytes(), nil
}
