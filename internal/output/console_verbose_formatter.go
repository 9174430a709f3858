package output

import (
	"bytes"
	"fmt"
	"strings"

	calc "github.com/ramp/cost-calculator/internal/calculation"
	"github.com/ramp/cost-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the detailed console report: assumptions,
// fee schedule, each scenario's summary and yearly table, then a comparison.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "RAMP COST SAVINGS ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsFor(results) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "INCENTIVE FEE SCHEDULE:")
	for _, tier := range calc.FeeSchedule() {
		fmt.Fprintf(&buf, "  %s\n", tier.Description)
	}
	fmt.Fprintln(&buf)

	for i, sc := range results.Scenarios {
		if sc.Result == nil {
			continue
		}
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, sc.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		if sc.Description != "" {
			fmt.Fprintln(&buf, sc.Description)
		}
		writeProgramSummary(&buf, sc.Result)
		fmt.Fprintln(&buf)
		writeYearlyTable(&buf, sc.Result)
		fmt.Fprintln(&buf)
	}

	if len(results.Scenarios) > 1 {
		writeComparison(&buf, results)
	}
	return buf.Bytes(), nil
}

func writeProgramSummary(buf *bytes.Buffer, r *domain.AmortizationResult) {
	s := r.Summary
	fmt.Fprintln(buf, "PROGRAM SUMMARY:")
	fmt.Fprintf(buf, "  %-24s %s\n", "Current Annual Cost:", FormatCurrency(s.CurrentAnnualCost))
	fmt.Fprintf(buf, "  %-24s %s (%s of current)\n", "Reduced Annual Cost:", FormatCurrency(s.ReducedAnnualCost), FormatPercentage(s.ReducedCostPercent))
	fmt.Fprintf(buf, "  %-24s %s\n", "Annual Savings:", FormatCurrency(s.AnnualSavings))
	for year, payout := range s.AnnualPayouts {
		fmt.Fprintf(buf, "  %-24s %s\n", fmt.Sprintf("Year %d Payout:", year+1), FormatCurrency(payout))
	}
	fmt.Fprintf(buf, "  %-24s %s year(s)\n", "Rebuild:", s.RebuildYears.String())
	fmt.Fprintf(buf, "  %-24s %s year(s), %d %s periods\n", "Analysis Horizon:", s.HorizonYears.String(), r.EffectiveHorizon, r.Inputs.Granularity.OrDefault())

	if r.HorizonAdjusted {
		fmt.Fprintf(buf, "Note: analysis horizon raised from %d to %d %ss (rebuild + %d-year incentive window).\n",
			r.RequestedHorizon, r.EffectiveHorizon, r.Inputs.Granularity.Unit(), domain.IncentiveWindowYears)
	}
	if r.NegativeSavings {
		fmt.Fprintln(buf, "WARNING: reduced annual cost exceeds current annual cost; savings and payouts are negative.")
	}
}

func writeYearlyTable(buf *bytes.Buffer, r *domain.AmortizationResult) {
	fmt.Fprintf(buf, "%-24s %14s %14s %14s %14s\n", "YEAR", "BASELINE", "MODERNIZED", "PAYOUT", "SAVINGS")
	fmt.Fprintln(buf, strings.Repeat("-", 84))
	for _, b := range r.Yearly {
		label := b.Label
		if b.IsPartial(r.PeriodsPerYear) {
			label += " (partial)"
		}
		fmt.Fprintf(buf, "%-24s %14s %14s %14s %14s\n", label,
			FormatCurrency(b.Baseline), FormatCurrency(b.Modernized), FormatCurrency(b.Payouts), FormatCurrency(b.Savings))
	}
	fmt.Fprintln(buf, strings.Repeat("-", 84))
	t := r.Totals
	fmt.Fprintf(buf, "%-24s %14s %14s %14s %14s\n", "TOTAL",
		FormatCurrency(t.Baseline), FormatCurrency(t.Modernized), FormatCurrency(t.Payouts), FormatCurrency(t.Savings))
	fmt.Fprintf(buf, "Savings realized: %s (%s of baseline); %s of legacy cost paid during rebuild.\n",
		FormatCurrency(t.Savings), FormatPercentage(savingsPercent(r)), FormatCurrency(t.RebuildBaseline))
}

func writeComparison(buf *bytes.Buffer, results *domain.ScenarioComparison) {
	fmt.Fprintln(buf, "SCENARIO COMPARISON")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintf(buf, "%-4s %-32s %14s %14s %10s\n", "RANK", "SCENARIO", "TOTAL SAVINGS", "PAYOUTS", "HORIZON")
	fmt.Fprintln(buf, strings.Repeat("-", 78))
	for rank, name := range calc.RankBySavings(results.Scenarios) {
		r := findScenario(results, name).Result
		fmt.Fprintf(buf, "%-4d %-32s %14s %14s %10s\n", rank+1, truncateName(name, 32),
			FormatCurrency(r.Totals.Savings), FormatCurrency(r.Totals.Payouts), r.Summary.HorizonYears.StringFixed(1)+"y")
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "Recommended: %s (%s savings", rec.ScenarioName, FormatCurrency(rec.TotalSavings))
		if rec.RunnerUp != "" && rec.Margin.GreaterThan(decimal.Zero) {
			fmt.Fprintf(buf, ", %s more than %s", FormatCurrency(rec.Margin), rec.RunnerUp)
		}
		fmt.Fprintln(buf, ")")
	}
}

func truncateName(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
