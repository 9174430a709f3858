package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	calc "github.com/ramp/cost-calculator/internal/calculation"
	"github.com/ramp/cost-calculator/internal/domain"
)

const (
	summarySheet = "Summary"
	periodsSheet = "Periods"
	yearlySheet  = "Yearly"
)

// XLSXFormatter writes a workbook with a summary sheet, a per-period sheet
// and a yearly rollup sheet. Amounts are numeric cells in $M.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string { return "xlsx" }

func (x XLSXFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	for _, name := range []string{periodsSheet, yearlySheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	if err := writeSummarySheet(f, results); err != nil {
		return nil, fmt.Errorf("failed to write %s sheet: %w", summarySheet, err)
	}
	if err := writePeriodsSheet(f, results); err != nil {
		return nil, fmt.Errorf("failed to write %s sheet: %w", periodsSheet, err)
	}
	if err := writeYearlySheet(f, results); err != nil {
		return nil, fmt.Errorf("failed to write %s sheet: %w", yearlySheet, err)
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeRow writes values into row (1-based) starting at column A.
func writeRow(f *excelize.File, sheet string, row int, values ...any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers ...any) error {
	if err := writeRow(f, sheet, 1, headers...); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last+"1", style)
}

func writeSummarySheet(f *excelize.File, results *domain.ScenarioComparison) error {
	if err := writeHeader(f, summarySheet, "Scenario", "Granularity", "Current Annual Cost ($M)", "Reduced Annual Cost ($M)",
		"Rebuild (periods)", "Horizon (periods)", "Horizon Adjusted", "Total Baseline ($M)", "Total Modernized ($M)",
		"Total Payouts ($M)", "Total Savings ($M)", "Rebuild Baseline ($M)", "Rank"); err != nil {
		return err
	}
	rank := map[string]int{}
	for i, name := range calc.RankBySavings(results.Scenarios) {
		rank[name] = i + 1
	}
	row := 2
	for _, sc := range results.Scenarios {
		r := sc.Result
		if r == nil {
			continue
		}
		if err := writeRow(f, summarySheet, row,
			sc.Name,
			string(r.Inputs.Granularity.OrDefault()),
			r.Inputs.CurrentAnnualCost.InexactFloat64(),
			r.Inputs.ReducedAnnualCost.InexactFloat64(),
			r.Inputs.RebuildDuration,
			r.EffectiveHorizon,
			r.HorizonAdjusted,
			r.Totals.Baseline.InexactFloat64(),
			r.Totals.Modernized.InexactFloat64(),
			r.Totals.Payouts.InexactFloat64(),
			r.Totals.Savings.InexactFloat64(),
			r.Totals.RebuildBaseline.InexactFloat64(),
			rank[sc.Name],
		); err != nil {
			return err
		}
		row++
	}
	return f.SetColWidth(summarySheet, "A", "A", 32)
}

func writePeriodsSheet(f *excelize.File, results *domain.ScenarioComparison) error {
	if err := writeHeader(f, periodsSheet, "Scenario", "Period", "Label", "Phase", "Payout Rate", "Baseline ($M)", "Modernized ($M)", "Payout ($M)", "Savings ($M)"); err != nil {
		return err
	}
	row := 2
	for _, sc := range results.Scenarios {
		r := sc.Result
		if r == nil {
			continue
		}
		for i := 0; i < r.Periods(); i++ {
			rate := calc.PayoutRate(i-r.Inputs.RebuildDuration, r.PeriodsPerYear)
			if err := writeRow(f, periodsSheet, row,
				sc.Name, i+1, PeriodLabel(r, i), PeriodPhase(r, i), rate.InexactFloat64(),
				r.Series.Baseline[i].InexactFloat64(),
				r.Series.Modernized[i].InexactFloat64(),
				r.Payouts[i].InexactFloat64(),
				r.Series.Savings[i].InexactFloat64(),
			); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeYearlySheet(f *excelize.File, results *domain.ScenarioComparison) error {
	if err := writeHeader(f, yearlySheet, "Scenario", "Year", "Label", "Periods", "Contains Rebuild", "Baseline ($M)", "Modernized ($M)", "Payout ($M)", "Savings ($M)"); err != nil {
		return err
	}
	row := 2
	for _, sc := range results.Scenarios {
		if sc.Result == nil {
			continue
		}
		for _, b := range sc.Result.Yearly {
			if err := writeRow(f, yearlySheet, row,
				sc.Name, b.Year, b.Label, b.Periods, b.ContainsRebuild,
				b.Baseline.InexactFloat64(), b.Modernized.InexactFloat64(),
				b.Payouts.InexactFloat64(), b.Savings.InexactFloat64(),
			); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}
