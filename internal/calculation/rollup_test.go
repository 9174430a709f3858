package calculation

import (
	"testing"

	"github.com/ramp/cost-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildYearlyRollup_Yearly(t *testing.T) {
	result, err := Compute(yearlyInputs("100", "10", 1, 5))
	require.NoError(t, err)

	require.Len(t, result.Yearly, 5)
	assert.Equal(t, "Year 1 (Rebuild)", result.Yearly[0].Label)
	assert.True(t, result.Yearly[0].ContainsRebuild)
	assert.Equal(t, "Year 2", result.Yearly[1].Label)
	assert.False(t, result.Yearly[1].ContainsRebuild)
	assert.Equal(t, "67.5", result.Yearly[2].Savings.String())
	assert.Equal(t, "11.25", result.Yearly[3].Payouts.String())
	for _, b := range result.Yearly {
		assert.Equal(t, 1, b.Periods)
		assert.False(t, b.IsPartial(1))
	}
}

func TestBuildYearlyRollup_MonthlyPartialFinalBucket(t *testing.T) {
	result, err := Compute(domain.CalculatorInputs{
		CurrentAnnualCost: d("120"),
		ReducedAnnualCost: d("12"),
		RebuildDuration:   18,
		AnalysisHorizon:   62,
		Granularity:       domain.GranularityMonthly,
	})
	require.NoError(t, err)

	require.Len(t, result.Yearly, 6)
	assert.True(t, result.Yearly[0].ContainsRebuild)
	assert.True(t, result.Yearly[1].ContainsRebuild, "months 12-17 are still rebuild")
	assert.False(t, result.Yearly[2].ContainsRebuild)
	assert.Equal(t, "Year 2 (Rebuild)", result.Yearly[1].Label)

	last := result.Yearly[5]
	assert.Equal(t, 60, last.StartPeriod)
	assert.Equal(t, 2, last.Periods)
	assert.True(t, last.IsPartial(12))
	assert.Equal(t, "20", last.Baseline.String())

	// Year 1 is entirely rebuild.
	assert.Equal(t, "120", result.Yearly[0].Baseline.String())
	assert.True(t, result.Yearly[0].Savings.IsZero())

	var savings, baseline = result.Yearly[0].Savings, result.Yearly[0].Baseline
	for _, b := range result.Yearly[1:] {
		savings = savings.Add(b.Savings)
		baseline = baseline.Add(b.Baseline)
	}
	assert.True(t, savings.Equal(result.Totals.Savings))
	assert.True(t, baseline.Equal(result.Totals.Baseline))
}

func TestBuildYearlyRollup_FiscalYearLabels(t *testing.T) {
	in := yearlyInputs("100", "10", 2, 6)
	in.FiscalYearStart = 2026
	result, err := Compute(in)
	require.NoError(t, err)

	labels := make([]string, len(result.Yearly))
	for i, b := range result.Yearly {
		labels[i] = b.Label
	}
	assert.Equal(t, []string{"FY2026 (Rebuild)", "FY2027 (Rebuild)", "FY2028", "FY2029", "FY2030", "FY2031"}, labels)
	assert.Equal(t, 2028, result.Yearly[2].FiscalYear)
}

func TestBuildYearlyRollup_Empty(t *testing.T) {
	assert.Nil(t, BuildYearlyRollup(yearlyInputs("1", "0", 1, 0), domain.PeriodSeries{}, nil))
}

func TestBuildProgramSummary(t *testing.T) {
	summary := BuildProgramSummary(yearlyInputs("100", "10", 2, 8))

	assert.Equal(t, "10", summary.ReducedCostPercent.String())
	assert.Equal(t, "90", summary.AnnualSavings.String())
	require.Len(t, summary.AnnualPayouts, 3)
	assert.Equal(t, "45", summary.AnnualPayouts[0].String())
	assert.Equal(t, "22.5", summary.AnnualPayouts[1].String())
	assert.Equal(t, "11.25", summary.AnnualPayouts[2].String())
	assert.Equal(t, "2", summary.RebuildYears.String())
	assert.Equal(t, "8", summary.HorizonYears.String())

	monthly := BuildProgramSummary(domain.CalculatorInputs{
		CurrentAnnualCost: d("100"),
		ReducedAnnualCost: d("25"),
		RebuildDuration:   18,
		AnalysisHorizon:   60,
		Granularity:       domain.GranularityMonthly,
	})
	assert.Equal(t, "1.5", monthly.RebuildYears.String())
	assert.Equal(t, "5", monthly.HorizonYears.String())
	assert.Equal(t, "25", monthly.ReducedCostPercent.String())
}
