package calculation

import (
	"fmt"

	"github.com/ramp/cost-calculator/internal/domain"
	"github.com/ramp/cost-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// BuildYearlyRollup groups the period series into buckets of one year each.
// The last bucket holds whatever periods remain and may be partial. A bucket
// that contains any rebuild period is tagged, and its label says so.
func BuildYearlyRollup(in domain.CalculatorInputs, series domain.PeriodSeries, payouts []decimal.Decimal) []domain.YearBucket {
	ppy := in.PeriodsPerYear()
	n := len(series.Baseline)
	if ppy <= 0 || n == 0 {
		return nil
	}

	buckets := make([]domain.YearBucket, 0, (n+ppy-1)/ppy)
	for start := 0; start < n; start += ppy {
		end := start + ppy
		if end > n {
			end = n
		}
		year := start/ppy + 1
		bucket := domain.YearBucket{
			Year:            year,
			StartPeriod:     start,
			Periods:         end - start,
			ContainsRebuild: start < in.RebuildDuration,
		}
		for i := start; i < end; i++ {
			bucket.Baseline = bucket.Baseline.Add(series.Baseline[i])
			bucket.Modernized = bucket.Modernized.Add(series.Modernized[i])
			bucket.Savings = bucket.Savings.Add(series.Savings[i])
			if i < len(payouts) {
				bucket.Payouts = bucket.Payouts.Add(payouts[i])
			}
		}
		if in.FiscalYearStart > 0 {
			bucket.FiscalYear = in.FiscalYearStart + year - 1
		}
		bucket.Label = bucketLabel(bucket)
		buckets = append(buckets, bucket)
	}
	return buckets
}

func bucketLabel(b domain.YearBucket) string {
	label := fmt.Sprintf("Year %d", b.Year)
	if b.FiscalYear > 0 {
		label = dateutil.FiscalYearLabel(b.FiscalYear)
	}
	if b.ContainsRebuild {
		label += " (Rebuild)"
	}
	return label
}
