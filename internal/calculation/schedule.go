package calculation

import (
	"fmt"

	"github.com/ramp/cost-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// feeRates are the incentive shares of savings for years 1..3 after rebuild.
var feeRates = []decimal.Decimal{
	decimal.RequireFromString("0.5"),
	decimal.RequireFromString("0.25"),
	decimal.RequireFromString("0.125"),
}

// PayoutRate returns the share of per-period savings paid out as an incentive
// for the period that is periodsSinceRebuild periods past rebuild completion.
// Each year of the window covers periodsPerYear periods; beyond the window,
// and for any negative offset, the rate is zero.
func PayoutRate(periodsSinceRebuild, periodsPerYear int) decimal.Decimal {
	if periodsSinceRebuild < 0 || periodsPerYear <= 0 {
		return decimal.Zero
	}
	year := periodsSinceRebuild / periodsPerYear
	if year < len(feeRates) {
		return feeRates[year]
	}
	return decimal.Zero
}

// FeeSchedule returns the published incentive schedule. The final tier has
// Year 0 and covers every year after the window.
func FeeSchedule() []domain.FeeTier {
	tiers := make([]domain.FeeTier, 0, len(feeRates)+1)
	for i, rate := range feeRates {
		tiers = append(tiers, domain.FeeTier{
			Year:        i + 1,
			Rate:        rate,
			Description: fmt.Sprintf("Year %d after rebuild: %s%% of savings", i+1, rate.Mul(decimal.NewFromInt(100)).String()),
		})
	}
	tiers = append(tiers, domain.FeeTier{
		Year:        0,
		Rate:        decimal.Zero,
		Description: fmt.Sprintf("Year %d onward: no payout, agency keeps all savings", len(feeRates)+1),
	})
	return tiers
}
