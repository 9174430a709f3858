package calculation

import (
	"errors"
	"fmt"
	"math"

	"github.com/ramp/cost-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// DefaultGrowthRate is the projected annual growth of federal IT services spending.
	DefaultGrowthRate = decimal.RequireFromString("0.0922")

	// DefaultLegacyShare is the fraction of spending assumed to maintain legacy systems.
	DefaultLegacyShare = decimal.RequireFromString("0.15")
)

// maxProjectionYears bounds ProjectSpending.
const maxProjectionYears = 50

// DefaultSpendingHistory returns federal obligations under NAICS 5415
// (computer systems design and related services), FY2019-FY2024, in $B.
func DefaultSpendingHistory() []domain.SpendingPoint {
	amounts := []string{"43.47", "57.33", "61.36", "66.13", "70.44", "73.12"}
	history := make([]domain.SpendingPoint, len(amounts))
	for i, a := range amounts {
		history[i] = domain.SpendingPoint{Year: 2019 + i, Amount: decimal.RequireFromString(a)}
	}
	return history
}

// CAGR is the compound annual growth rate between the first and last points of history.
func CAGR(history []domain.SpendingPoint) (decimal.Decimal, error) {
	if len(history) < 2 {
		return decimal.Zero, errors.New("CAGR needs at least two points")
	}
	first, last := history[0], history[len(history)-1]
	years := last.Year - first.Year
	if years <= 0 {
		return decimal.Zero, fmt.Errorf("CAGR needs increasing years, got %d..%d", first.Year, last.Year)
	}
	if !first.Amount.IsPositive() || !last.Amount.IsPositive() {
		return decimal.Zero, errors.New("CAGR needs positive amounts")
	}

	ratio, _ := last.Amount.Div(first.Amount).Float64()
	rate := math.Pow(ratio, 1/float64(years)) - 1
	return decimal.NewFromFloat(rate).Round(6), nil
}

// LegacyShare returns the share of amount spent on legacy maintenance.
func LegacyShare(amount, share decimal.Decimal) decimal.Decimal {
	return amount.Mul(share)
}

// ProjectSpending extends history by years points, compounding the last
// actual amount at rate. Projected amounts are rounded to cents.
func ProjectSpending(history []domain.SpendingPoint, rate decimal.Decimal, years int) (*domain.SpendingProjection, error) {
	if len(history) == 0 {
		return nil, errors.New("spending history is empty")
	}
	if years < 0 || years > maxProjectionYears {
		return nil, &domain.ValidationError{Field: "years", Reason: fmt.Sprintf("must be between 0 and %d", maxProjectionYears)}
	}
	if rate.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return nil, &domain.ValidationError{Field: "rate", Reason: "must be greater than -100%"}
	}

	latest := history[len(history)-1]
	points := make([]domain.SpendingPoint, 0, len(history)+years)
	points = append(points, history...)

	growth := decimal.NewFromInt(1).Add(rate)
	for k := 1; k <= years; k++ {
		factor := growth.Pow(decimal.NewFromInt(int64(k)))
		points = append(points, domain.SpendingPoint{
			Year:      latest.Year + k,
			Amount:    latest.Amount.Mul(factor).Round(2),
			Projected: true,
		})
	}

	projection := &domain.SpendingProjection{
		Points:         points,
		GrowthRate:     rate,
		LegacyShare:    DefaultLegacyShare,
		LegacyAmount:   LegacyShare(latest.Amount, DefaultLegacyShare),
		LatestActual:   latest,
		FinalProjected: points[len(points)-1],
	}
	if cagr, err := CAGR(history); err == nil {
		projection.HistoricCAGR = cagr
	}
	return projection, nil
}
