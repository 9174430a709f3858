package output

import (
	"fmt"
	"strconv"

	"github.com/ramp/cost-calculator/internal/domain"
	money "github.com/ramp/cost-calculator/pkg/decimal"
	"github.com/ramp/cost-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount in millions of dollars: "$45.00M", "-$5.00M".
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatBillions formats an amount in billions of dollars: "$79.86B".
func FormatBillions(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).FormatUnit(money.Billions)
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fraction (0.125) as a percentage ("12.5%").
func FormatRate(rate decimal.Decimal) string { return rate.Mul(decimalHundred).String() + "%" }

// PeriodLabel names period i of a result: "Oct 2025" or "FY2027" when a
// fiscal start year is set, otherwise "Month 14" / "Year 3".
func PeriodLabel(r *domain.AmortizationResult, i int) string {
	if r.Inputs.FiscalYearStart > 0 {
		return dateutil.PeriodLabel(r.Inputs.FiscalYearStart, r.PeriodsPerYear, i)
	}
	if r.PeriodsPerYear == domain.MonthsPerYear {
		return fmt.Sprintf("Month %d", i+1)
	}
	return fmt.Sprintf("Year %d", i+1)
}

// PeriodPhase classifies period i as "rebuild", "incentive" or "steady".
func PeriodPhase(r *domain.AmortizationResult, i int) string {
	switch {
	case r.IsRebuildPeriod(i):
		return "rebuild"
	case !r.Payouts[i].IsZero():
		return "incentive"
	case i-r.Inputs.RebuildDuration < r.Inputs.IncentiveWindow():
		// zero savings (reduced == current) still sits in the window
		return "incentive"
	default:
		return "steady"
	}
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

var decimalHundred = decimal.NewFromInt(100)
