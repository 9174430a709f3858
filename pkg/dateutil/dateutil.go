package dateutil

import (
	"fmt"
	"time"
)

// FiscalYearStartMonth is the first month of the US federal fiscal year.
const FiscalYearStartMonth = time.October

// FiscalYear returns the federal fiscal year containing the given date.
// FY2026 runs from 1 October 2025 through 30 September 2026.
func FiscalYear(date time.Time) int {
	if date.Month() >= FiscalYearStartMonth {
		return date.Year() + 1
	}
	return date.Year()
}

// BeginningOfFiscalYear returns 1 October of the calendar year before fy.
func BeginningOfFiscalYear(fy int) time.Time {
	return time.Date(fy-1, FiscalYearStartMonth, 1, 0, 0, 0, 0, time.UTC)
}

// FiscalYearLabel formats a fiscal year as "FY2026".
func FiscalYearLabel(fy int) string {
	return fmt.Sprintf("FY%d", fy)
}

// PeriodStart returns the first day of the period at index (0-based), counting
// from the start of fiscal year fy. periodsPerYear is 12 for months, 1 for years.
func PeriodStart(fy, periodsPerYear, index int) time.Time {
	start := BeginningOfFiscalYear(fy)
	if periodsPerYear == 12 {
		return AddMonths(start, index)
	}
	return AddYears(start, index)
}

// PeriodLabel names the period at index: "Oct 2025" for months, "FY2027" for years.
func PeriodLabel(fy, periodsPerYear, index int) string {
	if periodsPerYear == 12 {
		return PeriodStart(fy, periodsPerYear, index).Format("Jan 2006")
	}
	return FiscalYearLabel(fy + index)
}

// AddYears adds a specified number of years to a date
func AddYears(date time.Time, years int) time.Time {
	return date.AddDate(years, 0, 0)
}

// AddMonths adds a specified number of months to a date
func AddMonths(date time.Time, months int) time.Time {
	return date.AddDate(0, months, 0)
}
