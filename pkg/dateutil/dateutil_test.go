package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFiscalYear(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"First day of FY2026", time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), 2026},
		{"Last day of FY2025", time.Date(2025, 9, 30, 23, 59, 0, 0, time.UTC), 2025},
		{"January belongs to same calendar year", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), 2026},
		{"December rolls forward", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 2025},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FiscalYear(tt.date))
		})
	}
}

func TestFiscalYearBoundaries(t *testing.T) {
	begin := BeginningOfFiscalYear(2026)
	next := BeginningOfFiscalYear(2027)

	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), begin)
	assert.Equal(t, 2026, FiscalYear(begin))
	assert.Equal(t, 2026, FiscalYear(next.Add(-time.Nanosecond)))
	assert.Equal(t, 2027, FiscalYear(next))
}

func TestFiscalYearLabel(t *testing.T) {
	assert.Equal(t, "FY2026", FiscalYearLabel(2026))
}

func TestPeriodStartAndLabel(t *testing.T) {
	tests := []struct {
		name           string
		fy             int
		periodsPerYear int
		index          int
		wantStart      time.Time
		wantLabel      string
	}{
		{"first month", 2026, 12, 0, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), "Oct 2025"},
		{"fourth month crosses calendar year", 2026, 12, 3, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "Jan 2026"},
		{"thirteenth month is next FY", 2026, 12, 12, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), "Oct 2026"},
		{"first year", 2026, 1, 0, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), "FY2026"},
		{"third year", 2026, 1, 2, time.Date(2027, 10, 1, 0, 0, 0, 0, time.UTC), "FY2028"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStart, PeriodStart(tt.fy, tt.periodsPerYear, tt.index))
			assert.Equal(t, tt.wantLabel, PeriodLabel(tt.fy, tt.periodsPerYear, tt.index))
		})
	}
}
