package decimal

import (
	"github.com/shopspring/decimal"
)

// Money is an amount in millions of dollars, the unit every calculator input uses.
type Money struct {
	decimal.Decimal
}

// Unit suffixes for Format.
const (
	Millions = "M"
	Billions = "B"
)

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds to cents of a million (two places).
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// PerPeriod splits an annual amount evenly across periodsPerYear periods.
func (m Money) PerPeriod(periodsPerYear int) Money {
	if periodsPerYear <= 1 {
		return m
	}
	return Money{m.Decimal.Div(decimal.NewFromInt(int64(periodsPerYear)))}
}

// Share returns rate × m, e.g. an incentive payout drawn from savings.
func (m Money) Share(rate decimal.Decimal) Money {
	return Money{m.Decimal.Mul(rate)}
}

// PercentOf returns m as a percentage of whole; zero when whole is zero.
func (m Money) PercentOf(whole Money) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return m.Decimal.Div(whole.Decimal).Mul(decimal.NewFromInt(100))
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// GreaterThan checks if this amount is greater than another
func (m Money) GreaterThan(other Money) bool {
	return m.Decimal.GreaterThan(other.Decimal)
}

// LessThan checks if this amount is less than another
func (m Money) LessThan(other Money) bool {
	return m.Decimal.LessThan(other.Decimal)
}

// Equal checks if this amount equals another
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount with two decimals and no unit.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount in millions: "$45.00M", "-$12.50M".
func (m Money) Format() string {
	return m.FormatUnit(Millions)
}

// FormatUnit renders the amount with the given unit suffix, sign before the dollar sign.
func (m Money) FormatUnit(unit string) string {
	if m.IsNegative() {
		return "-$" + m.Decimal.Neg().StringFixed(2) + unit
	}
	return "$" + m.String() + unit
}
