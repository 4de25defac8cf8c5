package decimal

import (
	"github.com/shopspring/decimal"
)

// CentPlaces is the number of fractional digits kept for monetary amounts.
const CentPlaces = 2

var hundred = decimal.NewFromInt(100)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
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

// Round rounds the amount to cents, half away from zero.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(CentPlaces)}
}

// IsWholeCents reports whether the amount carries no more than two decimal places.
func (m Money) IsWholeCents() bool {
	return m.Decimal.Mul(hundred).IsInteger()
}

// Percent converts a percentage (7.5 for 7.5%) into a multiplier (0.075).
func Percent(p decimal.Decimal) decimal.Decimal {
	return p.Div(hundred)
}

// ApplyPercent returns the given percentage of the amount, unrounded.
func (m Money) ApplyPercent(pct decimal.Decimal) Money {
	return Money{m.Decimal.Mul(Percent(pct))}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Sum adds up a list of amounts.
func Sum(amounts ...Money) Money {
	total := Zero()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}
