package domain

import (
	"github.com/shopspring/decimal"
)

// ProjectionInput is the validated set of scalars a projection runs on.
// Percentages are expressed as 0-100, not as fractions.
type ProjectionInput struct {
	CurrentAge         int             `json:"current_age" yaml:"current_age"`
	RetirementAge      int             `json:"retirement_age" yaml:"retirement_age"`
	CurrentSavings     decimal.Decimal `json:"current_savings" yaml:"current_savings"`
	AnnualContribution decimal.Decimal `json:"annual_contribution" yaml:"annual_contribution"`
	ExpectedReturn     decimal.Decimal `json:"expected_return" yaml:"expected_return"`
	TaxRate            decimal.Decimal `json:"tax_rate" yaml:"tax_rate"`
}

// Years returns the number of simulated years (may be zero or negative for invalid input).
func (in ProjectionInput) Years() int {
	return in.RetirementAge - in.CurrentAge
}

// YearRecord is one row of the yearly breakdown. Monetary fields are rounded to cents.
type YearRecord struct {
	Year            int             `json:"year"`
	StartingBalance decimal.Decimal `json:"starting_balance"`
	Contributions   decimal.Decimal `json:"contributions"`
	Earnings        decimal.Decimal `json:"earnings"`
	Taxes           decimal.Decimal `json:"taxes"`
	EndingBalance   decimal.Decimal `json:"ending_balance"`
}

// NetEarnings is the growth kept after taxes.
func (yr YearRecord) NetEarnings() decimal.Decimal {
	return yr.Earnings.Sub(yr.Taxes)
}

// ProjectionResult holds the ledger of one projection run and its aggregates.
type ProjectionResult struct {
	YearlyBreakdown    []YearRecord    `json:"yearly_breakdown"`
	FinalBalance       decimal.Decimal `json:"final_balance"`
	TotalContributions decimal.Decimal `json:"total_contributions"`
	TotalEarnings      decimal.Decimal `json:"total_earnings"`
	TotalTaxes         decimal.Decimal `json:"total_taxes"`
}

// TotalNetEarnings is total earnings less total taxes.
func (r *ProjectionResult) TotalNetEarnings() decimal.Decimal {
	return r.TotalEarnings.Sub(r.TotalTaxes)
}
