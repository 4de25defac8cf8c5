package calculation

import (
	"errors"
	"fmt"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/rpgo/savings-projector/pkg/decimal"
	shopdec "github.com/shopspring/decimal"
)

// MaxAge bounds both ages of a projection input.
const MaxAge = 120

var (
	// ErrInvalidHorizon is returned when the retirement age does not exceed the current age.
	ErrInvalidHorizon = errors.New("retirement age must be greater than current age")
	// ErrInvalidInput is the sentinel wrapped by every InputError.
	ErrInvalidInput = errors.New("invalid projection input")

	maxPercent = shopdec.NewFromInt(100)
)

// InputError reports a single out-of-domain input field.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// CheckInput verifies that in lies inside the domain the projection is defined on.
// Money amounts must be non-negative and carry no fraction of a cent.
func CheckInput(in domain.ProjectionInput) error {
	if in.CurrentAge < 0 || in.CurrentAge > MaxAge {
		return &InputError{Field: "current_age", Reason: fmt.Sprintf("must be between 0 and %d", MaxAge)}
	}
	if in.RetirementAge < 0 || in.RetirementAge > MaxAge {
		return &InputError{Field: "retirement_age", Reason: fmt.Sprintf("must be between 0 and %d", MaxAge)}
	}
	if in.RetirementAge <= in.CurrentAge {
		return fmt.Errorf("%w (current %d, retirement %d)", ErrInvalidHorizon, in.CurrentAge, in.RetirementAge)
	}
	if err := checkMoney("current_savings", in.CurrentSavings); err != nil {
		return err
	}
	if err := checkMoney("annual_contribution", in.AnnualContribution); err != nil {
		return err
	}
	if in.ExpectedReturn.IsNegative() || in.ExpectedReturn.GreaterThan(maxPercent) {
		return &InputError{Field: "expected_return", Reason: "must be between 0 and 100"}
	}
	if in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(maxPercent) {
		return &InputError{Field: "tax_rate", Reason: "must be between 0 and 100"}
	}
	return nil
}

func checkMoney(field string, amount shopdec.Decimal) error {
	if amount.IsNegative() {
		return &InputError{Field: field, Reason: "must be non-negative"}
	}
	if !decimal.NewMoneyFromDecimal(amount).IsWholeCents() {
		return &InputError{Field: field, Reason: fmt.Sprintf("must be whole cents, got %s", amount)}
	}
	return nil
}

// Project simulates the account year by year from the current age up to the
// retirement age. Contributions land at the start of each year, earnings accrue on
// the balance after the contribution, and taxes are withheld from gross earnings.
//
// Every monetary field is rounded to cents and the rounded ending balance is
// carried into the next year, so totals equal the sums of the ledger rows and
// each row starts exactly where the previous one ended.
func Project(in domain.ProjectionInput) (*domain.ProjectionResult, error) {
	if err := CheckInput(in); err != nil {
		return nil, err
	}

	years := in.Years()
	contribution := decimal.NewMoneyFromDecimal(in.AnnualContribution)
	balance := decimal.NewMoneyFromDecimal(in.CurrentSavings)

	result := &domain.ProjectionResult{
		YearlyBreakdown: make([]domain.YearRecord, 0, years),
	}
	contributions := make([]decimal.Money, 0, years)
	earnings := make([]decimal.Money, 0, years)
	taxesPaid := make([]decimal.Money, 0, years)

	for i := 0; i < years; i++ {
		starting := balance
		afterContribution := starting.Add(contribution)
		gross := afterContribution.ApplyPercent(in.ExpectedReturn)
		taxes := gross.ApplyPercent(in.TaxRate)
		ending := afterContribution.Add(gross.Sub(taxes)).Round()

		record := domain.YearRecord{
			Year:            in.CurrentAge + i + 1,
			StartingBalance: starting.Decimal,
			Contributions:   contribution.Decimal,
			Earnings:        gross.Round().Decimal,
			Taxes:           taxes.Round().Decimal,
			EndingBalance:   ending.Decimal,
		}
		result.YearlyBreakdown = append(result.YearlyBreakdown, record)

		contributions = append(contributions, contribution)
		earnings = append(earnings, gross.Round())
		taxesPaid = append(taxesPaid, taxes.Round())
		balance = ending
	}

	result.FinalBalance = balance.Decimal
	result.TotalContributions = decimal.Sum(contributions...).Decimal
	result.TotalEarnings = decimal.Sum(earnings...).Decimal
	result.TotalTaxes = decimal.Sum(taxesPaid...).Decimal
	return result, nil
}
