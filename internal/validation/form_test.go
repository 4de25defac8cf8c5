package validation

import (
	"errors"
	"testing"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(f Form, values Values) Form {
	for _, field := range Fields {
		if v, ok := values[field]; ok {
			f = f.With(field, v)
		}
	}
	return f
}

func validValues() Values {
	return Values{
		CurrentAge:         "30",
		RetirementAge:      "65",
		CurrentSavings:     "50000",
		AnnualContribution: "10000",
		ExpectedReturn:     "7",
		TaxRate:            "15",
	}
}

func TestNewFormCannotCalculate(t *testing.T) {
	f := NewForm()
	assert.False(t, f.CanCalculate())
	assert.Empty(t, f.Errors())
}

func TestCanCalculateWhenAllFieldsValid(t *testing.T) {
	f := fill(NewForm(), validValues())
	assert.True(t, f.CanCalculate())
	assert.Empty(t, f.Errors())
}

func TestRetirementAgeBelowCurrentAge(t *testing.T) {
	f := NewForm().With(CurrentAge, "65").With(RetirementAge, "30")
	assert.Equal(t, "Retirement age must be greater than current age", f.Error(RetirementAge))
	assert.Equal(t, "Current age must be less than retirement age", f.Error(CurrentAge))
	assert.False(t, f.CanCalculate())
}

func TestCurrentAgeEqualToRetirementAge(t *testing.T) {
	f := NewForm().With(RetirementAge, "65").With(CurrentAge, "65")
	assert.Equal(t, "Current age must be less than retirement age", f.Error(CurrentAge))
	assert.Equal(t, "Retirement age must be greater than current age", f.Error(RetirementAge))
}

func TestFixingOneAgeClearsTheOther(t *testing.T) {
	f := NewForm().With(CurrentAge, "65").With(RetirementAge, "30")
	require.NotEmpty(t, f.Error(CurrentAge))

	f = f.With(RetirementAge, "70")
	assert.Empty(t, f.Error(RetirementAge))
	assert.Empty(t, f.Error(CurrentAge))
}

func TestFieldMessages(t *testing.T) {
	tests := []struct {
		field Field
		value string
		want  string
	}{
		{CurrentSavings, "-1000", "Current savings must be non-negative"},
		{AnnualContribution, "-500", "Annual contribution must be non-negative"},
		{ExpectedReturn, "150", "Expected return must be between 0 and 100"},
		{TaxRate, "150", "Tax rate must be between 0 and 100"},
		{TaxRate, "-0.1", "Tax rate must be between 0 and 100"},
		{CurrentAge, "150", "Current age must be between 0 and 120"},
		{CurrentAge, "", "Current age must be between 0 and 120"},
		{CurrentAge, "thirty", "Current age must be between 0 and 120"},
		{CurrentAge, "30.5", "Current age must be a whole number"},
		{RetirementAge, "121", "Retirement age must be between 0 and 120"},
		{RetirementAge, "64.5", "Retirement age must be a whole number"},
		{CurrentSavings, "", "Current savings must be non-negative"},
		{CurrentSavings, "lots", "Current savings must be non-negative"},
		{CurrentSavings, "0.005", "Current savings must be in whole cents"},
		{CurrentSavings, "-0.005", "Current savings must be non-negative"},
		{AnnualContribution, "5000.456", "Annual contribution must be in whole cents"},
		{AnnualContribution, "", "Annual contribution must be non-negative"},
	}
	for _, tt := range tests {
		t.Run(string(tt.field)+"="+tt.value, func(t *testing.T) {
			f := NewForm().With(tt.field, tt.value)
			assert.Equal(t, tt.want, f.Error(tt.field))
		})
	}
}

func TestErrorsUpdateOnEveryChange(t *testing.T) {
	f := NewForm().With(CurrentAge, "150")
	assert.Equal(t, "Current age must be between 0 and 120", f.Error(CurrentAge))

	f = f.With(CurrentAge, "30")
	assert.Empty(t, f.Error(CurrentAge))
}

func TestWithDoesNotMutateReceiver(t *testing.T) {
	before := NewForm().With(CurrentAge, "30")
	after := before.With(CurrentAge, "150")

	assert.Equal(t, "30", before.Value(CurrentAge))
	assert.Empty(t, before.Error(CurrentAge))
	assert.Equal(t, "150", after.Value(CurrentAge))
	assert.NotEmpty(t, after.Error(CurrentAge))

	errs := after.Errors()
	errs[TaxRate] = "tampered"
	assert.Empty(t, after.Error(TaxRate))
}

func TestAutofill(t *testing.T) {
	f := Autofill()
	assert.Equal(t, validValues(), f.Values())
	assert.Empty(t, f.Errors())
	assert.True(t, f.CanCalculate())
}

func TestSubmit(t *testing.T) {
	in, err := fill(NewForm(), validValues()).Submit()
	require.NoError(t, err)
	assert.Equal(t, 30, in.CurrentAge)
	assert.Equal(t, 65, in.RetirementAge)
	assert.True(t, in.CurrentSavings.Equal(decimal.NewFromInt(50000)))
	assert.True(t, in.AnnualContribution.Equal(decimal.NewFromInt(10000)))
	assert.True(t, in.ExpectedReturn.Equal(decimal.NewFromInt(7)))
	assert.True(t, in.TaxRate.Equal(decimal.NewFromInt(15)))
}

func TestSubmitAcceptsDecimalRates(t *testing.T) {
	values := validValues()
	values[ExpectedReturn] = "7.5"
	values[TaxRate] = "15.25"

	in, err := fill(NewForm(), values).Submit()
	require.NoError(t, err)
	assert.True(t, in.ExpectedReturn.Equal(decimal.RequireFromString("7.5")))
	assert.True(t, in.TaxRate.Equal(decimal.RequireFromString("15.25")))
}

func TestSubmitRejectsInvalidForm(t *testing.T) {
	values := validValues()
	values[CurrentAge] = "65"
	values[RetirementAge] = "30"

	_, err := fill(NewForm(), values).Submit()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 2)
	assert.Contains(t, err.Error(), "retirementAge: Retirement age must be greater than current age")
}

func TestSubmitEmptyForm(t *testing.T) {
	_, err := NewForm().Submit()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, len(Fields))
}

func TestValidateInput(t *testing.T) {
	in := domain.ProjectionInput{
		CurrentAge:         64,
		RetirementAge:      65,
		CurrentSavings:     decimal.NewFromInt(100000),
		AnnualContribution: decimal.NewFromInt(10000),
		ExpectedReturn:     decimal.NewFromInt(7),
		TaxRate:            decimal.NewFromInt(15),
	}
	assert.NoError(t, ValidateInput(in))

	in.RetirementAge = in.CurrentAge
	var verr *ValidationError
	require.ErrorAs(t, ValidateInput(in), &verr)
	assert.Equal(t, "Retirement age must be greater than current age", verr.Fields[RetirementAge])
}

func TestFormFromValues(t *testing.T) {
	values := validValues()
	values[TaxRate] = "101"
	f := FormFromValues(values)
	assert.Equal(t, "Tax rate must be between 0 and 100", f.Error(TaxRate))
	assert.Len(t, f.Errors(), 1)
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown(TaxRate))
	assert.False(t, IsKnown(Field("salary")))
}

func TestSubmitAcceptsWholeCents(t *testing.T) {
	values := validValues()
	values[CurrentSavings] = "0.01"
	values[AnnualContribution] = "1234.5"

	in, err := fill(NewForm(), values).Submit()
	require.NoError(t, err)
	assert.True(t, in.CurrentSavings.Equal(decimal.RequireFromString("0.01")))
	assert.True(t, in.AnnualContribution.Equal(decimal.RequireFromString("1234.50")))
}

func TestSubmitMissingFields(t *testing.T) {
	_, err := FormFromValues(Values{CurrentAge: "30", RetirementAge: "35"}).Submit()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, Errors{
		CurrentSavings:     "Current savings must be non-negative",
		AnnualContribution: "Annual contribution must be non-negative",
		ExpectedReturn:     "Expected return must be between 0 and 100",
		TaxRate:            "Tax rate must be between 0 and 100",
	}, verr.Fields)
}

func TestFieldByKey(t *testing.T) {
	tests := map[string]Field{
		"current_age":         CurrentAge,
		"retirementAge":       RetirementAge,
		"annual_contribution": AnnualContribution,
		"tax_rate":            TaxRate,
	}
	for key, want := range tests {
		got, ok := FieldByKey(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got)
	}

	_, ok := FieldByKey("expected_retrun")
	assert.False(t, ok)
}
