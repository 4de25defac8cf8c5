package validation

import (
	"strings"

	money "github.com/rpgo/savings-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

// Field names one projection input as it is keyed in forms and request bodies.
type Field string

const (
	CurrentAge         Field = "currentAge"
	RetirementAge      Field = "retirementAge"
	CurrentSavings     Field = "currentSavings"
	AnnualContribution Field = "annualContribution"
	ExpectedReturn     Field = "expectedReturn"
	TaxRate            Field = "taxRate"
)

// Fields lists every input field in display order.
var Fields = []Field{CurrentAge, RetirementAge, CurrentSavings, AnnualContribution, ExpectedReturn, TaxRate}

// keys maps the snake_case names used by request bodies and scenario files to
// their field.
var keys = map[string]Field{
	"current_age":         CurrentAge,
	"retirement_age":      RetirementAge,
	"current_savings":     CurrentSavings,
	"annual_contribution": AnnualContribution,
	"expected_return":     ExpectedReturn,
	"tax_rate":            TaxRate,
}

// FieldByKey resolves either the snake_case key or the field name itself.
func FieldByKey(key string) (Field, bool) {
	if f, ok := keys[key]; ok {
		return f, true
	}
	if IsKnown(Field(key)) {
		return Field(key), true
	}
	return "", false
}

// dependents maps a field to the fields whose rules read it.
var dependents = map[Field]Field{
	CurrentAge:    RetirementAge,
	RetirementAge: CurrentAge,
}

// Values holds raw, unparsed field text keyed by field.
type Values map[Field]string

// Errors maps a field to its validation message. Fields that pass are absent.
type Errors map[Field]string

// Rule is one row of the validation table: when Violated reports true for a
// field's value, Message is shown for that field.
type Rule struct {
	Field    Field
	Message  string
	Violated func(value string, all Values) bool
}

var (
	zero       = decimal.Zero
	maxAge     = decimal.NewFromInt(120)
	maxPercent = decimal.NewFromInt(100)
)

// parse reads a field's numeric value. ok is false for empty or non-numeric text.
func parse(value string) (decimal.Decimal, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return zero, false
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return zero, false
	}
	return d, true
}

func outside(lo, hi decimal.Decimal) func(string, Values) bool {
	return func(value string, _ Values) bool {
		d, ok := parse(value)
		return !ok || d.LessThan(lo) || d.GreaterThan(hi)
	}
}

func negative(value string, _ Values) bool {
	d, ok := parse(value)
	return !ok || d.IsNegative()
}

// subCent reports amounts finer than a cent. Unparseable text is left to the
// sign rule.
func subCent(value string, _ Values) bool {
	m, err := money.NewMoneyFromString(strings.TrimSpace(value))
	return err == nil && !m.IsWholeCents()
}

func fractional(value string, _ Values) bool {
	d, _ := parse(value)
	return !d.IsInteger()
}

// compareTo returns a predicate that parses the other field and, when it has a
// numeric value, reports whether cmp(this, other) signals a violation.
func compareTo(other Field, cmp func(this, that decimal.Decimal) bool) func(string, Values) bool {
	return func(value string, all Values) bool {
		that, ok := parse(all[other])
		if !ok {
			return false
		}
		this, _ := parse(value)
		return cmp(this, that)
	}
}

// Table is the fixed rule set, evaluated in order; the first violated rule of a
// field decides its message.
var Table = []Rule{
	{CurrentAge, "Current age must be between 0 and 120", outside(zero, maxAge)},
	{CurrentAge, "Current age must be a whole number", fractional},
	{CurrentAge, "Current age must be less than retirement age", compareTo(RetirementAge, func(this, that decimal.Decimal) bool {
		return this.GreaterThanOrEqual(that)
	})},
	{RetirementAge, "Retirement age must be between 0 and 120", outside(zero, maxAge)},
	{RetirementAge, "Retirement age must be a whole number", fractional},
	{RetirementAge, "Retirement age must be greater than current age", compareTo(CurrentAge, func(this, that decimal.Decimal) bool {
		return this.LessThanOrEqual(that)
	})},
	{CurrentSavings, "Current savings must be non-negative", negative},
	{CurrentSavings, "Current savings must be in whole cents", subCent},
	{AnnualContribution, "Annual contribution must be non-negative", negative},
	{AnnualContribution, "Annual contribution must be in whole cents", subCent},
	{ExpectedReturn, "Expected return must be between 0 and 100", outside(zero, maxPercent)},
	{TaxRate, "Tax rate must be between 0 and 100", outside(zero, maxPercent)},
}

// ValidateField checks one field against the table and returns its message, or
// "" when the field is valid.
func ValidateField(field Field, all Values) string {
	value := all[field]
	for _, rule := range Table {
		if rule.Field == field && rule.Violated(value, all) {
			return rule.Message
		}
	}
	return ""
}

// ValidateAll checks every field.
func ValidateAll(all Values) Errors {
	errs := Errors{}
	for _, f := range Fields {
		if msg := ValidateField(f, all); msg != "" {
			errs[f] = msg
		}
	}
	return errs
}

// IsKnown reports whether name is one of the input fields.
func IsKnown(name Field) bool {
	for _, f := range Fields {
		if f == name {
			return true
		}
	}
	return false
}
