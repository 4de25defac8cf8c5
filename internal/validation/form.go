package validation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// ValidationError carries the per-field messages that blocked a submission.
type ValidationError struct {
	Fields Errors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		keys = append(keys, string(f))
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[Field(k)]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Form is an immutable snapshot of the input fields and their validation state.
// Every change produces a new Form; the receiver is never modified.
type Form struct {
	values Values
	errors Errors
}

// NewForm returns an empty form with no errors reported yet.
func NewForm() Form {
	return Form{values: Values{}, errors: Errors{}}
}

// FormFromValues builds a form from raw values and validates every field.
func FormFromValues(values Values) Form {
	f := Form{values: copyValues(values)}
	f.errors = ValidateAll(f.values)
	return f
}

// Autofill returns a form pre-populated with a typical saver's numbers.
func Autofill() Form {
	return Form{
		values: Values{
			CurrentAge:         "30",
			RetirementAge:      "65",
			CurrentSavings:     "50000",
			AnnualContribution: "10000",
			ExpectedReturn:     "7",
			TaxRate:            "15",
		},
		errors: Errors{},
	}
}

// With returns a copy of the form with field set to value. The changed field is
// revalidated, and so is its dependent age field when that one already holds a value.
func (f Form) With(field Field, value string) Form {
	next := Form{values: copyValues(f.values), errors: copyErrors(f.errors)}
	next.values[field] = value
	next.setError(field, ValidateField(field, next.values))
	if dep, ok := dependents[field]; ok && next.values[dep] != "" {
		next.setError(dep, ValidateField(dep, next.values))
	}
	return next
}

func (f Form) setError(field Field, msg string) {
	if msg == "" {
		delete(f.errors, field)
		return
	}
	f.errors[field] = msg
}

// Value returns the raw text of a field.
func (f Form) Value(field Field) string { return f.values[field] }

// Values returns a copy of all raw field values.
func (f Form) Values() Values { return copyValues(f.values) }

// Error returns the current message for a field, or "".
func (f Form) Error(field Field) string { return f.errors[field] }

// Errors returns a copy of the current field errors.
func (f Form) Errors() Errors { return copyErrors(f.errors) }

// CanCalculate reports whether every field has a value and none has an error.
func (f Form) CanCalculate() bool {
	for _, field := range Fields {
		if strings.TrimSpace(f.values[field]) == "" {
			return false
		}
	}
	return len(f.errors) == 0
}

// Submit validates every field and, when all pass, returns the typed input.
func (f Form) Submit() (domain.ProjectionInput, error) {
	if errs := ValidateAll(f.values); len(errs) > 0 {
		return domain.ProjectionInput{}, &ValidationError{Fields: errs}
	}
	num := func(field Field) decimal.Decimal {
		d, _ := parse(f.values[field])
		return d
	}
	return domain.ProjectionInput{
		CurrentAge:         int(num(CurrentAge).IntPart()),
		RetirementAge:      int(num(RetirementAge).IntPart()),
		CurrentSavings:     num(CurrentSavings),
		AnnualContribution: num(AnnualContribution),
		ExpectedReturn:     num(ExpectedReturn),
		TaxRate:            num(TaxRate),
	}, nil
}

// ValuesFromInput renders a typed input back into raw values so configurations
// built in code go through the same rule table as form input.
func ValuesFromInput(in domain.ProjectionInput) Values {
	return Values{
		CurrentAge:         strconv.Itoa(in.CurrentAge),
		RetirementAge:      strconv.Itoa(in.RetirementAge),
		CurrentSavings:     in.CurrentSavings.String(),
		AnnualContribution: in.AnnualContribution.String(),
		ExpectedReturn:     in.ExpectedReturn.String(),
		TaxRate:            in.TaxRate.String(),
	}
}

// ValidateInput runs the rule table over a typed input.
func ValidateInput(in domain.ProjectionInput) error {
	if errs := ValidateAll(ValuesFromInput(in)); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func copyValues(v Values) Values {
	out := make(Values, len(v))
	for k, s := range v {
		out[k] = s
	}
	return out
}

func copyErrors(e Errors) Errors {
	out := make(Errors, len(e))
	for k, s := range e {
		out[k] = s
	}
	return out
}
