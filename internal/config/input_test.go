package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/rpgo/savings-projector/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFile_Success(t *testing.T) {
	testConfig := "scenarios:\n" +
		"  - name: \"Baseline\"\n" +
		"    current_age: 30\n" +
		"    retirement_age: 65\n" +
		"    current_savings: 50000\n" +
		"    annual_contribution: 10000\n" +
		"    expected_return: 7.5\n" +
		"    tax_rate: 15\n" +
		"  - name: \"From Birth Date\"\n" +
		"    birth_date: \"1980-02-01\"\n" +
		"    as_of: \"2026-01-01\"\n" +
		"    retirement_age: 67\n" +
		"    current_savings: 0\n" +
		"    annual_contribution: 12000\n" +
		"    expected_return: 6\n" +
		"    tax_rate: 20\n"

	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeTemp(t, testConfig))

	require.NoError(t, err)
	require.Len(t, config.Scenarios, 2)

	first := config.Scenarios[0]
	assert.Equal(t, "Baseline", first.Name)
	assert.Equal(t, 30, first.Input.CurrentAge)
	assert.Equal(t, 65, first.Input.RetirementAge)
	assert.True(t, first.Input.CurrentSavings.Equal(decimal.NewFromInt(50000)))
	assert.True(t, first.Input.ExpectedReturn.Equal(decimal.RequireFromString("7.5")))

	second := config.Scenarios[1]
	assert.Equal(t, "1980-02-01", second.BirthDate)
	assert.Equal(t, "2026-01-01", second.AsOf)
	assert.Equal(t, 45, second.Input.CurrentAge)
	assert.Equal(t, 67, second.Input.RetirementAge)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	testConfig := `
scenarios:
	- name: "Tabs"
		current_age: 30
`
	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeTemp(t, testConfig))

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFile_InvalidScenario(t *testing.T) {
	testConfig := "scenarios:\n" +
		"  - name: \"Backwards\"\n" +
		"    current_age: 65\n" +
		"    retirement_age: 30\n" +
		"    current_savings: 1\n" +
		"    annual_contribution: 1\n" +
		"    expected_return: 1\n" +
		"    tax_rate: 1\n"

	_, err := NewInputParser().LoadFromFile(writeTemp(t, testConfig))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
	assert.Contains(t, err.Error(), "Retirement age must be greater than current age")

	var verr *validation.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func validScenario(name string) domain.Scenario {
	return domain.Scenario{
		Name: name,
		Input: domain.ProjectionInput{
			CurrentAge:         40,
			RetirementAge:      65,
			CurrentSavings:     decimal.NewFromInt(1000),
			AnnualContribution: decimal.NewFromInt(1000),
			ExpectedReturn:     decimal.NewFromInt(5),
			TaxRate:            decimal.NewFromInt(10),
		},
	}
}

func TestValidateConfiguration(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		config  *domain.Configuration
		wantErr string
	}{
		{"valid", &domain.Configuration{Scenarios: []domain.Scenario{validScenario("A"), validScenario("B")}}, ""},
		{"no scenarios", &domain.Configuration{}, "no scenarios provided"},
		{"missing name", &domain.Configuration{Scenarios: []domain.Scenario{validScenario("")}}, "name is required"},
		{"duplicate name", &domain.Configuration{Scenarios: []domain.Scenario{validScenario("A"), validScenario("A")}}, "duplicate name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parser.ValidateConfiguration(tt.config)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfiguration_BirthDateResolvesAge(t *testing.T) {
	sc := validScenario("Birth")
	sc.BirthDate = "1980-01-01"
	sc.AsOf = "2026-01-01"
	sc.Input.CurrentAge = 90 // replaced by the age on as_of
	assert.NoError(t, NewInputParser().ValidateConfiguration(&domain.Configuration{Scenarios: []domain.Scenario{sc}}))

	late := sc
	late.BirthDate = "1950-01-01"
	err := NewInputParser().ValidateConfiguration(&domain.Configuration{Scenarios: []domain.Scenario{late}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Retirement age must be greater than current age")

	sc.Input.TaxRate = decimal.NewFromInt(120)
	err = NewInputParser().ValidateConfiguration(&domain.Configuration{Scenarios: []domain.Scenario{sc}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Tax rate must be between 0 and 100")
}

func TestParse_MissingFields(t *testing.T) {
	testConfig := "scenarios:\n" +
		"  - name: \"Sparse\"\n" +
		"    current_age: 30\n" +
		"    retirement_age: 35\n"

	config, err := NewInputParser().Parse([]byte(testConfig))
	require.Error(t, err)
	assert.Nil(t, config)

	var verr *validation.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validation.Errors{
		validation.CurrentSavings:     "Current savings must be non-negative",
		validation.AnnualContribution: "Annual contribution must be non-negative",
		validation.ExpectedReturn:     "Expected return must be between 0 and 100",
		validation.TaxRate:            "Tax rate must be between 0 and 100",
	}, verr.Fields)
	assert.Contains(t, err.Error(), `scenario "Sparse"`)
}

func TestParse_NullIsMissing(t *testing.T) {
	testConfig := "scenarios:\n" +
		"  - name: \"Nulls\"\n" +
		"    current_age: 30\n" +
		"    retirement_age: 35\n" +
		"    current_savings: ~\n" +
		"    annual_contribution: 1\n" +
		"    expected_return: 1\n" +
		"    tax_rate: 1\n"

	_, err := NewInputParser().Parse([]byte(testConfig))
	var verr *validation.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validation.Errors{validation.CurrentSavings: "Current savings must be non-negative"}, verr.Fields)
}

func TestParse_UnknownKey(t *testing.T) {
	testConfig := "scenarios:\n" +
		"  - name: \"Typo\"\n" +
		"    current_age: 30\n" +
		"    retirement_age: 35\n" +
		"    current_savings: 1\n" +
		"    annual_contribution: 1\n" +
		"    expected_retrun: 7\n" +
		"    tax_rate: 1\n"

	_, err := NewInputParser().Parse([]byte(testConfig))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown key "expected_retrun"`)
}

func TestParse_NonScalarValue(t *testing.T) {
	testConfig := "scenarios:\n" +
		"  - name: \"List\"\n" +
		"    current_age: [30, 31]\n"

	_, err := NewInputParser().Parse([]byte(testConfig))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "current_age: must be a single value")
}

func TestParse_SubCentMoney(t *testing.T) {
	testConfig := "scenarios:\n" +
		"  - name: \"Fractions\"\n" +
		"    current_age: 30\n" +
		"    retirement_age: 35\n" +
		"    current_savings: 0.005\n" +
		"    annual_contribution: 1\n" +
		"    expected_return: 0\n" +
		"    tax_rate: 1\n"

	_, err := NewInputParser().Parse([]byte(testConfig))
	var verr *validation.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Current savings must be in whole cents", verr.Fields[validation.CurrentSavings])
}

func TestParse_BirthDateOrdersAges(t *testing.T) {
	testConfig := "scenarios:\n" +
		"  - name: \"Already Retired\"\n" +
		"    birth_date: \"1950-06-01\"\n" +
		"    as_of: \"2026-01-01\"\n" +
		"    retirement_age: 67\n" +
		"    current_savings: 1\n" +
		"    annual_contribution: 1\n" +
		"    expected_return: 1\n" +
		"    tax_rate: 1\n"

	_, err := NewInputParser().Parse([]byte(testConfig))
	var verr *validation.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Retirement age must be greater than current age", verr.Fields[validation.RetirementAge])
}

func TestParse_NamesCheckedFirst(t *testing.T) {
	testConfig := "scenarios:\n" +
		"  - current_age: 30\n"

	_, err := NewInputParser().Parse([]byte(testConfig))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario 0: name is required")

	_, err = NewInputParser().Parse([]byte("scenarios: []\n"))
	assert.ErrorContains(t, err, "no scenarios provided")
}

func TestExampleConfigurationRoundTrip(t *testing.T) {
	parser := NewInputParser()
	example := parser.CreateExampleConfiguration()
	require.NoError(t, parser.ValidateConfiguration(example))

	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, SaveConfiguration(example, path))

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, loaded.Scenarios, len(example.Scenarios))
	for i := range example.Scenarios {
		assert.Equal(t, example.Scenarios[i].Name, loaded.Scenarios[i].Name)
		assert.Equal(t, example.Scenarios[i].BirthDate, loaded.Scenarios[i].BirthDate)
		assert.True(t, example.Scenarios[i].Input.ExpectedReturn.Equal(loaded.Scenarios[i].Input.ExpectedReturn))
	}
}
