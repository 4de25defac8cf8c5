package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rpgo/savings-projector/internal/calculation"
	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/rpgo/savings-projector/internal/validation"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads scenarios from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// rawConfiguration keeps every scenario as raw YAML nodes so that a key the
// file leaves out stays empty instead of decoding to zero.
type rawConfiguration struct {
	Scenarios []map[string]yaml.Node `yaml:"scenarios"`
}

// Parse decodes and validates a scenario document. Input fields go through the
// same rule table as form input; a scenario with a birth_date has its current
// age derived from it, overriding any current_age in the file.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var raw rawConfiguration
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config, err := decodeScenarios(raw.Scenarios)
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func decodeScenarios(nodes []map[string]yaml.Node) (*domain.Configuration, error) {
	config := &domain.Configuration{Scenarios: make([]domain.Scenario, 0, len(nodes))}
	names := make([]string, 0, len(nodes))
	values := make([]validation.Values, 0, len(nodes))
	for i, fields := range nodes {
		var scenario domain.Scenario
		vals := validation.Values{}
		for key, node := range fields {
			text, err := scalar(node)
			if err != nil {
				return nil, fmt.Errorf("scenario %d: %s: %w", i, key, err)
			}
			switch key {
			case "name":
				scenario.Name = text
			case "birth_date":
				scenario.BirthDate = text
			case "as_of":
				scenario.AsOf = text
			default:
				field, ok := validation.FieldByKey(key)
				if !ok {
					return nil, fmt.Errorf("scenario %d: unknown key %q", i, key)
				}
				vals[field] = text
			}
		}
		names = append(names, scenario.Name)
		values = append(values, vals)
		config.Scenarios = append(config.Scenarios, scenario)
	}
	if err := checkNames(names); err != nil {
		return nil, err
	}

	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		if scenario.BirthDate != "" {
			age, _, err := calculation.AgeFromBirthDate(scenario.BirthDate, scenario.AsOf)
			if err != nil {
				return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
			}
			values[i][validation.CurrentAge] = strconv.Itoa(age)
		}
		in, err := validation.FormFromValues(values[i]).Submit()
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		scenario.Input = in
	}
	return config, nil
}

// scalar returns the text of a scalar node; null reads as empty.
func scalar(node yaml.Node) (string, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = *node.Alias
	}
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("must be a single value")
	}
	if node.ShortTag() == "!!null" {
		return "", nil
	}
	return node.Value, nil
}

func checkNames(names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("no scenarios provided")
	}
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		if name == "" {
			return fmt.Errorf("scenario %d: name is required", i)
		}
		if seen[name] {
			return fmt.Errorf("scenario %d: duplicate name %q", i, name)
		}
		seen[name] = true
	}
	return nil
}

// ValidateConfiguration validates a typed configuration. Scenarios with a birth
// date are checked with the current age that date resolves to.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	names := make([]string, 0, len(config.Scenarios))
	for _, scenario := range config.Scenarios {
		names = append(names, scenario.Name)
	}
	if err := checkNames(names); err != nil {
		return err
	}

	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		in, _, err := calculation.ResolveInput(scenario)
		if err != nil {
			return fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		if err := validation.ValidateInput(in); err != nil {
			return fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
	}

	return nil
}

// SaveConfiguration writes a configuration as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Scenarios: []domain.Scenario{
			{
				Name: "Typical Saver",
				Input: domain.ProjectionInput{
					CurrentAge:         30,
					RetirementAge:      65,
					CurrentSavings:     decimal.NewFromInt(50000),
					AnnualContribution: decimal.NewFromInt(10000),
					ExpectedReturn:     decimal.NewFromInt(7),
					TaxRate:            decimal.NewFromInt(15),
				},
			},
			{
				Name: "Aggressive Saver",
				Input: domain.ProjectionInput{
					CurrentAge:         30,
					RetirementAge:      60,
					CurrentSavings:     decimal.NewFromInt(50000),
					AnnualContribution: decimal.NewFromInt(20000),
					ExpectedReturn:     decimal.NewFromFloat(7.5),
					TaxRate:            decimal.NewFromInt(15),
				},
			},
			{
				Name:      "Late Starter",
				BirthDate: "1975-06-15",
				Input: domain.ProjectionInput{
					RetirementAge:      67,
					CurrentSavings:     decimal.NewFromInt(20000),
					AnnualContribution: decimal.NewFromInt(15000),
					ExpectedReturn:     decimal.NewFromInt(6),
					TaxRate:            decimal.NewFromInt(20),
				},
			},
		},
	}
}
