package domain

import "time"

// Configuration is the top-level document of a scenario file.
type Configuration struct {
	Scenarios []Scenario `json:"scenarios" yaml:"scenarios"`
}

// Scenario is a named projection input. When BirthDate is set the current age is
// derived from it as of AsOf (or the run date) instead of the literal CurrentAge.
type Scenario struct {
	Name      string          `json:"name" yaml:"name"`
	BirthDate string          `json:"birth_date,omitempty" yaml:"birth_date,omitempty"`
	AsOf      string          `json:"as_of,omitempty" yaml:"as_of,omitempty"`
	Input     ProjectionInput `json:"input" yaml:",inline"`
}

// ScenarioResult pairs a scenario with its projection.
type ScenarioResult struct {
	Name           string            `json:"name"`
	Input          ProjectionInput   `json:"input"`
	RetirementDate *time.Time        `json:"retirement_date,omitempty"`
	Projection     *ProjectionResult `json:"projection"`
}

// ProjectionReport is what the presentation layer renders.
type ProjectionReport struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Scenarios   []ScenarioResult `json:"scenarios"`
}
