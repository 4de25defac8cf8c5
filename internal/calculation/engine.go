package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/rpgo/savings-projector/pkg/dateutil"
)

// ProjectionEngine runs named scenarios through Project and assembles a report.
type ProjectionEngine struct {
	Logger Logger
}

// NewProjectionEngine creates a new projection engine with a no-op logger.
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// AgeFromBirthDate returns the whole-year age on asOf (today when empty) of
// someone born on birthDate, plus the parsed birth date. Both dates use YYYY-MM-DD.
func AgeFromBirthDate(birthDate, asOf string) (int, time.Time, error) {
	birth, err := dateutil.ParseDate(birthDate)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("birth_date: %w", err)
	}
	at := nowFunc().UTC()
	if asOf != "" {
		if at, err = dateutil.ParseDate(asOf); err != nil {
			return 0, time.Time{}, fmt.Errorf("as_of: %w", err)
		}
	}
	age, err := dateutil.AgeOn(birth, at)
	if err != nil {
		return 0, time.Time{}, err
	}
	return age, birth, nil
}

// ResolveInput returns the scenario input with CurrentAge derived from BirthDate
// when one is given, plus the retirement date implied by that birth date.
func ResolveInput(scenario *domain.Scenario) (domain.ProjectionInput, *time.Time, error) {
	in := scenario.Input
	if scenario.BirthDate == "" {
		return in, nil, nil
	}
	age, birth, err := AgeFromBirthDate(scenario.BirthDate, scenario.AsOf)
	if err != nil {
		return in, nil, err
	}
	in.CurrentAge = age
	retirement := dateutil.AddYears(birth, in.RetirementAge)
	return in, &retirement, nil
}

// RunScenario projects a single scenario.
func (pe *ProjectionEngine) RunScenario(ctx context.Context, scenario *domain.Scenario) (*domain.ScenarioResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	in, retirementDate, err := ResolveInput(scenario)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}
	projection, err := Project(in)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}
	pe.Logger.Debugf("scenario %q: %d years, final balance %s", scenario.Name, len(projection.YearlyBreakdown), projection.FinalBalance.StringFixed(2))
	return &domain.ScenarioResult{
		Name:           scenario.Name,
		Input:          in,
		RetirementDate: retirementDate,
		Projection:     projection,
	}, nil
}

// RunScenarios projects every scenario of a configuration in file order.
func (pe *ProjectionEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ProjectionReport, error) {
	if len(config.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios provided")
	}
	report := &domain.ProjectionReport{
		GeneratedAt: nowFunc().UTC(),
		Scenarios:   make([]domain.ScenarioResult, 0, len(config.Scenarios)),
	}
	for i := range config.Scenarios {
		res, err := pe.RunScenario(ctx, &config.Scenarios[i])
		if err != nil {
			pe.Logger.Errorf("projection failed: %v", err)
			return nil, err
		}
		report.Scenarios = append(report.Scenarios, *res)
	}
	pe.Logger.Infof("projected %d scenarios", len(report.Scenarios))
	return report, nil
}
