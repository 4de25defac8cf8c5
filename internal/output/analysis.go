package output

import (
	"sort"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName     string
	FinalBalance     decimal.Decimal
	LeadOverNext     decimal.Decimal
	GrowthMultiple   decimal.Decimal
	ContributionsPct decimal.Decimal
}

// AnalyzeScenarios picks the scenario with the highest final balance. Ties keep
// file order. GrowthMultiple is final balance over money put in, and
// ContributionsPct is the share of the final balance that came from contributions.
func AnalyzeScenarios(report *domain.ProjectionReport) Recommendation {
	ranks := make([]domain.ScenarioResult, 0, len(report.Scenarios))
	for _, sc := range report.Scenarios {
		if sc.Projection != nil {
			ranks = append(ranks, sc)
		}
	}
	if len(ranks) == 0 {
		return Recommendation{}
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Projection.FinalBalance.GreaterThan(ranks[j].Projection.FinalBalance)
	})
	best := ranks[0]
	rec := Recommendation{ScenarioName: best.Name, FinalBalance: best.Projection.FinalBalance}
	if len(ranks) > 1 {
		rec.LeadOverNext = best.Projection.FinalBalance.Sub(ranks[1].Projection.FinalBalance)
	}
	paidIn := best.Projection.TotalContributions.Add(best.Input.CurrentSavings.Round(2))
	if !paidIn.IsZero() {
		rec.GrowthMultiple = best.Projection.FinalBalance.Div(paidIn).Round(2)
	}
	if !best.Projection.FinalBalance.IsZero() {
		rec.ContributionsPct = best.Projection.TotalContributions.Div(best.Projection.FinalBalance).Mul(decimalHundred)
	}
	return rec
}

var decimalHundred = decimal.NewFromInt(100)
