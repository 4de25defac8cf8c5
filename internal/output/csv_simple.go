package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/savings-projector/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "CurrentAge", "RetirementAge", "Years", "CurrentSavings", "AnnualContribution", "ExpectedReturn", "TaxRate", "FinalBalance", "TotalContributions", "TotalEarnings", "TotalTaxes"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range report.Scenarios {
		if sc.Projection == nil {
			continue
		}
		row := []string{
			sc.Name,
			intToString(sc.Input.CurrentAge),
			intToString(sc.Input.RetirementAge),
			intToString(len(sc.Projection.YearlyBreakdown)),
			sc.Input.CurrentSavings.StringFixed(2),
			sc.Input.AnnualContribution.StringFixed(2),
			sc.Input.ExpectedReturn.String(),
			sc.Input.TaxRate.String(),
			sc.Projection.FinalBalance.StringFixed(2),
			sc.Projection.TotalContributions.StringFixed(2),
			sc.Projection.TotalEarnings.StringFixed(2),
			sc.Projection.TotalTaxes.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
