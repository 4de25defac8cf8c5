package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/savings-projector/internal/domain"
)

// CSVDetailedExporter provides the raw yearly breakdown per scenario/year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "StartingBalance", "Contributions", "Earnings", "Taxes", "NetEarnings", "EndingBalance"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range report.Scenarios {
		if sc.Projection == nil {
			continue
		}
		for _, yr := range sc.Projection.YearlyBreakdown {
			row := []string{
				sc.Name,
				intToString(yr.Year),
				yr.StartingBalance.StringFixed(2),
				yr.Contributions.StringFixed(2),
				yr.Earnings.StringFixed(2),
				yr.Taxes.StringFixed(2),
				yr.NetEarnings().StringFixed(2),
				yr.EndingBalance.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
