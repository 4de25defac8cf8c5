package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/rpgo/savings-projector/internal/domain"
)

// ConsoleFormatter renders each scenario's yearly breakdown as an aligned table
// followed by its totals.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "RETIREMENT SAVINGS PROJECTION")
	fmt.Fprintln(&buf, "=============================")
	for _, sc := range report.Scenarios {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "%s (age %d to %d, %s%% return, %s%% tax on earnings)\n",
			sc.Name, sc.Input.CurrentAge, sc.Input.RetirementAge,
			sc.Input.ExpectedReturn.String(), sc.Input.TaxRate.String())
		if sc.RetirementDate != nil {
			fmt.Fprintf(&buf, "Retirement date: %s\n", sc.RetirementDate.Format("2006-01-02"))
		}
		if sc.Projection == nil {
			continue
		}
		tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Age\tStarting\tContributions\tEarnings\tTaxes\tEnding\t")
		for _, yr := range sc.Projection.YearlyBreakdown {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
				yr.Year,
				FormatCurrency(yr.StartingBalance),
				FormatCurrency(yr.Contributions),
				FormatCurrency(yr.Earnings),
				FormatCurrency(yr.Taxes),
				FormatCurrency(yr.EndingBalance),
			)
		}
		if err := tw.Flush(); err != nil {
			return nil, err
		}
		p := sc.Projection
		fmt.Fprintf(&buf, "Final Balance:        %s\n", FormatCurrency(p.FinalBalance))
		fmt.Fprintf(&buf, "Total Contributions:  %s\n", FormatCurrency(p.TotalContributions))
		fmt.Fprintf(&buf, "Total Earnings:       %s\n", FormatCurrency(p.TotalEarnings))
		fmt.Fprintf(&buf, "Total Taxes:          %s\n", FormatCurrency(p.TotalTaxes))
		fmt.Fprintf(&buf, "Net Earnings:         %s\n", FormatCurrency(p.TotalNetEarnings()))
	}
	if len(report.Scenarios) > 1 {
		rec := AnalyzeScenarios(report)
		if rec.ScenarioName != "" {
			fmt.Fprintln(&buf)
			fmt.Fprintf(&buf, "Highest final balance: %s (%s, +%s over next)\n",
				rec.ScenarioName, FormatCurrency(rec.FinalBalance), FormatCurrency(rec.LeadOverNext))
			fmt.Fprintf(&buf, "  %sx the money paid in, %s of it from contributions\n",
				rec.GrowthMultiple.StringFixed(2), FormatPercentage(rec.ContributionsPct))
		}
	}
	return buf.Bytes(), nil
}
