package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rpgo/savings-projector/internal/domain"
)

// HTMLFormatter produces a standalone HTML page with a balance chart and the
// yearly breakdown table for each scenario.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"pct":   FormatPercentage,
	"chart": BuildChart,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ProjectionReport
		Recommendation Recommendation
		Compare        bool
	}{report, AnalyzeScenarios(report), len(report.Scenarios) > 1}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
