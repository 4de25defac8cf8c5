package output

import (
	"fmt"
	"strings"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// Chart geometry shared by the HTML template.
const (
	chartWidth   = 720.0
	chartHeight  = 320.0
	chartPadding = 48.0
	chartTicks   = 4
)

// ChartPoint is one plotted year in SVG user space.
type ChartPoint struct {
	Year    int
	Balance decimal.Decimal
	X, Y    float64
}

// ChartTick labels a horizontal grid line.
type ChartTick struct {
	Label string
	Y     float64
}

// Chart is a line chart of ending balance by year.
type Chart struct {
	Width, Height float64
	Left, Bottom  float64
	Points        []ChartPoint
	Ticks         []ChartTick
}

// Polyline returns the points attribute of an SVG polyline.
func (c Chart) Polyline() string {
	parts := make([]string, len(c.Points))
	for i, p := range c.Points {
		parts[i] = fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

// BuildChart lays out a projection's ending balances with x = year and y = balance.
// The y axis starts at zero so growth reads proportionally.
func BuildChart(result *domain.ProjectionResult) Chart {
	c := Chart{Width: chartWidth, Height: chartHeight, Left: chartPadding, Bottom: chartHeight - chartPadding}
	rows := result.YearlyBreakdown
	if len(rows) == 0 {
		return c
	}

	maxBalance := decimal.Zero
	for _, yr := range rows {
		if yr.EndingBalance.GreaterThan(maxBalance) {
			maxBalance = yr.EndingBalance
		}
	}
	top := maxBalance.InexactFloat64()
	if top <= 0 {
		top = 1
	}

	plotW := chartWidth - 2*chartPadding
	plotH := chartHeight - 2*chartPadding
	span := float64(len(rows) - 1)
	for i, yr := range rows {
		x := chartPadding + plotW/2
		if span > 0 {
			x = chartPadding + plotW*float64(i)/span
		}
		y := c.Bottom - plotH*yr.EndingBalance.InexactFloat64()/top
		c.Points = append(c.Points, ChartPoint{Year: yr.Year, Balance: yr.EndingBalance, X: x, Y: y})
	}
	for i := 0; i <= chartTicks; i++ {
		frac := float64(i) / chartTicks
		value := decimal.NewFromFloat(top * frac)
		c.Ticks = append(c.Ticks, ChartTick{Label: FormatCurrency(value.Round(0)), Y: c.Bottom - plotH*frac})
	}
	return c
}
