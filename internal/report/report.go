// Package report shapes a projection into the series, table rows and metric
// cards consumed by the CLI renderers and the HTTP API.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/roi-forecast/internal/roi"
	"github.com/iwvelando/roi-forecast/pkg/constants"
	"github.com/iwvelando/roi-forecast/pkg/format"
)

// ErrCategoryCount is returned when a profile does not carry exactly one
// impact category per display weight.
var ErrCategoryCount = errors.New("impact categories must match the number of display weights")

// CashFlowPoint is one year of the cash-flow chart: net cash flow drawn as a
// bar and cumulative cash flow drawn as a line.
type CashFlowPoint struct {
	Year       int     `json:"year"`
	Net        float64 `json:"net"`
	Cumulative float64 `json:"cumulative"`
}

// CategorySeries is one stacked series of the impact-by-category chart.
type CategorySeries struct {
	Category string    `json:"category"`
	Color    string    `json:"color,omitempty"`
	Weight   float64   `json:"weight"`
	Years    []int     `json:"years"`
	Values   []float64 `json:"values"`
}

// TableRow is a display-formatted ledger row.
type TableRow struct {
	Year               int    `json:"year"`
	InvestmentCost     string `json:"investmentCost"`
	Maintenance        string `json:"maintenance"`
	OperationalBenefit string `json:"operationalBenefit"`
	NetCashFlow        string `json:"netCashFlow"`
	CumulativeCashFlow string `json:"cumulativeCashFlow"`
	// Highlight marks rows whose cumulative cash flow is positive.
	Highlight bool `json:"highlight"`
}

// MetricCard is a headline metric with a short qualifier.
type MetricCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta"`
	// Positive is false when the delta should be rendered as a warning.
	Positive bool `json:"positive"`
}

// CashFlowSeries returns the cash-flow chart data for every ledger year.
func CashFlowSeries(ledger []roi.YearRecord) []CashFlowPoint {
	points := make([]CashFlowPoint, len(ledger))
	for i, rec := range ledger {
		points[i] = CashFlowPoint{Year: rec.Year, Net: rec.NetCashFlow, Cumulative: rec.CumulativeCashFlow}
	}
	return points
}

// ImpactSeries apportions each post-implementation year's operational
// benefit across the profile's impact categories.
func ImpactSeries(profile roi.UseCaseProfile, ledger []roi.YearRecord) ([]CategorySeries, error) {
	weights := constants.ImpactCategoryWeights
	if len(profile.ImpactCategories) != len(weights) {
		return nil, fmt.Errorf("%w: got %d categories, expected %d",
			ErrCategoryCount, len(profile.ImpactCategories), len(weights))
	}

	series := make([]CategorySeries, len(weights))
	for i, category := range profile.ImpactCategories {
		series[i] = CategorySeries{
			Category: category.Label,
			Color:    category.Color,
			Weight:   weights[i] / constants.ImpactWeightDivisor,
		}
	}
	for _, rec := range ledger {
		if rec.Year == 0 {
			continue
		}
		for i := range series {
			series[i].Years = append(series[i].Years, rec.Year)
			series[i].Values = append(series[i].Values, rec.OperationalBenefit*series[i].Weight)
		}
	}
	return series, nil
}

// Table formats the ledger for display.
func Table(ledger []roi.YearRecord) []TableRow {
	rows := make([]TableRow, len(ledger))
	for i, rec := range ledger {
		rows[i] = TableRow{
			Year:               rec.Year,
			InvestmentCost:     format.CurrencyOrDash(rec.InvestmentCost),
			Maintenance:        format.CurrencyOrDash(rec.MaintenanceCost),
			OperationalBenefit: format.WholeCurrency(rec.OperationalBenefit),
			NetCashFlow:        format.WholeCurrency(rec.NetCashFlow),
			CumulativeCashFlow: format.WholeCurrency(rec.CumulativeCashFlow),
			Highlight:          rec.CumulativeCashFlow > 0,
		}
	}
	return rows
}

// Cards builds the four headline metric cards: NPV, ROI, payback and total
// benefits. Negative NPV, undefined ROI and unreached payback each have their
// own wording.
func Cards(metrics roi.Metrics, timeHorizon int) []MetricCard {
	npv := MetricCard{Label: "Net Present Value", Value: format.WholeCurrency(metrics.NPV)}
	if metrics.NPV > 0 {
		npv.Delta, npv.Positive = "Positive Return", true
	} else {
		npv.Delta = "Negative Return"
	}

	roiCard := MetricCard{Label: "Return on Investment"}
	if metrics.ROIDefined {
		roiCard.Value = format.Percent(metrics.ROI)
		roiCard.Delta = format.Percent(metrics.ROI/float64(timeHorizon)) + " Annual"
		roiCard.Positive = metrics.ROI > 0
	} else {
		roiCard.Value = "Undefined"
		roiCard.Delta = "No Costs"
	}

	payback := MetricCard{Label: "Payback Period"}
	if metrics.Payback.Achieved {
		payback.Value = format.Number(metrics.Payback.Years, 1) + " Years"
		payback.Delta = format.Number(metrics.Payback.Months(), 0) + " Months"
		payback.Positive = true
	} else {
		payback.Value = "N/A"
		payback.Delta = "Not Achieved"
	}

	benefits := MetricCard{
		Label:    "Total Benefits",
		Value:    format.WholeCurrency(metrics.TotalBenefits),
		Delta:    fmt.Sprintf("Over %d Years", timeHorizon),
		Positive: true,
	}

	return []MetricCard{npv, roiCard, payback, benefits}
}

// FileName returns the export file name for a profile, e.g.
// "Order_Management_&_Validation_analysis.csv".
func FileName(profile roi.UseCaseProfile, ext string) string {
	name := strings.ReplaceAll(strings.TrimSpace(profile.Name), " ", "_")
	if name == "" {
		name = "projection"
	}
	return fmt.Sprintf("%s_analysis.%s", name, strings.TrimPrefix(ext, "."))
}

// Report bundles everything a renderer needs for one projection.
type Report struct {
	ProfileName string               `json:"profileName"`
	Description string               `json:"description,omitempty"`
	TimeHorizon int                  `json:"timeHorizon"`
	Ledger      []roi.YearRecord     `json:"ledger"`
	Metrics     roi.Metrics          `json:"metrics"`
	Cards       []MetricCard         `json:"cards"`
	CashFlow    []CashFlowPoint      `json:"cashFlow"`
	Impact      []CategorySeries     `json:"impact"`
	Table       []TableRow           `json:"table"`
	Categories  []roi.ImpactCategory `json:"categories"`
}

// Build assembles the report for a projection of profile.
func Build(profile roi.UseCaseProfile, projection *roi.Projection) (*Report, error) {
	if projection == nil {
		return nil, fmt.Errorf("projection cannot be nil")
	}

	impact, err := ImpactSeries(profile, projection.Ledger)
	if err != nil {
		return nil, err
	}

	horizon := len(projection.Ledger) - 1
	return &Report{
		ProfileName: profile.Name,
		Description: profile.Description,
		TimeHorizon: horizon,
		Ledger:      projection.Ledger,
		Metrics:     projection.Metrics,
		Cards:       Cards(projection.Metrics, horizon),
		CashFlow:    CashFlowSeries(projection.Ledger),
		Impact:      impact,
		Table:       Table(projection.Ledger),
		Categories:  profile.ImpactCategories,
	}, nil
}
