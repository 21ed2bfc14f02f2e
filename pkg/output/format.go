// Package output provides utilities for rendering and exporting projection results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/fatih/color"
	"github.com/iwvelando/roi-forecast/internal/report"
	"github.com/iwvelando/roi-forecast/internal/roi"
	"github.com/iwvelando/roi-forecast/pkg/constants"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

// CSVHeader lists the export columns, one per YearRecord field.
var CSVHeader = []string{
	"year",
	"investment_cost",
	"maintenance_cost",
	"revenue_lift",
	"cost_savings",
	"operational_benefit",
	"net_cash_flow",
	"cumulative_cf",
	"discounted_cf",
}

var (
	positive  = color.New(color.FgGreen, color.Bold).SprintFunc()
	negative  = color.New(color.FgRed, color.Bold).SprintFunc()
	highlight = color.New(color.FgBlack, color.BgGreen).SprintFunc()
)

// Write renders r in the named format.
func Write(w io.Writer, outputFormat string, r *report.Report) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, r)
	case constants.OutputFormatCSV:
		return CsvFormat(w, r.Ledger)
	case constants.OutputFormatJSON:
		return JSONFormat(w, r)
	case constants.OutputFormatPDF:
		return PDFFormat(w, r)
	default:
		return fmt.Errorf("unsupported output format %s", outputFormat)
	}
}

// PrettyFormat outputs the metric cards followed by the financial summary
// table. Rows with a positive cumulative cash flow are highlighted.
func PrettyFormat(w io.Writer, r *report.Report) error {
	var b bytes.Buffer

	fmt.Fprintf(&b, "--- Results for use case %s ---\n", r.ProfileName)
	if r.Description != "" {
		fmt.Fprintf(&b, "%s\n", r.Description)
	}
	b.WriteString("\n")

	for _, card := range r.Cards {
		delta := negative(card.Delta)
		if card.Positive {
			delta = positive(card.Delta)
		}
		fmt.Fprintf(&b, "%-22s %-18s %s\n", card.Label+":", card.Value, delta)
	}
	b.WriteString("\n")

	data := pterm.TableData{
		{"Year", "Investment Cost", "Maintenance", "Operational Benefits", "Net Cash Flow", "Cumulative CF"},
	}
	for _, row := range r.Table {
		cells := []string{
			strconv.Itoa(row.Year),
			row.InvestmentCost,
			row.Maintenance,
			row.OperationalBenefit,
			row.NetCashFlow,
			row.CumulativeCashFlow,
		}
		if row.Highlight {
			for i := range cells {
				cells[i] = highlight(cells[i])
			}
		}
		data = append(data, cells)
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	b.WriteString(table)
	b.WriteString("\n")

	_, err = w.Write(b.Bytes())
	return err
}

// CsvFormat writes the ledger as comma-separated values with one row per
// year. Numbers are written in their shortest exact decimal form.
func CsvFormat(w io.Writer, ledger []roi.YearRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return err
	}
	for _, rec := range ledger {
		record := []string{
			strconv.Itoa(rec.Year),
			exactNumber(rec.InvestmentCost),
			exactNumber(rec.MaintenanceCost),
			exactNumber(rec.RevenueLift),
			exactNumber(rec.CostSavings),
			exactNumber(rec.OperationalBenefit),
			exactNumber(rec.NetCashFlow),
			exactNumber(rec.CumulativeCashFlow),
			exactNumber(rec.DiscountedCashFlow),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString returns the CSV export as a string.
func CsvString(ledger []roi.YearRecord) string {
	var b bytes.Buffer
	if err := CsvFormat(&b, ledger); err != nil {
		return ""
	}
	return b.String()
}

// JSONFormat writes the report as indented JSON.
func JSONFormat(w io.Writer, r *report.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("error encoding JSON data: %w", err)
	}
	return nil
}

func exactNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return decimal.NewFromFloat(v).String()
}
