package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/roi-forecast/internal/report"
	"github.com/jung-kurt/gofpdf"
)

// PDFFormat writes a single-page report with the metric cards and the
// financial summary table.
func PDFFormat(w io.Writer, r *report.Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	highlightColor := [3]int{212, 237, 218}
	lineColor := [3]int{200, 200, 200}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s", r.ProfileName)), "", 1, "L", true, 0, "")

	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	if r.Description != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(190, 5, tr(r.Description), "", "L", false)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Key Financial Metrics")
	pdf.Ln(7)
	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
	pdf.Ln(3)

	cardWidth := 190.0 / float64(len(r.Cards))
	pdf.SetFont("Arial", "", 9)
	for i, card := range r.Cards {
		ln := 0
		if i == len(r.Cards)-1 {
			ln = 1
		}
		pdf.CellFormat(cardWidth, 6, tr(card.Label), "", ln, "L", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 13)
	for i, card := range r.Cards {
		ln := 0
		if i == len(r.Cards)-1 {
			ln = 1
		}
		pdf.CellFormat(cardWidth, 9, tr(card.Value), "", ln, "L", false, 0, "")
	}
	pdf.SetFont("Arial", "", 9)
	for i, card := range r.Cards {
		ln := 0
		if i == len(r.Cards)-1 {
			ln = 1
		}
		if card.Positive {
			pdf.SetTextColor(0, 128, 0)
		} else {
			pdf.SetTextColor(192, 0, 0)
		}
		pdf.CellFormat(cardWidth, 6, tr(card.Delta), "", ln, "L", false, 0, "")
	}
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Financial Summary Table")
	pdf.Ln(9)

	headers := []string{"Year", "Investment Cost", "Maintenance", "Operational Benefits", "Net Cash Flow", "Cumulative CF"}
	widths := []float64{15, 33, 30, 40, 36, 36}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "B", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	pdf.SetFillColor(highlightColor[0], highlightColor[1], highlightColor[2])
	for _, row := range r.Table {
		cells := []string{
			strconv.Itoa(row.Year),
			row.InvestmentCost,
			row.Maintenance,
			row.OperationalBenefit,
			row.NetCashFlow,
			row.CumulativeCashFlow,
		}
		for i, cell := range cells {
			align := "R"
			if i == 0 {
				align = "C"
			}
			pdf.CellFormat(widths[i], 6, tr(cell), "", 0, align, row.Highlight, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("error writing PDF: %w", err)
	}
	return nil
}
