package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/phpdave11/gofpdf"

	"github.com/pkordes/smarttrav/internal/domain"
)

// csvHeaders defines the column names written as the first row of a CSV export.
var csvHeaders = []string{"kind", "name", "category", "date", "visit_time", "notes", "amount"}

const dateLayout = "2006-01-02"

// ExportItinerary handles GET /itineraries/{id}/export?format=csv|pdf.
// CSV is the default.
func (s *Server) ExportItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	format := "csv"
	var requested *string
	if err := queryParam(r, "format", &requested); err != nil {
		requestError(w, err.Error())
		return
	}
	if requested != nil {
		format = *requested
	}
	if format != "csv" && format != "pdf" {
		requestError(w, `format must be "csv" or "pdf"`)
		return
	}

	exp, err := s.export.Export(r.Context(), caller(r).UserID, id)
	if err != nil {
		s.fail(w, r, err, "itinerary")
		return
	}

	var (
		buf         bytes.Buffer
		contentType string
	)
	switch format {
	case "pdf":
		contentType = "application/pdf"
		err = writePDF(&buf, exp)
	default:
		contentType = "text/csv; charset=utf-8"
		err = writeCSV(&buf, exp)
	}
	if err != nil {
		s.fail(w, r, fmt.Errorf("handler.ExportItinerary: %w", err), "itinerary")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="itinerary-%s.%s"`, id, format))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// writeCSV emits one row per linked destination and per expense, followed by
// the summary figures as "summary" rows. Unpriced destinations get an empty amount.
func writeCSV(buf *bytes.Buffer, exp domain.ItineraryExport) error {
	w := csv.NewWriter(buf)
	records := [][]string{csvHeaders}
	for _, row := range exp.Rows {
		records = append(records, []string{
			string(row.Kind),
			row.Name,
			row.Category,
			formatDate(row),
			row.VisitTime,
			row.Notes,
			rowAmount(row),
		})
	}
	for _, line := range summaryLines(exp) {
		records = append(records, []string{"summary", line[0], "", "", "", "", line[1]})
	}
	return w.WriteAll(records)
}

// writePDF renders a one-table A4 report of the itinerary.
func writePDF(buf *bytes.Buffer, exp domain.ItineraryExport) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(exp.Itinerary.Title), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(exp.Itinerary.Title))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("%s to %s (%d days)",
		exp.Itinerary.StartDate.Format(dateLayout), exp.Itinerary.EndDate.Format(dateLayout), exp.DurationDays))
	pdf.Ln(12)

	widths := []float64{50, 32, 24, 16, 38, 30}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range []string{"Name", "Category", "Date", "Time", "Notes", "Amount"} {
		align := "L"
		if i == len(widths)-1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range exp.Rows {
		cells := []string{row.Name, row.Category, formatDate(row), row.VisitTime, row.Notes, rowAmount(row)}
		if row.Unpriced {
			cells[5] = "n/a"
		}
		for i, c := range cells {
			align := "L"
			if i == len(widths)-1 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, truncate(pdf, tr(c), widths[i]-2), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 10)
	for _, line := range summaryLines(exp) {
		pdf.CellFormat(60, 7, line[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, line[1], "", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	if exp.Summary.OverBudget() {
		pdf.SetTextColor(200, 0, 0)
		pdf.Cell(0, 8, "Over budget")
		pdf.SetTextColor(0, 0, 0)
	}

	return pdf.Output(buf)
}

func summaryLines(exp domain.ItineraryExport) [][2]string {
	s := exp.Summary
	return [][2]string{
		{"Budget", money(s.Budget)},
		{"Destination cost", money(s.DestinationCost)},
		{"Total expenses", money(s.TotalExpenses)},
		{"Total cost", money(s.TotalCost)},
		{"Budget remaining", money(s.BudgetRemaining)},
	}
}

func formatDate(row domain.ExportRow) string {
	if row.Date == nil {
		return ""
	}
	return row.Date.Format(dateLayout)
}

func rowAmount(row domain.ExportRow) string {
	if row.Unpriced {
		return ""
	}
	return money(row.Amount)
}

// truncate shortens s until it fits in width millimetres at the current font.
func truncate(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	// s is already translated to a single-byte code page.
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
