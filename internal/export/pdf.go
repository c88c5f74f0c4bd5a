package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// DefaultTitle is the heading printed on the unpaid entries report.
const DefaultTitle = "Unpaid Time Entries Report"

const (
	pageMargin   = 10.0
	footerHeight = 15.0
	rowHeight    = 8.0
	headerHeight = 10.0
)

// columnWidths spans the 190mm printable width of an A4 page.
var columnWidths = []float64{14, 28, 22, 24, 22, 36, 44}

// PDFOptions controls the report document.
type PDFOptions struct {
	Title       string
	GeneratedAt time.Time
}

// Filename returns the download name of a report generated at t.
func Filename(prefix string, t time.Time) string {
	if prefix == "" {
		prefix = "unpaid_entries_"
	}
	return prefix + t.Format("20060102") + ".pdf"
}

// WritePDF renders table as an A4 document. The header row is repeated at the
// top of every page and each page is numbered.
func WritePDF(w io.Writer, table *Table, opts PDFOptions) error {
	if table == nil || len(table.Rows) == 0 {
		return ErrEmptyExport
	}
	if len(table.Header) != len(columnWidths) {
		return fmt.Errorf("report has %d columns, layout expects %d", len(table.Header), len(columnWidths))
	}

	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, footerHeight)
	pdf.SetTitle(title, true)
	pdf.SetCreator("shiftpay", true)
	if !opts.GeneratedAt.IsZero() {
		pdf.SetCreationDate(opts.GeneratedAt)
	}
	pdf.AliasNbPages("")

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-footerHeight)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(96, 96, 96)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetFillColor(128, 128, 128)
		pdf.SetTextColor(245, 245, 245)
		pdf.SetDrawColor(0, 0, 0)
		for i, h := range table.Header {
			pdf.CellFormat(columnWidths[i], headerHeight, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
	}

	_, pageHeight := pdf.GetPageSize()
	ensureRoom := func() {
		if pdf.GetY()+rowHeight > pageHeight-footerHeight-pageMargin {
			pdf.AddPage()
			drawHeader()
		}
	}

	drawRow := func(cells []string, totals bool) {
		ensureRoom()
		if totals {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetFillColor(245, 245, 220)
		} else {
			pdf.SetFont("Helvetica", "", 10)
		}
		for i, c := range cells {
			pdf.CellFormat(columnWidths[i], rowHeight, tr(c), "1", 0, "C", totals, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr(title), "", 1, "C", false, 0, "")
	if !opts.GeneratedAt.IsZero() {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 6, "Generated "+opts.GeneratedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	}
	pdf.Ln(8)
	drawHeader()

	for _, row := range table.Rows {
		drawRow(row, false)
	}
	drawRow(table.Totals, true)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return pdf.Output(w)
}
