package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a landscape tabular PDF. Multi-line cell
// values (separated by \n) are wrapped inside their cell, which keeps a
// weekly timetable grid readable.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body. The
// first column is treated as a narrow label column.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	translate := pdf.UnicodeTranslatorFromDescriptor("")

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, translate(title), "", 1, "C", false, 0, "")
		pdf.Ln(4)
	}

	labelWidth := 28.0
	colWidth := (277.0 - labelWidth) / float64(len(data.Headers)-1)
	if len(data.Headers) == 1 {
		labelWidth = 277.0
		colWidth = 0
	}

	widthFor := func(i int) float64 {
		if i == 0 {
			return labelWidth
		}
		return colWidth
	}

	pdf.SetFont("Arial", "B", 9)
	for i, header := range data.Headers {
		pdf.CellFormat(widthFor(i), 8, translate(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 7)
	lineHeight := 3.5
	for _, row := range data.Rows {
		rowHeight := lineHeight
		for _, header := range data.Headers {
			lines := pdf.SplitLines([]byte(translate(row[header])), colWidth-2)
			if h := float64(len(lines)) * lineHeight; h > rowHeight {
				rowHeight = h
			}
		}

		x, y := pdf.GetXY()
		for i, header := range data.Headers {
			w := widthFor(i)
			pdf.Rect(x, y, w, rowHeight+2, "D")
			pdf.SetXY(x+1, y+1)
			pdf.MultiCell(w-2, lineHeight, translate(row[header]), "", "L", false)
			x += w
			pdf.SetXY(x, y)
		}
		pdf.SetXY(10, y+rowHeight+2)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
