// Package export renders task lists for use outside the application.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// Supported export formats
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// Formats lists the supported export formats
var Formats = []string{FormatCSV, FormatPDF}

// Exporter writes task lists in a chosen format
type Exporter struct {
	title string
}

// NewExporter creates an exporter; title heads PDF documents
func NewExporter(title string) *Exporter {
	return &Exporter{title: title}
}

// Export writes records to w in format
func (e *Exporter) Export(w io.Writer, records []domain.TaskRecord, format string) error {
	switch strings.ToLower(format) {
	case FormatCSV:
		return e.writeCSV(w, records)
	case FormatPDF:
		return e.writePDF(w, records)
	default:
		return errors.NewInvalidInputError("format", format, "unsupported format, use one of: "+strings.Join(Formats, ", "))
	}
}

// writeCSV writes one row per task with a header row
func (e *Exporter) writeCSV(w io.Writer, records []domain.TaskRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Position", "Title", "Description"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, record := range records {
		row := []string{strconv.Itoa(i + 1), record.Title, record.Description}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// writePDF writes a single document listing every task
func (e *Exporter) writePDF(w io.Writer, records []domain.TaskRecord) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, tr(e.title))
	pdf.Ln(12)

	if len(records) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(40, 6, "No tasks")
	}
	for i, record := range records {
		pdf.SetFont("Arial", "B", 11)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, record.Title)), "0", "L", false)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, tr(record.Description), "0", "L", false)
		pdf.Ln(3)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
