// Package export writes a question and its answer to a PDF document.
package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// Document builds the PDF: A4 portrait, Arial 12pt, one left-aligned
// multi-cell holding the question and the answer.
func Document(question, answer string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)
	pdf.SetTextColor(30, 30, 30)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := fmt.Sprintf("Question:\n%s\n\nAnswer:\n%s", question, answer)
	pdf.MultiCell(0, 10, tr(text), "", "L", false)
	return pdf
}

// WritePDF renders the document into w.
func WritePDF(w io.Writer, question, answer string) error {
	if err := Document(question, answer).Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

// SavePDF renders the document into the file at path.
func SavePDF(path, question, answer string) error {
	if err := Document(question, answer).OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to save pdf %s: %w", path, err)
	}
	return nil
}
