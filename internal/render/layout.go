package render

import (
	"fmt"
	"iter"
	"sort"

	"github.com/go-pdf/fpdf"
)

const (
	pageWidth   = 190.0
	labelWidth  = 60.0
	rowHeight   = 8.0
	lineHeight  = 6.0
	blankHeight = 10.0
)

// document wraps an fpdf page with the fixed layout primitives the
// renderer composes documents from.
type document struct {
	pdf *fpdf.Fpdf
}

func newDocument(title string) *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(pageWidth, 10, title, "", 1, "C", false, 0, "")
	pdf.SetDrawColor(60, 60, 60)
	pdf.Line(10, pdf.GetY()+1, 200, pdf.GetY()+1)
	pdf.Ln(4)

	return &document{pdf: pdf}
}

func (d *document) sectionTitle(title string) {
	d.pdf.Ln(2)
	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.CellFormat(pageWidth, rowHeight, title, "", 1, "L", false, 0, "")
}

func (d *document) metaLine(label, value string) {
	d.pdf.SetFont("Helvetica", "I", 9)
	d.pdf.CellFormat(pageWidth, lineHeight, label+": "+value, "", 1, "L", false, 0, "")
}

// blankField draws a labelled empty box for a template form.
func (d *document) blankField(label string) {
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.CellFormat(labelWidth, blankHeight, label, "", 0, "L", false, 0, "")
	d.pdf.CellFormat(pageWidth-labelWidth, blankHeight, "", "1", 1, "L", false, 0, "")
	d.pdf.Ln(1)
}

func (d *document) filledField(label, value string) {
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.CellFormat(labelWidth, rowHeight, label, "", 0, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.MultiCell(pageWidth-labelWidth, rowHeight, value, "", "L", false)
}

func (d *document) scoreSummary(overall float64, status string) {
	d.pdf.Ln(2)
	d.pdf.SetFont("Helvetica", "B", 14)
	d.pdf.CellFormat(
		pageWidth, 10,
		fmt.Sprintf("Overall Score: %.1f%%  -  %s", overall*100, status),
		"1", 1, "C", false, 0, "",
	)
}

func (d *document) scoreRow(name string, score float64) {
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.CellFormat(labelWidth, lineHeight, name, "", 0, "L", false, 0, "")
	d.pdf.CellFormat(30, lineHeight, fmt.Sprintf("%.1f%%", score*100), "", 1, "R", false, 0, "")
}

func (d *document) standardsHeader() {
	d.pdf.SetFont("Helvetica", "B", 9)
	d.pdf.SetFillColor(230, 230, 230)
	d.pdf.CellFormat(80, lineHeight, "Standard", "1", 0, "L", true, 0, "")
	d.pdf.CellFormat(25, lineHeight, "Score", "1", 0, "R", true, 0, "")
	d.pdf.CellFormat(25, lineHeight, "Weight", "1", 0, "R", true, 0, "")
	d.pdf.CellFormat(30, lineHeight, "Critical", "1", 0, "C", true, 0, "")
	d.pdf.CellFormat(30, lineHeight, "Assessed", "1", 1, "C", true, 0, "")
}

func (d *document) standardRow(name string, score, weight float64, critical, assessed bool) {
	d.pdf.SetFont("Helvetica", "", 9)
	d.pdf.CellFormat(80, lineHeight, name, "1", 0, "L", false, 0, "")
	d.pdf.CellFormat(25, lineHeight, fmt.Sprintf("%.0f%%", score*100), "1", 0, "R", false, 0, "")
	d.pdf.CellFormat(25, lineHeight, fmt.Sprintf("%.0f%%", weight*100), "1", 0, "R", false, 0, "")
	d.pdf.CellFormat(30, lineHeight, yesNo(critical), "1", 0, "C", false, 0, "")
	d.pdf.CellFormat(30, lineHeight, yesNo(assessed), "1", 1, "C", false, 0, "")
}

func (d *document) recommendation(priority, standard, action string) {
	d.pdf.SetFont("Helvetica", "B", 9)
	d.pdf.CellFormat(35, lineHeight, "["+priority+"] "+standard, "", 0, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 9)
	d.pdf.MultiCell(pageWidth-35, lineHeight, action, "", "L", false)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// sortedFields yields a record's field mapping in stable name order, with
// values rendered to display strings.
func sortedFields(data map[string]any) iter.Seq2[string, string] {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(yield func(string, string) bool) {
		for _, name := range names {
			if !yield(name, fmt.Sprintf("%v", data[name])) {
				return
			}
		}
	}
}

// sortedScores yields a score mapping in stable name order.
func sortedScores(scores map[string]float64) iter.Seq2[string, float64] {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(yield func(string, float64) bool) {
		for _, name := range names {
			if !yield(name, scores[name]) {
				return
			}
		}
	}
}
