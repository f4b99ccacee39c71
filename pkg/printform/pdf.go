package printform

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

const (
	barUnit   = 0.35 // mm per width unit
	barGap    = 0.3
	barHeight = 12.0
)

// RenderPDF draws the form on a single A4 page.
func RenderPDF(form Form) ([]byte, error) {
	form = withDefaults(form)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	left, top := 15.0, 15.0
	pdf.SetFont("Arial", "B", 16)
	pdf.SetXY(left, top)
	pdf.CellFormat(110, 8, tr(form.SchoolName), "", 2, "L", false, 0, "")
	pdf.SetFont("Arial", "", 13)
	pdf.CellFormat(110, 7, tr(form.Department), "", 0, "L", false, 0, "")

	pdf.SetFont("Courier", "", 9)
	pdf.SetXY(130, top)
	pdf.CellFormat(65, 5, tr(form.FormCode), "", 0, "R", false, 0, "")
	drawBars(pdf, form.Bars, 195, top+6)
	pdf.SetXY(130, top+6+barHeight+1)
	pdf.CellFormat(65, 4, tr(form.RequestID), "", 0, "R", false, 0, "")

	y := top + 30
	pdf.Line(left, y, 195, y)
	y += 4

	pdf.SetFont("Arial", "", 10)
	pairs := [][2]string{
		{"Class:", form.Class}, {"Subject:", form.Subject},
		{"Teacher-in-charge:", form.TeacherInCharge}, {"", ""},
		{"Date of submission:", form.DateOfSubmission}, {"Date of collection:", form.DateOfCollection},
	}
	y = drawPairs(pdf, tr, pairs, left, y)

	y = section(pdf, tr, "Details", left, y)
	y = drawPairs(pdf, tr, [][2]string{
		{"No. of pages of original copy:", strconv.Itoa(form.NoOfPagesOriginal)},
		{"No. of copies:", strconv.Itoa(form.TotalCopies)},
		{"Total No. of printed pages:", strconv.Itoa(form.TotalPrintedPages)},
	}, left, y)

	y = section(pdf, tr, "Other request", left, y)
	for i, line := range form.Options {
		x := left + float64(i%2)*90
		drawCheckBox(pdf, x, y+1.2, line.Checked)
		pdf.SetXY(x+5, y)
		pdf.CellFormat(80, 6, tr(line.Label), "", 0, "L", false, 0, "")
		if i%2 == 1 {
			y += 6
		}
	}
	if len(form.Options)%2 == 1 {
		y += 6
	}

	y += 4
	pdf.Line(left, y, 195, y)
	y += 3
	bottom := drawRemarks(pdf, tr, form, left, y)
	tableBottom := drawRows(pdf, tr, form.Rows, 108, y)
	if tableBottom > bottom {
		bottom = tableBottom
	}

	pdf.SetFont("Arial", "", 7)
	pdf.SetTextColor(140, 140, 140)
	pdf.SetXY(left, bottom+8)
	pdf.CellFormat(0, 4, tr(form.Revision), "", 0, "L", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render print form: %w", err)
	}
	return buf.Bytes(), nil
}

// drawBars right-aligns the bars so they end at right.
func drawBars(pdf *gofpdf.Fpdf, bars []int, right, top float64) {
	total := 0.0
	for _, w := range bars {
		total += float64(w)*barUnit + barGap
	}
	x := right - total
	pdf.SetFillColor(0, 0, 0)
	for _, w := range bars {
		width := float64(w) * barUnit
		pdf.Rect(x, top, width, barHeight, "F")
		x += width + barGap
	}
}

func drawCheckBox(pdf *gofpdf.Fpdf, x, y float64, checked bool) {
	pdf.Rect(x, y, 3.5, 3.5, "D")
	if checked {
		pdf.Line(x+0.6, y+1.9, x+1.5, y+2.9)
		pdf.Line(x+1.5, y+2.9, x+3.0, y+0.6)
	}
}

func section(pdf *gofpdf.Fpdf, tr func(string) string, title string, left, y float64) float64 {
	y += 3
	pdf.Line(left, y, 195, y)
	y += 3
	pdf.SetFont("Arial", "BU", 12)
	pdf.SetXY(left, y)
	pdf.CellFormat(0, 7, tr(title), "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	return y + 8
}

func drawPairs(pdf *gofpdf.Fpdf, tr func(string) string, pairs [][2]string, left, y float64) float64 {
	for i, pair := range pairs {
		x := left + float64(i%2)*90
		pdf.SetXY(x, y)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(50, 6, tr(pair[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(38, 6, tr(pair[1]), "", 0, "L", false, 0, "")
		if i%2 == 1 {
			y += 7
		}
	}
	if len(pairs)%2 == 1 {
		y += 7
	}
	return y
}

func drawRemarks(pdf *gofpdf.Fpdf, tr func(string) string, form Form, left, y float64) float64 {
	pdf.SetXY(left, y)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(85, 6, "Remarks:", "", 2, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(85, 5, tr(form.Remarks), "", "L", false)
	y = pdf.GetY() + 8
	pdf.SetXY(left, y)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(85, 6, "Signed by:", "", 2, "L", false, 0, "")
	pdf.SetFont("Times", "I", 14)
	pdf.CellFormat(85, 10, tr(form.Signature), "", 2, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(85, 5, "Signature of Teacher", "T", 2, "L", false, 0, "")
	return pdf.GetY()
}

func drawRows(pdf *gofpdf.Fpdf, tr func(string) string, rows []Row, x, y float64) float64 {
	widths := []float64{14, 16, 24, 33}
	headers := []string{"Form", "Class", "No of copies", "Teacher in Charge"}
	pdf.SetXY(x, y)
	pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		y += 7
		pdf.SetXY(x, y)
		cells := []string{row.Form, row.ClassName, strconv.Itoa(row.NoOfCopies), row.TeacherInCharge}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, tr(cell), "1", 0, "L", false, 0, "")
		}
	}
	return y + 7
}
