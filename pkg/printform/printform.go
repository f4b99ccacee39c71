// Package printform lays out the paper request form that travels with a
// print job, including the pseudo-barcode drawn from the request id.
package printform

const (
	DefaultSchoolName = "St. Paul's Convent School"
	DefaultDepartment = "Stationery & Printing"
	DefaultFormCode   = "Form T1"
	DefaultRevision   = "(Revised in Feb 2021)"
)

const (
	checkedMark   = "☑"
	uncheckedMark = "☐"
)

// CheckLine is one tick-box entry of the "Other request" block.
type CheckLine struct {
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// String renders the line with its tick box, e.g. "☑ Stapling".
func (l CheckLine) String() string {
	if l.Checked {
		return checkedMark + " " + l.Label
	}
	return uncheckedMark + " " + l.Label
}

// Row is one distribution row of the form.
type Row struct {
	Form            string `json:"form"`
	ClassName       string `json:"className"`
	NoOfCopies      int    `json:"noOfCopies"`
	TeacherInCharge string `json:"teacherInCharge"`
}

// Form is everything printed on the sheet. Interactive controls never appear here.
type Form struct {
	SchoolName string `json:"schoolName"`
	Department string `json:"department"`
	FormCode   string `json:"formCode"`
	Revision   string `json:"revision"`

	RequestID string `json:"requestId"`
	Bars      []int  `json:"bars"`

	Class            string `json:"class"`
	Subject          string `json:"subject"`
	TeacherInCharge  string `json:"teacherInCharge"`
	DateOfSubmission string `json:"dateOfSubmission"`
	DateOfCollection string `json:"dateOfCollection"`

	NoOfPagesOriginal int `json:"noOfPagesOriginal"`
	TotalCopies       int `json:"totalCopies"`
	TotalPrintedPages int `json:"totalPrintedPages"`

	Options   []CheckLine `json:"options"`
	Remarks   string      `json:"remarks"`
	Signature string      `json:"signature"`
	Rows      []Row       `json:"rows"`
}

// BarWidths maps each rune of text to a bar width of (code point mod 4) + 1.
func BarWidths(text string) []int {
	widths := make([]int, 0, len(text))
	for _, r := range text {
		widths = append(widths, int(r)%4+1)
	}
	return widths
}

// Options builds the six check lines; each pair has exactly one box ticked.
func Options(singleSided, stapled, whitePaper bool) []CheckLine {
	return []CheckLine{
		{Label: "Single-sided", Checked: singleSided},
		{Label: "Double-sided", Checked: !singleSided},
		{Label: "Stapling", Checked: stapled},
		{Label: "No stapling", Checked: !stapled},
		{Label: "White paper", Checked: whitePaper},
		{Label: "Newsprint paper", Checked: !whitePaper},
	}
}

func withDefaults(f Form) Form {
	if f.SchoolName == "" {
		f.SchoolName = DefaultSchoolName
	}
	if f.Department == "" {
		f.Department = DefaultDepartment
	}
	if f.FormCode == "" {
		f.FormCode = DefaultFormCode
	}
	if f.Revision == "" {
		f.Revision = DefaultRevision
	}
	if f.Bars == nil {
		f.Bars = BarWidths(f.RequestID)
	}
	return f
}
