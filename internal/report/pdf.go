package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/model"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// Input is everything the PDF describes.
type Input struct {
	Params      model.LoanParameters
	History     model.PaymentHistory
	Extras      []ledger.Payment
	ApplyExtras bool
	Now         time.Time
}

type pdfReport struct {
	pdf *fpdf.Fpdf
	in  Input
}

// GeneratePDF renders a loan overview followed by the yearly and monthly
// schedules.
func GeneratePDF(in Input) ([]byte, error) {
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	r := &pdfReport{
		pdf: fpdf.New("P", "mm", "A4", ""),
		in:  in,
	}

	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetFooterFunc(func() {
		r.pdf.SetY(-12)
		r.pdf.SetFont("Arial", "I", 8)
		r.pdf.SetTextColor(120, 120, 120)
		r.pdf.CellFormat(0, 6, fmt.Sprintf("Page %d", r.pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	r.addOverview()
	r.addYearlyTable()
	r.addMonthlyTable()

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) heading(text string) {
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, text, "", 1, "L", false, 0, "")
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
}

func (r *pdfReport) keyValue(k, v string) {
	r.pdf.CellFormat(contentWidth*0.45, 6, k, "", 0, "L", false, 0, "")
	r.pdf.CellFormat(contentWidth*0.55, 6, v, "", 1, "R", false, 0, "")
}

func (r *pdfReport) addOverview() {
	p, h := r.in.Params, r.in.History

	r.pdf.AddPage()
	r.pdf.SetFont("Arial", "B", 22)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 12, "Mortgage Payoff Schedule", "", 1, "C", false, 0, "")
	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Generated: %s", r.in.Now.Format("2 January 2006")), "", 1, "C", false, 0, "")
	r.pdf.Ln(6)

	r.heading("Loan")
	r.keyValue("Remaining principal", cli.FormatCents(p.Principal))
	r.keyValue("Interest rate", cli.FormatRate(p.AnnualInterestRatePercent))
	r.keyValue("Monthly payment", cli.FormatCents(p.MonthlyPayment))
	r.keyValue("Yearly tax", cli.FormatCents(p.YearlyTax))
	r.keyValue("Yearly insurance", cli.FormatCents(p.YearlyInsurance))
	r.keyValue("Horizon", cli.FormatMonths(p.TermMonths))
	r.pdf.Ln(4)

	r.heading("Outcome")
	if h.MonthCount == 0 {
		r.pdf.CellFormat(contentWidth, 6, "Nothing to simulate.", "", 1, "L", false, 0, "")
		return
	}
	for _, line := range cli.Summary(p, h) {
		r.pdf.MultiCell(contentWidth, 5, line, "", "L", false)
	}
	r.pdf.Ln(2)
	r.keyValue("Total paid", cli.FormatCents(h.Totals.Paid))
	r.keyValue("Principal", cli.FormatCents(h.Totals.Principal))
	r.keyValue("Interest", cli.FormatCents(h.Totals.Interest))
	r.keyValue("Tax", cli.FormatCents(h.Totals.Tax))
	r.keyValue("Insurance", cli.FormatCents(h.Totals.Insurance))
	if h.PaidOff() {
		year, month := ledger.StartDate(r.in.Now, h.MonthCount-1)
		r.keyValue("Paid off in", fmt.Sprintf("%s %d", month, year))
	}
	r.pdf.Ln(4)

	if len(r.in.Extras) > 0 {
		title := "Extra payments (not applied)"
		if r.in.ApplyExtras {
			title = "Extra payments"
		}
		r.heading(title)
		for _, e := range ledger.Sorted(r.in.Extras) {
			r.keyValue(fmt.Sprintf("%s, %s", ledger.DescribeStart(r.in.Now, e.StartOffset), e.Repeat), cli.FormatCents(e.Amount))
		}
	}
}

func (r *pdfReport) tableHeader(cols []string, widths []float64) {
	r.pdf.SetFont("Arial", "B", 9)
	r.pdf.SetFillColor(230, 236, 245)
	r.pdf.SetTextColor(0, 51, 102)
	for i, c := range cols {
		r.pdf.CellFormat(widths[i], 6, c, "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(50, 50, 50)
}

func (r *pdfReport) tableRow(cells []string, widths []float64, fill bool) {
	r.pdf.SetFillColor(245, 247, 250)
	for i, c := range cells {
		align := "R"
		if i == 0 {
			align = "L"
		}
		r.pdf.CellFormat(widths[i], 5, c, "LR", 0, align, fill, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) addYearlyTable() {
	years := r.in.History.Years()
	if len(years) == 0 {
		return
	}

	r.pdf.AddPage()
	r.heading("Year by year")

	cols := []string{"Year", "Months", "Paid", "Principal", "Interest", "Remaining"}
	widths := []float64{20, 20, 35, 35, 35, 35}
	r.tableHeader(cols, widths)
	for i, y := range years {
		r.tableRow([]string{
			fmt.Sprintf("%d", y.Year),
			fmt.Sprintf("%d", y.Months),
			cli.FormatCents(y.Paid),
			cli.FormatCents(y.Principal),
			cli.FormatCents(y.Interest),
			cli.FormatCents(y.Remaining),
		}, widths, i%2 == 1)
	}
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
}

func (r *pdfReport) addMonthlyTable() {
	months := r.in.History.Months
	if len(months) == 0 {
		return
	}

	r.pdf.AddPage()
	r.heading("Month by month")

	cols := []string{"Month", "Date", "Paid", "Interest", "Principal", "Remaining"}
	widths := []float64{18, 32, 32, 32, 32, 34}
	r.tableHeader(cols, widths)
	for i, m := range months {
		year, month := ledger.StartDate(r.in.Now, m.PaymentMonth-1)
		r.tableRow([]string{
			fmt.Sprintf("%d", m.PaymentMonth),
			fmt.Sprintf("%s %d", month.String()[:3], year),
			cli.FormatCents(m.Paid),
			cli.FormatCents(m.InterestPaid),
			cli.FormatCents(m.PrincipalPaid),
			cli.FormatCents(m.Remaining),
		}, widths, i%2 == 1)
	}
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
}
