package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/theirongolddev/payoff/internal/amortization"
	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/model"
)

func smallLoan() model.LoanParameters {
	return model.LoanParameters{
		Principal:                 12000,
		AnnualInterestRatePercent: 5,
		MonthlyPayment:            1000,
		YearlyTax:                 600,
		YearlyInsurance:           300,
		TermMonths:                24,
	}
}

func TestWriteCSV(t *testing.T) {
	h := amortization.Simulate(smallLoan())
	now := time.Date(2026, time.November, 5, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, h, now); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv back: %v", err)
	}
	if len(rows) != h.MonthCount+1 {
		t.Fatalf("rows = %d, want %d", len(rows), h.MonthCount+1)
	}
	if rows[0][0] != "payment_month" || rows[0][6] != "remaining" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][1] != "2026-11" || rows[3][1] != "2027-01" {
		t.Fatalf("dates = %q, %q", rows[1][1], rows[3][1])
	}
	if rows[1][3] != "50.00" {
		t.Fatalf("first interest = %q, want 50.00", rows[1][3])
	}
	if last := rows[len(rows)-1]; last[6] != "0.00" {
		t.Fatalf("last remaining = %q, want 0.00", last[6])
	}
}

func TestGeneratePDF(t *testing.T) {
	p := smallLoan()
	extras := []ledger.Payment{{ID: 1, Amount: 500, StartOffset: 2, Repeat: ledger.Quarterly}}
	data, err := GeneratePDF(Input{
		Params:      p,
		History:     amortization.SimulateWithExtras(p, ledger.Schedule(extras)),
		Extras:      extras,
		ApplyExtras: true,
		Now:         time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("GeneratePDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output does not look like a PDF: %q", data[:8])
	}
}

func TestGeneratePDFEmptyHistory(t *testing.T) {
	data, err := GeneratePDF(Input{Params: model.LoanParameters{}, History: amortization.Simulate(model.LoanParameters{})})
	if err != nil {
		t.Fatalf("GeneratePDF: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty PDF output")
	}
}
