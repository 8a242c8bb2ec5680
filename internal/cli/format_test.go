package cli

import (
	"strings"
	"testing"

	"github.com/theirongolddev/payoff/internal/model"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{250000, "$250,000"},
		{1234.5, "$1,234.5"},
		{291.666666, "$291.67"},
		{1708.3333, "$1,708.33"},
		{0.005, "$0.01"},
		{-42.1, "-$42.1"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCents(t *testing.T) {
	if got := FormatCents(1234.5); got != "$1,234.50" {
		t.Errorf("FormatCents(1234.5) = %q", got)
	}
	if got := FormatCents(0); got != "$0.00" {
		t.Errorf("FormatCents(0) = %q", got)
	}
}

func TestFormatMonths(t *testing.T) {
	tests := map[int]string{
		0:   "",
		1:   "1 month",
		5:   "5 months",
		12:  "1 year",
		13:  "1 year and 1 month",
		170: "14 years and 2 months",
		360: "30 years",
	}
	for in, want := range tests {
		if got := FormatMonths(in); got != want {
			t.Errorf("FormatMonths(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatRate(t *testing.T) {
	if got := FormatRate(6); got != "6%" {
		t.Errorf("FormatRate(6) = %q", got)
	}
	if got := FormatRate(6.025); got != "6.025%" {
		t.Errorf("FormatRate(6.025) = %q", got)
	}
}

func TestSummary(t *testing.T) {
	p := model.LoanParameters{Principal: 1000, TermMonths: 24}
	h := model.PaymentHistory{
		MonthCount: 14,
		Left:       120.5,
		Totals:     model.Totals{Principal: 879.5, Interest: 40, Tax: 10, Insurance: 5},
	}

	lines := Summary(p, h)
	if len(lines) != 2 {
		t.Fatalf("Summary lines = %d, want 2: %q", len(lines), lines)
	}
	want := "After 1 year and 2 months, you paid $879.5 in principal, $40 in interest, $10 taxes & $5 insurance"
	if lines[0] != want {
		t.Errorf("line 0 = %q\nwant     %q", lines[0], want)
	}
	if lines[1] != "You still have $120.5 to pay" {
		t.Errorf("line 1 = %q", lines[1])
	}

	h.Left = 0
	if got := Summary(p, h); len(got) != 1 {
		t.Errorf("paid-off summary has %d lines, want 1", len(got))
	}
	if got := Summary(p, model.PaymentHistory{}); got != nil {
		t.Errorf("empty history summary = %q, want nil", got)
	}
}

func TestRenderSplitBar(t *testing.T) {
	out := RenderSplitBar(75, 25, 20)
	if !strings.Contains(out, "75.0% principal / 25.0% interest") {
		t.Errorf("RenderSplitBar = %q", out)
	}
	if RenderSplitBar(0, 0, 20) != "" {
		t.Error("RenderSplitBar with no totals should be empty")
	}
}

func TestRenderSparkline(t *testing.T) {
	got := RenderSparkline([]float64{0, 1, 2})
	if []rune(got)[2] != '█' {
		t.Errorf("RenderSparkline peak = %q", got)
	}
}

func TestRenderTableSeparatorsBecomeRules(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Inputs",
		Headers: []string{"Input", "Value"},
		Rows: [][]string{
			{"Principal", "$250,000"},
			Separator,
			{"Years left", "30"},
		},
	})
	if strings.Contains(out, "---") {
		t.Errorf("separator rendered literally:\n%s", out)
	}
	for _, want := range []string{"Inputs", "Principal", "$250,000", "Years left"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, strings.Repeat("─", len("Years left"))) {
		t.Errorf("expected a rule as wide as the first column:\n%s", out)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Errorf("RenderTable(empty) = %q", got)
	}
}
