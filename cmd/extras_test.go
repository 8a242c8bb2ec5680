package cmd

import (
	"testing"

	"github.com/theirongolddev/payoff/internal/ledger"
)

func TestParseExtra(t *testing.T) {
	tests := []struct {
		in     string
		amount float64
		offset int
		repeat ledger.Repeat
	}{
		{"5000@12", 5000, 12, ledger.Once},
		{"$1,200@0/yearly", 1200, 0, ledger.Yearly},
		{"300@3/every-other-year", 300, 3, ledger.EveryOtherYear},
		{" 250@1/Twice Yearly ", 250, 1, ledger.TwiceYearly},
	}
	for _, tt := range tests {
		p, err := parseExtra(tt.in)
		if err != nil {
			t.Fatalf("parseExtra(%q): %v", tt.in, err)
		}
		if p.Amount != tt.amount || p.StartOffset != tt.offset || p.Repeat != tt.repeat {
			t.Errorf("parseExtra(%q) = %+v", tt.in, p)
		}
	}
}

func TestParseExtraErrors(t *testing.T) {
	for _, in := range []string{"5000", "abc@1", "-5@1", "100@-1", "100@x", "100@1/fortnightly"} {
		if _, err := parseExtra(in); err == nil {
			t.Errorf("parseExtra(%q) should fail", in)
		}
	}
}

func TestParseExtras(t *testing.T) {
	ps, err := parseExtras([]string{"100@1", "200@2/monthly"})
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 2 || ps[1].Repeat != ledger.Monthly {
		t.Errorf("parseExtras = %+v", ps)
	}
	if _, err := parseExtras([]string{"100@1", "bad"}); err == nil {
		t.Error("one bad entry should fail the batch")
	}
}
