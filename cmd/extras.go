package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/payoff/internal/ledger"
)

// parseExtra reads "amount@offset[/repeat]". The offset counts months from
// now and the repeat defaults to once.
func parseExtra(s string) (ledger.Payment, error) {
	var p ledger.Payment

	amountStr, rest, ok := strings.Cut(strings.TrimSpace(s), "@")
	if !ok {
		return p, fmt.Errorf("extra %q: want amount@offset[/repeat]", s)
	}

	offsetStr, repeatStr, hasRepeat := strings.Cut(rest, "/")

	amount, err := strconv.ParseFloat(strings.NewReplacer("$", "", ",", "").Replace(amountStr), 64)
	if err != nil || amount <= 0 {
		return p, fmt.Errorf("extra %q: amount must be a positive number", s)
	}
	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		return p, fmt.Errorf("extra %q: offset must be a non-negative whole number of months", s)
	}

	p.Amount = amount
	p.StartOffset = offset
	if hasRepeat {
		r, err := ledger.ParseRepeat(repeatStr)
		if err != nil {
			return p, fmt.Errorf("extra %q: %w", s, err)
		}
		p.Repeat = r
	}
	return p, nil
}

func parseExtras(specs []string) ([]ledger.Payment, error) {
	out := make([]ledger.Payment, 0, len(specs))
	for _, s := range specs {
		p, err := parseExtra(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
