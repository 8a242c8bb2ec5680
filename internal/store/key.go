package store

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/model"
)

// keyVersion changes whenever the engine's output for the same inputs would.
const keyVersion = "v1"

// Key derives the cache key for a full input tuple. Extra payments only take
// part when they are applied; their order does not matter.
func Key(p model.LoanParameters, extras []ledger.Payment, applyExtras bool) string {
	var b strings.Builder
	b.WriteString(keyVersion)
	for _, f := range []float64{p.Principal, p.AnnualInterestRatePercent, p.MonthlyPayment, p.YearlyTax, p.YearlyInsurance} {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(p.TermMonths))

	if applyExtras {
		b.WriteString("|extras")
		for _, e := range ledger.Sorted(extras) {
			b.WriteByte('|')
			b.WriteString(strconv.FormatFloat(e.Amount, 'g', -1, 64))
			b.WriteByte('@')
			b.WriteString(strconv.Itoa(e.StartOffset))
			b.WriteByte('/')
			b.WriteString(strconv.Itoa(int(e.Repeat)))
		}
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
