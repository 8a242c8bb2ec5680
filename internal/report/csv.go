// Package report exports amortization schedules as CSV and PDF.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/model"
)

var csvHeader = []string{"payment_month", "date", "paid", "interest_paid", "principal_paid", "extra_paid", "remaining"}

// WriteCSV writes one row per month. now anchors the date column: payment
// month 1 falls in now's calendar month.
func WriteCSV(w io.Writer, h model.PaymentHistory, now time.Time) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, m := range h.Months {
		year, month := ledger.StartDate(now, m.PaymentMonth-1)
		row := []string{
			strconv.Itoa(m.PaymentMonth),
			fmt.Sprintf("%04d-%02d", year, int(month)),
			f(m.Paid),
			f(m.InterestPaid),
			f(m.PrincipalPaid),
			f(m.ExtraPaid),
			f(m.Remaining),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", m.PaymentMonth, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
