package model

// MonthRecord is one simulated payment.
type MonthRecord struct {
	PaymentMonth  int     `json:"payment_month"` // 1-based
	Paid          float64 `json:"paid"`
	InterestPaid  float64 `json:"interest_paid"`
	PrincipalPaid float64 `json:"principal_paid"`
	ExtraPaid     float64 `json:"extra_paid,omitempty"`
	Remaining     float64 `json:"remaining"`
}

// Totals accumulates every month of a history.
type Totals struct {
	Paid      float64 `json:"paid"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Tax       float64 `json:"tax"`
	Insurance float64 `json:"insurance"`
	Extra     float64 `json:"extra,omitempty"`
}

// PaymentHistory is the full result of a simulation. It is built once and
// never mutated afterwards.
type PaymentHistory struct {
	Months     []MonthRecord `json:"months"`
	MonthCount int           `json:"month_count"`
	Left       float64       `json:"left"`
	Totals     Totals        `json:"totals"`
}

// YouPaid is the sum of every payment made.
func (h PaymentHistory) YouPaid() float64 { return h.Totals.Paid }

// YouPaidInterest is the sum of interest charged across all months.
func (h PaymentHistory) YouPaidInterest() float64 { return h.Totals.Interest }

// PaidOff reports whether the balance reached zero within the horizon.
func (h PaymentHistory) PaidOff() bool {
	return h.MonthCount > 0 && h.Left <= 0
}

// YearStats rolls a history up into one row per loan year.
type YearStats struct {
	Year      int
	Months    int
	Paid      float64
	Principal float64
	Interest  float64
	Extra     float64
	Remaining float64
}

// Years groups the history by loan year (months 1-12 are year 1).
func (h PaymentHistory) Years() []YearStats {
	var years []YearStats
	for _, m := range h.Months {
		y := (m.PaymentMonth-1)/12 + 1
		if len(years) == 0 || years[len(years)-1].Year != y {
			years = append(years, YearStats{Year: y})
		}
		ys := &years[len(years)-1]
		ys.Months++
		ys.Paid += m.Paid
		ys.Principal += m.PrincipalPaid
		ys.Interest += m.InterestPaid
		ys.Extra += m.ExtraPaid
		ys.Remaining = m.Remaining
	}
	return years
}
