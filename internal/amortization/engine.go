// Package amortization runs the month-by-month loan simulation.
//
// Simulate is a pure function of its LoanParameters: no I/O, no shared state,
// and no rounding inside the loop. Callers that need cents round at display
// time.
package amortization

import (
	"errors"
	"fmt"
	"math"

	"github.com/theirongolddev/payoff/internal/model"
)

// ErrInvalidParameters is returned by Validate.
var ErrInvalidParameters = errors.New("invalid loan parameters")

// ExtraSchedule supplies additional principal for a 0-based month offset.
type ExtraSchedule interface {
	AmountDue(offset int) float64
}

// Simulate produces the amortization schedule for p.
//
// The loop runs at most TermMonths times and stops as soon as the remaining
// balance is no longer positive. With a non-positive principal or term the
// history is empty and Left equals the principal.
func Simulate(p model.LoanParameters) model.PaymentHistory {
	return run(p, nil)
}

// SimulateWithExtras is Simulate plus additional payments from sched. The
// extra is added on top of MonthlyPayment and the payoff clamp applies to
// the combined amount. A nil sched behaves exactly like Simulate.
func SimulateWithExtras(p model.LoanParameters, sched ExtraSchedule) model.PaymentHistory {
	return run(p, sched)
}

// maxPrealloc bounds the up-front schedule allocation. Longer schedules grow
// through append.
const maxPrealloc = 360

func run(p model.LoanParameters, sched ExtraSchedule) model.PaymentHistory {
	var h model.PaymentHistory

	remaining := p.Principal
	rate := p.MonthlyRate()
	tax, insurance := p.MonthlyEscrow()

	h.Months = []model.MonthRecord{}
	if p.TermMonths > 0 && remaining > 0 {
		h.Months = make([]model.MonthRecord, 0, min(p.TermMonths, maxPrealloc))
	}

	for month := 1; month <= p.TermMonths && remaining > 0; month++ {
		interest := rate * remaining
		increases := tax + insurance + interest
		owed := increases + remaining

		payment := p.MonthlyPayment
		if payment > owed {
			payment = owed
		}

		var extra float64
		if sched != nil {
			if due := sched.AmountDue(month - 1); due > 0 {
				if due >= owed-payment {
					extra = owed - payment
					payment = owed
				} else {
					extra = due
					payment += due
				}
			}
		}

		newRemaining := remaining + increases - payment

		h.Months = append(h.Months, model.MonthRecord{
			PaymentMonth:  month,
			Paid:          payment,
			InterestPaid:  interest,
			PrincipalPaid: remaining - newRemaining,
			ExtraPaid:     extra,
			Remaining:     newRemaining,
		})

		h.Totals.Paid += payment
		h.Totals.Principal += remaining - newRemaining
		h.Totals.Interest += interest
		h.Totals.Tax += tax
		h.Totals.Insurance += insurance
		h.Totals.Extra += extra

		remaining = newRemaining
	}

	h.Left = remaining
	h.MonthCount = len(h.Months)
	return h
}

// Validate rejects negative or non-finite inputs. Simulate never calls it;
// callers opt in.
func Validate(p model.LoanParameters) error {
	fields := []struct {
		name string
		v    float64
	}{
		{"principal", p.Principal},
		{"annual interest rate", p.AnnualInterestRatePercent},
		{"monthly payment", p.MonthlyPayment},
		{"yearly tax", p.YearlyTax},
		{"yearly insurance", p.YearlyInsurance},
		{"term months", float64(p.TermMonths)},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidParameters, f.name)
		}
		if f.v < 0 {
			return fmt.Errorf("%w: %s must not be negative (got %g)", ErrInvalidParameters, f.name, f.v)
		}
	}
	return nil
}
