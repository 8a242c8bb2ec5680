package amortization

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/payoff/internal/model"
)

func defaultLoan() model.LoanParameters {
	return model.LoanParameters{
		Principal:                 250000,
		AnnualInterestRatePercent: 6,
		MonthlyPayment:            2000,
		YearlyTax:                 2500,
		YearlyInsurance:           3000,
		TermMonths:                360,
	}
}

type extrasFunc func(offset int) float64

func (f extrasFunc) AmountDue(offset int) float64 { return f(offset) }

func TestSimulateFirstMonth(t *testing.T) {
	t.Parallel()
	h := Simulate(defaultLoan())

	require.NotEmpty(t, h.Months)
	first := h.Months[0]
	assert.Equal(t, 1, first.PaymentMonth)
	assert.InDelta(t, 1250.0, first.InterestPaid, 1e-6)
	assert.InDelta(t, 2000.0, first.Paid, 1e-6)
	assert.InDelta(t, 249708.333333, first.Remaining, 1e-6)
	assert.InDelta(t, 291.666667, first.PrincipalPaid, 1e-6)
}

func TestSimulateConservation(t *testing.T) {
	t.Parallel()
	p := defaultLoan()
	h := Simulate(p)

	before := p.Principal
	for _, m := range h.Months {
		assert.InDelta(t, before-m.Remaining, m.PrincipalPaid, 1e-9, "month %d", m.PaymentMonth)
		before = m.Remaining
	}
	assert.LessOrEqual(t, h.MonthCount, p.TermMonths)
	assert.Equal(t, len(h.Months), h.MonthCount)
}

func TestSimulatePaysOffAndClampsFinalMonth(t *testing.T) {
	t.Parallel()
	h := Simulate(model.LoanParameters{
		Principal:      1000,
		MonthlyPayment: 300,
		TermMonths:     12,
	})

	require.Equal(t, 4, h.MonthCount)
	last := h.Months[len(h.Months)-1]
	assert.Equal(t, 0.0, last.Remaining)
	assert.InDelta(t, 100.0, last.Paid, 1e-9)
	assert.Equal(t, 0.0, h.Left)
	assert.True(t, h.PaidOff())
	assert.InDelta(t, 1000.0, h.YouPaid(), 1e-9)
	assert.InDelta(t, 1000.0, h.Totals.Principal, 1e-9)
}

func TestSimulateMonotonicPayoff(t *testing.T) {
	t.Parallel()
	p := defaultLoan()
	p.MonthlyPayment = 3000
	h := Simulate(p)

	prev := p.Principal
	for _, m := range h.Months {
		assert.Less(t, m.Remaining, prev)
		prev = m.Remaining
	}
	assert.Less(t, h.MonthCount, p.TermMonths)
	assert.Equal(t, 0.0, h.Left)
	assert.Equal(t, 0.0, h.Months[h.MonthCount-1].Remaining)
}

func TestSimulateZeroPrincipal(t *testing.T) {
	t.Parallel()
	p := defaultLoan()
	p.Principal = 0
	h := Simulate(p)

	assert.Equal(t, 0, h.MonthCount)
	assert.Empty(t, h.Months)
	assert.Equal(t, 0.0, h.Left)
	assert.Equal(t, model.Totals{}, h.Totals)
	assert.False(t, h.PaidOff())
}

func TestSimulateZeroTermKeepsPrincipal(t *testing.T) {
	t.Parallel()
	p := defaultLoan()
	p.TermMonths = 0
	h := Simulate(p)

	assert.Equal(t, 0, h.MonthCount)
	assert.Equal(t, p.Principal, h.Left)
}

func TestSimulateNegativeAmortization(t *testing.T) {
	t.Parallel()
	p := defaultLoan()
	p.MonthlyPayment = 0
	h := Simulate(p)

	assert.Equal(t, p.TermMonths, h.MonthCount)
	assert.Greater(t, h.Left, p.Principal)
	for _, m := range h.Months {
		assert.Equal(t, 0.0, m.Paid)
	}
	assert.Equal(t, 0.0, h.YouPaid())
}

func TestSimulateTotals(t *testing.T) {
	t.Parallel()
	p := defaultLoan()
	h := Simulate(p)

	var paid, interest float64
	for _, m := range h.Months {
		paid += m.Paid
		interest += m.InterestPaid
	}
	assert.InDelta(t, paid, h.YouPaid(), 1e-6)
	assert.InDelta(t, interest, h.YouPaidInterest(), 1e-6)
	assert.InDelta(t, float64(h.MonthCount)*2500/12, h.Totals.Tax, 1e-6)
	assert.InDelta(t, float64(h.MonthCount)*3000/12, h.Totals.Insurance, 1e-6)
	// Every dollar paid goes to principal, interest or escrow.
	assert.InDelta(t, h.Totals.Paid, h.Totals.Principal+h.Totals.Interest+h.Totals.Tax+h.Totals.Insurance, 1e-6)
}

func TestSimulateWithExtras(t *testing.T) {
	t.Parallel()
	p := model.LoanParameters{Principal: 1200, MonthlyPayment: 100, TermMonths: 24}

	t.Run("nil schedule matches Simulate", func(t *testing.T) {
		assert.Equal(t, Simulate(p), SimulateWithExtras(p, nil))
	})

	t.Run("lump sum in the first month", func(t *testing.T) {
		h := SimulateWithExtras(p, extrasFunc(func(offset int) float64 {
			if offset == 0 {
				return 500
			}
			return 0
		}))
		require.Equal(t, 7, h.MonthCount)
		assert.InDelta(t, 600.0, h.Months[0].Paid, 1e-9)
		assert.InDelta(t, 500.0, h.Months[0].ExtraPaid, 1e-9)
		assert.InDelta(t, 500.0, h.Totals.Extra, 1e-9)
		assert.Equal(t, 0.0, h.Left)
	})

	t.Run("extra is clamped to the balance", func(t *testing.T) {
		h := SimulateWithExtras(p, extrasFunc(func(int) float64 { return 5000 }))
		require.Equal(t, 1, h.MonthCount)
		assert.InDelta(t, 1200.0, h.Months[0].Paid, 1e-9)
		assert.InDelta(t, 1100.0, h.Months[0].ExtraPaid, 1e-9)
		assert.Equal(t, 0.0, h.Months[0].Remaining)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Validate(defaultLoan()))

	bad := defaultLoan()
	bad.MonthlyPayment = -1
	err := Validate(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidParameters))

	bad = defaultLoan()
	bad.Principal = math.NaN()
	assert.ErrorIs(t, Validate(bad), ErrInvalidParameters)
}

func TestSimulateHugeTermPaysOffEarly(t *testing.T) {
	t.Parallel()
	h := Simulate(model.LoanParameters{Principal: 1000, MonthlyPayment: 300, TermMonths: 1 << 40})

	assert.Equal(t, 4, h.MonthCount)
	require.Len(t, h.Months, 4)
	assert.Equal(t, 0.0, h.Left)
	assert.InDelta(t, 100, h.Months[3].Paid, 1e-9)
	assert.True(t, h.PaidOff())
}
