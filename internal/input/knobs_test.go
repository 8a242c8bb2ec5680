package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theirongolddev/payoff/internal/model"
)

func TestDefaultsParams(t *testing.T) {
	t.Parallel()
	p := Defaults().Params()

	assert.Equal(t, model.LoanParameters{
		Principal:                 250000,
		AnnualInterestRatePercent: 6,
		MonthlyPayment:            2000,
		YearlyTax:                 2500,
		YearlyInsurance:           3000,
		TermMonths:                360,
	}, p)
}

func TestSetSnapsAndClamps(t *testing.T) {
	t.Parallel()
	ks := Defaults()

	assert.Equal(t, 251000, ks.Set(Principal, 250600).Value(Principal))
	assert.Equal(t, 700000, ks.Set(Principal, 9_000_000).Value(Principal))
	assert.Equal(t, 50000, ks.Set(Principal, 0).Value(Principal))
	assert.Equal(t, 2020, ks.Set(MonthlyPayment, 2013).Value(MonthlyPayment))
	assert.Equal(t, 40, ks.Set(InterestRate, 1).Value(InterestRate))
	assert.Equal(t, 2000, ks.Value(MonthlyPayment), "Set returns a copy")
}

func TestNudge(t *testing.T) {
	t.Parallel()
	ks := Defaults().Nudge(YearlyTax, 3)
	assert.Equal(t, 2650, ks.Value(YearlyTax))

	ks = ks.Nudge(YearsLeft, 5)
	assert.Equal(t, 30, ks.Value(YearsLeft))

	ks = ks.Nudge(InterestRate, 1)
	assert.InDelta(t, 6.025, ks.RatePercent(), 1e-12)
}

func TestFromParamsRoundTrip(t *testing.T) {
	t.Parallel()
	p := model.LoanParameters{
		Principal:                 320000,
		AnnualInterestRatePercent: 4.5,
		MonthlyPayment:            1800,
		YearlyTax:                 4000,
		YearlyInsurance:           1200,
		TermMonths:                240,
	}
	assert.Equal(t, p, FromParams(p).Params())
}

func TestFraction(t *testing.T) {
	t.Parallel()
	ks := Defaults().Set(YearsLeft, 15)
	assert.InDelta(t, 0.5, ks.Fraction(YearsLeft), 1e-12)
	assert.Equal(t, "Years left", YearsLeft.String())
}
