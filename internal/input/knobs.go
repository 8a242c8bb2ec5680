// Package input holds the slider state that feeds the amortization engine.
//
// Knob values are stored in raw slider units (whole numbers). The interest
// rate knob uses PercentGranularity raw units per percent; years left are
// converted to months when building LoanParameters.
package input

import (
	"fmt"
	"math"

	"github.com/theirongolddev/payoff/internal/model"
)

// PercentGranularity is the number of raw rate units per percentage point.
const PercentGranularity = 40

// Knob identifies one of the six inputs.
type Knob int

const (
	YearlyInsurance Knob = iota
	YearlyTax
	Principal
	InterestRate
	MonthlyPayment
	YearsLeft
	knobCount
)

// All lists the knobs in display order.
var All = []Knob{YearlyInsurance, YearlyTax, Principal, InterestRate, MonthlyPayment, YearsLeft}

// Spec describes the range of a knob.
type Spec struct {
	Label   string
	Min     int
	Max     int
	Step    int
	Default int
}

var specs = [knobCount]Spec{
	YearlyInsurance: {Label: "Yearly insurance", Min: 0, Max: 20000, Step: 50, Default: 3000},
	YearlyTax:       {Label: "Yearly tax", Min: 0, Max: 20000, Step: 50, Default: 2500},
	Principal:       {Label: "Initial remaining", Min: 50000, Max: 700000, Step: 1000, Default: 250000},
	InterestRate:    {Label: "Interest rate", Min: 40, Max: 400, Step: 1, Default: 6 * PercentGranularity},
	MonthlyPayment:  {Label: "Monthly payment", Min: 0, Max: 5000, Step: 20, Default: 2000},
	YearsLeft:       {Label: "Years left", Min: 0, Max: 30, Step: 1, Default: 30},
}

// SpecOf returns the range of k.
func SpecOf(k Knob) Spec { return specs[k] }

func (k Knob) String() string {
	if k < 0 || k >= knobCount {
		return fmt.Sprintf("Knob(%d)", int(k))
	}
	return specs[k].Label
}

// Knobs is the full slider state. It is a value; setters return a copy.
type Knobs struct {
	values [knobCount]int
}

// Defaults returns every knob at its default position.
func Defaults() Knobs {
	var k Knobs
	for _, knob := range All {
		k.values[knob] = specs[knob].Default
	}
	return k
}

// Value returns the raw slider value of k.
func (ks Knobs) Value(k Knob) int { return ks.values[k] }

// Set snaps raw to the knob's step and clamps it into range.
func (ks Knobs) Set(k Knob, raw int) Knobs {
	ks.values[k] = snap(specs[k], raw)
	return ks
}

// Nudge moves k by steps increments.
func (ks Knobs) Nudge(k Knob, steps int) Knobs {
	return ks.Set(k, ks.values[k]+steps*specs[k].Step)
}

// Fraction is the knob's position within its range, 0 to 1.
func (ks Knobs) Fraction(k Knob) float64 {
	s := specs[k]
	if s.Max == s.Min {
		return 0
	}
	return float64(ks.values[k]-s.Min) / float64(s.Max-s.Min)
}

func snap(s Spec, raw int) int {
	v := raw
	if s.Step > 1 {
		v = s.Min + int(math.Round(float64(raw-s.Min)/float64(s.Step)))*s.Step
	}
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	return v
}

// RatePercent converts the raw rate knob to a percentage.
func (ks Knobs) RatePercent() float64 {
	return float64(ks.values[InterestRate]) / PercentGranularity
}

// Params builds engine inputs from the knobs.
func (ks Knobs) Params() model.LoanParameters {
	return model.LoanParameters{
		Principal:                 float64(ks.values[Principal]),
		AnnualInterestRatePercent: ks.RatePercent(),
		MonthlyPayment:            float64(ks.values[MonthlyPayment]),
		YearlyTax:                 float64(ks.values[YearlyTax]),
		YearlyInsurance:           float64(ks.values[YearlyInsurance]),
		TermMonths:                ks.values[YearsLeft] * 12,
	}
}

// FromParams positions the knobs as close to p as their ranges allow.
func FromParams(p model.LoanParameters) Knobs {
	var ks Knobs
	ks = ks.Set(YearlyInsurance, int(math.Round(p.YearlyInsurance)))
	ks = ks.Set(YearlyTax, int(math.Round(p.YearlyTax)))
	ks = ks.Set(Principal, int(math.Round(p.Principal)))
	ks = ks.Set(InterestRate, int(math.Round(p.AnnualInterestRatePercent*PercentGranularity)))
	ks = ks.Set(MonthlyPayment, int(math.Round(p.MonthlyPayment)))
	ks = ks.Set(YearsLeft, int(math.Round(float64(p.TermMonths)/12)))
	return ks
}
