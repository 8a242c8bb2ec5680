// Package model defines the loan inputs and amortization results shared by
// every layer of payoff.
package model

// LoanParameters are the six scalar inputs of a simulation.
// Values are taken as given; no validation happens here.
type LoanParameters struct {
	Principal                 float64 `json:"principal" yaml:"principal"`
	AnnualInterestRatePercent float64 `json:"annual_interest_rate_percent" yaml:"annual_interest_rate_percent"`
	MonthlyPayment            float64 `json:"monthly_payment" yaml:"monthly_payment"`
	YearlyTax                 float64 `json:"yearly_tax" yaml:"yearly_tax"`
	YearlyInsurance           float64 `json:"yearly_insurance" yaml:"yearly_insurance"`
	TermMonths                int     `json:"term_months" yaml:"term_months"`
}

// MonthlyRate returns the periodic interest rate as a fraction.
func (p LoanParameters) MonthlyRate() float64 {
	return p.AnnualInterestRatePercent / 100 / 12
}

// MonthlyEscrow returns the tax and insurance share added every month.
func (p LoanParameters) MonthlyEscrow() (tax, insurance float64) {
	return p.YearlyTax / 12, p.YearlyInsurance / 12
}

// TermYears returns the horizon in (possibly fractional) years.
func (p LoanParameters) TermYears() float64 {
	return float64(p.TermMonths) / 12
}
