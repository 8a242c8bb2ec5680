package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/payoff/internal/config"
	"github.com/theirongolddev/payoff/internal/input"
	"github.com/theirongolddev/payoff/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues backs the first-run setup form. Numbers are kept as text
// while the form is open and converted by Apply.
type SetupValues struct {
	Principal       string
	InterestRate    string
	MonthlyPayment  string
	YearlyTax       string
	YearlyInsurance string
	YearsLeft       string
	ApplyExtras     bool
	Theme           string
	UseCache        bool
}

// NewSetupValues prefills the form from cfg.
func NewSetupValues(cfg config.Config) *SetupValues {
	d := cfg.Defaults
	return &SetupValues{
		Principal:       formatPlain(d.Principal),
		InterestRate:    formatPlain(d.InterestRate),
		MonthlyPayment:  formatPlain(d.MonthlyPayment),
		YearlyTax:       formatPlain(d.YearlyTax),
		YearlyInsurance: formatPlain(d.YearlyInsurance),
		YearsLeft:       strconv.Itoa(d.YearsLeft),
		ApplyExtras:     d.ApplyExtras,
		Theme:           theme.ByName(cfg.Appearance.Theme).Name,
		UseCache:        cfg.Cache.Enabled,
	}
}

func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// knobRange validates a number against the slider range of k, in display
// units (percent for the rate).
func knobRange(k input.Knob) func(string) error {
	spec := input.SpecOf(k)
	lo, hi := float64(spec.Min), float64(spec.Max)
	if k == input.InterestRate {
		lo /= input.PercentGranularity
		hi /= input.PercentGranularity
	}
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return errors.New("enter a number")
		}
		if v < lo || v > hi {
			return fmt.Errorf("must be between %s and %s", formatPlain(lo), formatPlain(hi))
		}
		return nil
	}
}

// NewSetupForm builds the setup wizard bound to v.
func NewSetupForm(v *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	numberInput := func(title string, k input.Knob, value *string) *huh.Input {
		return huh.NewInput().
			Title(title).
			Value(value).
			Validate(knobRange(k))
	}

	return huh.NewForm(
		huh.NewGroup(
			numberInput("Remaining principal ($)", input.Principal, &v.Principal),
			numberInput("Annual interest rate (%)", input.InterestRate, &v.InterestRate),
			numberInput("Monthly payment ($)", input.MonthlyPayment, &v.MonthlyPayment),
			numberInput("Years left", input.YearsLeft, &v.YearsLeft),
		).Title("Welcome to payoff").
			Description("Starting values for every command. Change them anytime with `payoff setup`."),
		huh.NewGroup(
			numberInput("Yearly property tax ($)", input.YearlyTax, &v.YearlyTax),
			numberInput("Yearly insurance ($)", input.YearlyInsurance, &v.YearlyInsurance),
			huh.NewConfirm().
				Title("Apply extra payments to the schedule by default?").
				Value(&v.ApplyExtras),
		).Title("Escrow and extras"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
			huh.NewConfirm().
				Title("Cache simulation results on disk?").
				Value(&v.UseCache),
		).Title("Appearance"),
	).WithShowHelp(true)
}

// Apply validates the values and writes them into cfg.
func (v *SetupValues) Apply(cfg *config.Config) error {
	fields := []struct {
		name string
		k    input.Knob
		raw  string
		dst  *float64
	}{
		{"principal", input.Principal, v.Principal, &cfg.Defaults.Principal},
		{"interest rate", input.InterestRate, v.InterestRate, &cfg.Defaults.InterestRate},
		{"monthly payment", input.MonthlyPayment, v.MonthlyPayment, &cfg.Defaults.MonthlyPayment},
		{"yearly tax", input.YearlyTax, v.YearlyTax, &cfg.Defaults.YearlyTax},
		{"yearly insurance", input.YearlyInsurance, v.YearlyInsurance, &cfg.Defaults.YearlyInsurance},
	}

	parsed := make([]float64, len(fields))
	for i, f := range fields {
		if err := knobRange(f.k)(f.raw); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		parsed[i], _ = strconv.ParseFloat(strings.TrimSpace(f.raw), 64)
	}
	if err := knobRange(input.YearsLeft)(v.YearsLeft); err != nil {
		return fmt.Errorf("years left: %w", err)
	}
	years, err := strconv.Atoi(strings.TrimSpace(v.YearsLeft))
	if err != nil {
		return errors.New("years left: enter a whole number")
	}

	for i, f := range fields {
		*f.dst = parsed[i]
	}
	cfg.Defaults.YearsLeft = years
	cfg.Defaults.ApplyExtras = v.ApplyExtras
	cfg.Appearance.Theme = theme.ByName(v.Theme).Name
	cfg.Cache.Enabled = v.UseCache
	return nil
}
