package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/ledger"

	"github.com/charmbracelet/huh"
)

// paymentValues backs the extra payment form. huh binds to the pointers,
// so the struct lives on the heap while the form is open.
type paymentValues struct {
	id     int
	amount string
	offset string
	repeat ledger.Repeat
	now    time.Time
}

func newPaymentValues(now time.Time) *paymentValues {
	return &paymentValues{
		amount: strconv.Itoa(ledger.MinAmount),
		offset: "0",
		repeat: ledger.Once,
		now:    now,
	}
}

func paymentValuesFrom(p ledger.Payment, now time.Time) *paymentValues {
	return &paymentValues{
		id:     p.ID,
		amount: strconv.FormatFloat(p.Amount, 'f', -1, 64),
		offset: strconv.Itoa(p.StartOffset),
		repeat: p.Repeat,
		now:    now,
	}
}

func parseAmount(s string) (float64, error) {
	s = strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(s))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("enter a dollar amount")
	}
	if v < ledger.MinAmount || v > ledger.MaxAmount {
		return 0, fmt.Errorf("amount must be between %s and %s",
			cli.FormatCurrency(ledger.MinAmount), cli.FormatCurrency(ledger.MaxAmount))
	}
	return v, nil
}

func parseOffset(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("enter a whole number of months")
	}
	if v < ledger.MinStartOffset || v > ledger.MaxStartOffset {
		return 0, fmt.Errorf("start must be between %d and %d months from now",
			ledger.MinStartOffset, ledger.MaxStartOffset)
	}
	return v, nil
}

// payment converts the form values, snapping the amount to the form step.
func (v *paymentValues) payment() (ledger.Payment, error) {
	amount, err := parseAmount(v.amount)
	if err != nil {
		return ledger.Payment{}, err
	}
	offset, err := parseOffset(v.offset)
	if err != nil {
		return ledger.Payment{}, err
	}
	amount = math.Round(amount/ledger.AmountStep) * ledger.AmountStep
	return ledger.Payment{
		ID:          v.id,
		Amount:      amount,
		StartOffset: offset,
		Repeat:      v.repeat,
	}, nil
}

func newPaymentForm(v *paymentValues) *huh.Form {
	title := "Add extra payment"
	if v.id != 0 {
		title = fmt.Sprintf("Edit extra payment #%d", v.id)
	}

	repeatOpts := make([]huh.Option[ledger.Repeat], 0, len(ledger.Repeats))
	for _, r := range ledger.Repeats {
		repeatOpts = append(repeatOpts, huh.NewOption(r.String(), r))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Description(fmt.Sprintf("%s to %s, rounded to %s",
					cli.FormatCurrency(ledger.MinAmount),
					cli.FormatCurrency(ledger.MaxAmount),
					cli.FormatCurrency(ledger.AmountStep))).
				Value(&v.amount).
				Validate(func(s string) error {
					_, err := parseAmount(s)
					return err
				}),
			huh.NewInput().
				Title("Starts in (months)").
				DescriptionFunc(func() string {
					off, err := parseOffset(v.offset)
					if err != nil {
						return ""
					}
					return ledger.DescribeStart(v.now, off)
				}, &v.offset).
				Value(&v.offset).
				Validate(func(s string) error {
					_, err := parseOffset(s)
					return err
				}),
			huh.NewSelect[ledger.Repeat]().
				Title("Repeats").
				Options(repeatOpts...).
				Value(&v.repeat),
		).Title(title),
	).WithShowHelp(true)
}
