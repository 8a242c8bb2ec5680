package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/payoff/internal/config"
	"github.com/theirongolddev/payoff/internal/input"
	"github.com/theirongolddev/payoff/internal/ledger"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) App {
	t.Helper()
	a := NewApp(config.DefaultConfig(), input.Defaults(), ledger.New(nil), false)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 48})
	return m.(App)
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

func TestNewAppSimulatesDefaults(t *testing.T) {
	a := newTestApp(t)

	h := a.History()
	require.NotZero(t, h.MonthCount)
	assert.Equal(t, 360, a.params.TermMonths)
	assert.InDelta(t, 250000, h.Months[0].Remaining+h.Months[0].PrincipalPaid, 1e-6)
}

func TestNudgeRecomputes(t *testing.T) {
	a := newTestApp(t)
	before := a.History()

	// Monthly payment is the fifth knob.
	a = press(t, a, "j", "j", "j", "j")
	require.Equal(t, input.MonthlyPayment, input.All[a.selected])

	a = press(t, a, "L")
	assert.Equal(t, 2200, a.Knobs().Value(input.MonthlyPayment))
	assert.Less(t, a.History().MonthCount, before.MonthCount)

	a = press(t, a, "h")
	assert.Equal(t, 2180, a.Knobs().Value(input.MonthlyPayment))
}

func TestSelectKnobWraps(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "k")
	assert.Equal(t, input.YearsLeft, input.All[a.selected])
	a = press(t, a, "j")
	assert.Equal(t, input.YearlyInsurance, input.All[a.selected])
}

func TestTabKeys(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "s")
	assert.Equal(t, tabSchedule, a.activeTab)
	a = press(t, a, "e")
	assert.Equal(t, tabExtras, a.activeTab)
	a = press(t, a, "o")
	assert.Equal(t, tabOutcome, a.activeTab)
}

func TestApplyExtrasToggle(t *testing.T) {
	l := ledger.New(nil).Dispatch(ledger.Add(ledger.Payment{Amount: 10000, StartOffset: 0, Repeat: ledger.Yearly}))
	a := NewApp(config.DefaultConfig(), input.Defaults(), l, false)
	without := a.History().MonthCount

	a = press(t, a, "x")
	require.True(t, a.applyExtras)
	assert.Less(t, a.History().MonthCount, without)
	assert.Positive(t, a.History().Totals.Extra)

	a = press(t, a, "x")
	assert.Equal(t, without, a.History().MonthCount)
}

func TestRemoveExtraPayment(t *testing.T) {
	l := ledger.New(nil).
		Dispatch(ledger.Add(ledger.Payment{Amount: 500, StartOffset: 12})).
		Dispatch(ledger.Add(ledger.Payment{Amount: 300, StartOffset: 1}))
	a := NewApp(config.DefaultConfig(), input.Defaults(), l, true)
	a = press(t, a, "e")

	// Sorted by offset, so the cursor starts on the $300 payment.
	p, ok := a.selectedPayment()
	require.True(t, ok)
	assert.InDelta(t, 300, p.Amount, 1e-9)

	a = press(t, a, "d")
	require.Equal(t, 1, a.Ledger().Len())
	_, ok = a.Ledger().Get(p.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, a.extrasCursor)
}

func TestPaymentFormOpensAndCancels(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "e", "a")
	require.NotNil(t, a.form)

	// Keys go to the form, not the tab bar.
	a = press(t, a, "o")
	assert.Equal(t, tabExtras, a.activeTab)

	a = press(t, a, "esc")
	assert.Nil(t, a.form)
	assert.Equal(t, 0, a.Ledger().Len())
}

func TestPaymentValues(t *testing.T) {
	v := newPaymentValues(testNow)
	v.amount = "$1,250"
	v.offset = "3"
	v.repeat = ledger.Quarterly

	p, err := v.payment()
	require.NoError(t, err)
	assert.InDelta(t, 1300, p.Amount, 1e-9)
	assert.Equal(t, 3, p.StartOffset)
	assert.Equal(t, ledger.Quarterly, p.Repeat)

	v.amount = "50"
	_, err = v.payment()
	assert.Error(t, err)

	v.amount = "500"
	v.offset = "361"
	_, err = v.payment()
	assert.Error(t, err)
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	v := NewSetupValues(cfg)
	v.Principal = "300000"
	v.InterestRate = "4.5"
	v.YearsLeft = "15"
	v.Theme = "gruvbox-dark"

	require.NoError(t, v.Apply(&cfg))
	assert.InDelta(t, 300000, cfg.Defaults.Principal, 1e-9)
	assert.InDelta(t, 4.5, cfg.Defaults.InterestRate, 1e-9)
	assert.Equal(t, 15, cfg.Defaults.YearsLeft)
	assert.Equal(t, "gruvbox-dark", cfg.Appearance.Theme)

	v.InterestRate = "11"
	err := v.Apply(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interest rate")
	assert.InDelta(t, 4.5, cfg.Defaults.InterestRate, 1e-9)
}

func TestViewRendersTabs(t *testing.T) {
	a := newTestApp(t)

	out := a.View()
	assert.Contains(t, out, "Outcome")
	assert.Contains(t, out, "Years left")
	assert.Contains(t, out, "Monthly payment split")

	a = press(t, a, "s")
	assert.Contains(t, a.View(), "Remaining")

	a = press(t, a, "e")
	assert.Contains(t, a.View(), "No extra payments")

	a = press(t, a, "?")
	assert.Contains(t, a.View(), "Keyboard Shortcuts")
	a = press(t, a, "q")
	assert.False(t, a.showHelp, "any key closes help")
}

func TestViewTooNarrow(t *testing.T) {
	a := NewApp(config.DefaultConfig(), input.Defaults(), ledger.New(nil), false)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	out := m.(App).View()
	assert.True(t, strings.Contains(out, "too narrow"))
}

func TestDownsample(t *testing.T) {
	in := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	assert.Equal(t, []float64{0, 4, 9}, downsample(in, 3))
	assert.Equal(t, in, downsample(in, 20))
}
