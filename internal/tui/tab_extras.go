package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/tui/components"
	"github.com/theirongolddev/payoff/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateExtras(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		a.moveExtrasCursor(1)
	case "k", "up":
		a.moveExtrasCursor(-1)
	case "left":
		a.activeTab = (a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)
	case "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case "a", "n":
		return a.openPaymentForm(newPaymentValues(a.now))
	case "enter":
		if p, ok := a.selectedPayment(); ok {
			return a.openPaymentForm(paymentValuesFrom(p, a.now))
		}
	case "d", "delete", "backspace":
		if p, ok := a.selectedPayment(); ok {
			a.ledger = a.ledger.Dispatch(ledger.Remove(p.ID))
			a.recompute()
		}
	}
	return a, nil
}

func (a *App) moveExtrasCursor(delta int) {
	n := a.ledger.Len()
	if n == 0 {
		a.extrasCursor = 0
		return
	}
	a.extrasCursor = min(max(a.extrasCursor+delta, 0), n-1)
}

// selectedPayment is the payment under the cursor in display order.
func (a App) selectedPayment() (ledger.Payment, bool) {
	sorted := a.ledger.Sorted()
	if a.extrasCursor < 0 || a.extrasCursor >= len(sorted) {
		return ledger.Payment{}, false
	}
	return sorted[a.extrasCursor], true
}

func (a App) formWidth() int {
	w := min(60, a.contentWidth()-4)
	if w < 40 {
		w = 40
	}
	return w
}

func (a App) openPaymentForm(vals *paymentValues) (tea.Model, tea.Cmd) {
	a.formVals = vals
	a.form = newPaymentForm(vals).WithWidth(a.formWidth())
	return a, a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		p, err := a.formVals.payment()
		if err != nil {
			a.notice = err.Error()
		} else if p.ID != 0 {
			a.ledger = a.ledger.Dispatch(ledger.Edit(p))
		} else {
			a.ledger = a.ledger.Dispatch(ledger.Add(p))
		}
		a.form = nil
		a.formVals = nil
		a.recompute()
		return a, nil
	case huh.StateAborted:
		a.form = nil
		a.formVals = nil
		return a, nil
	}

	return a, cmd
}

func (a App) renderExtrasTab(cw int) string {
	t := theme.Active

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	onStyle := lipgloss.NewStyle().Foreground(t.Extra).Background(t.Surface).Bold(true)
	offStyle := lipgloss.NewStyle().Foreground(t.Started).Background(t.Surface).Bold(true)

	inner := components.CardInnerWidth(cw)

	var b strings.Builder
	if a.applyExtras {
		b.WriteString(onStyle.Render("Applied to the schedule"))
		if a.history.Totals.Extra > 0 {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s paid early", cli.FormatCurrency(a.history.Totals.Extra))))
		}
	} else {
		b.WriteString(offStyle.Render("Not applied"))
		b.WriteString(mutedStyle.Render("  press x to include these in the schedule"))
	}
	b.WriteString("\n\n")

	sorted := a.ledger.Sorted()
	if len(sorted) == 0 {
		b.WriteString(mutedStyle.Render("No extra payments. Press a to add one."))
	} else {
		header := fmt.Sprintf("%-4s %12s  %-16s %-18s", "#", "Amount", "Starts", "Repeats")
		b.WriteString(headerStyle.Render(header))
		b.WriteString("\n")
		for i, p := range sorted {
			line := fmt.Sprintf("%-4d %12s  %-16s %-18s",
				p.ID,
				cli.FormatCurrency(p.Amount),
				ledger.DescribeStart(a.now, p.StartOffset),
				p.Repeat.String(),
			)
			style := rowStyle
			if i == a.extrasCursor {
				style = selStyle
			}
			b.WriteString(style.Width(inner).Render(line))
			b.WriteString("\n")
		}
	}

	if a.form != nil {
		b.WriteString("\n")
		b.WriteString(a.form.View())
	}

	return components.ContentCard("Extra payments  [a]dd  [enter] edit  [d]elete", b.String(), cw)
}
