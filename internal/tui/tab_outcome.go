package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/input"
	"github.com/theirongolddev/payoff/internal/model"
	"github.com/theirongolddev/payoff/internal/tui/components"
	"github.com/theirongolddev/payoff/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateOutcome(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		a.selectKnob(1)
	case "k", "up":
		a.selectKnob(-1)
	case "h", "left":
		a.nudge(-1)
	case "l", "right":
		a.nudge(1)
	case "H", "shift+left":
		a.nudge(-10)
	case "L", "shift+right":
		a.nudge(10)
	}
	return a, nil
}

func (a *App) selectKnob(delta int) {
	n := len(input.All)
	a.selected = (a.selected + delta + n) % n
}

func (a *App) nudge(steps int) {
	knob := input.All[a.selected]
	next := a.knobs.Nudge(knob, steps)
	if next == a.knobs {
		return
	}
	a.knobs = next
	a.recompute()
}

// knobDisplay renders a knob value the way it is shown next to its slider.
func knobDisplay(ks input.Knobs, k input.Knob) string {
	switch k {
	case input.InterestRate:
		return cli.FormatRate(ks.RatePercent())
	case input.YearsLeft:
		years := ks.Value(k)
		if years == 1 {
			return "1 year"
		}
		return fmt.Sprintf("%d years", years)
	default:
		return cli.FormatCurrency(float64(ks.Value(k)))
	}
}

func (a App) renderOutcomeTab(cw, h int) string {
	var b strings.Builder

	b.WriteString(components.MetricCardRow(a.outcomeMetrics(), cw))
	b.WriteString("\n")

	var top string
	if a.isCompactLayout() {
		top = components.ContentCard("Inputs", a.renderSliders(cw), cw) + "\n" +
			components.ContentCard("Breakdown", a.renderBreakdown(cw), cw)
	} else {
		halves := components.LayoutRow(cw, 2)
		top = components.CardRow([]string{
			components.ContentCard("Inputs", a.renderSliders(halves[0]), halves[0]),
			components.ContentCard("Breakdown", a.renderBreakdown(halves[1]), halves[1]),
		})
	}
	b.WriteString(top)
	b.WriteString("\n")

	// Border, title, legend and x labels take five lines.
	used := lipgloss.Height(b.String())
	chartH := h - used - 5
	if chartH < 5 {
		chartH = 5
	}
	b.WriteString(components.ContentCard("Monthly payment split", a.renderChart(cw, chartH), cw))

	return b.String()
}

func (a App) outcomeMetrics() []components.Metric {
	h := a.history
	p := a.params

	payoff := components.Metric{Label: "Paid off in", Value: "-", Note: "nothing to pay"}
	switch {
	case h.PaidOff():
		payoff.Value = cli.FormatMonths(h.MonthCount)
		payoff.Note = fmt.Sprintf("of a %s term", cli.FormatMonths(p.TermMonths))
	case h.MonthCount > 0:
		payoff.Value = "Not within term"
		payoff.Note = cli.FormatMonths(h.MonthCount) + " simulated"
	}

	interest := components.Metric{Label: "Total interest", Value: cli.FormatCurrency(h.Totals.Interest)}
	if paid := h.Totals.Principal + h.Totals.Interest; paid > 0 {
		interest.Note = cli.FormatPercent(h.Totals.Interest/paid) + " of principal + interest"
	}

	tax, ins := p.MonthlyEscrow()
	payment := components.Metric{
		Label: "Monthly payment",
		Value: cli.FormatCurrency(p.MonthlyPayment),
		Note:  "incl. " + cli.FormatCurrency(tax+ins) + " escrow",
	}

	left := components.Metric{Label: "Still owed", Value: cli.FormatCurrency(h.Left)}
	if h.Totals.Extra > 0 {
		left.Note = cli.FormatCurrency(h.Totals.Extra) + " in extras"
	}

	return []components.Metric{payoff, interest, payment, left}
}

func (a App) renderSliders(outerWidth int) string {
	inner := components.CardInnerWidth(outerWidth)

	labelW := 0
	for _, k := range input.All {
		labelW = max(labelW, lipgloss.Width(k.String()))
	}
	labelW++

	// Marker, label, two spaces and the widest value.
	trackW := inner - 2 - labelW - 2 - 12
	if trackW < 8 {
		trackW = 8
	}

	lines := make([]string, 0, len(input.All))
	for i, k := range input.All {
		lines = append(lines, components.Slider(
			k.String(),
			knobDisplay(a.knobs, k),
			a.knobs.Fraction(k),
			i == a.selected,
			labelW,
			trackW,
		))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderBreakdown(outerWidth int) string {
	t := theme.Active
	inner := components.CardInnerWidth(outerWidth)
	h := a.history

	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(inner)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	summary := cli.Summary(a.params, h)
	if len(summary) == 0 {
		return dimStyle.Render("Nothing to simulate yet.")
	}

	var b strings.Builder
	b.WriteString(splitBar(h.Totals.Principal, h.Totals.Interest, inner))
	b.WriteString("\n")

	paidDown := 0.0
	if a.params.Principal > 0 {
		paidDown = (a.params.Principal - max(h.Left, 0)) / a.params.Principal
	}
	b.WriteString(components.PayoffBar("Paid down", paidDown, 10, inner-16))
	b.WriteString("\n\n")

	for i, line := range summary {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(textStyle.Render(line))
	}
	return b.String()
}

// splitBar is the principal vs interest share of everything paid.
func splitBar(principal, interest float64, width int) string {
	t := theme.Active
	total := principal + interest
	if total <= 0 || width < 10 {
		return ""
	}

	bg := lipgloss.NewStyle().Background(t.Surface)
	principalStyle := lipgloss.NewStyle().Foreground(t.Principal).Background(t.Surface)
	interestStyle := lipgloss.NewStyle().Foreground(t.Interest).Background(t.Surface)

	left := int(principal / total * float64(width))
	bar := principalStyle.Render(strings.Repeat("█", left)) +
		interestStyle.Render(strings.Repeat("█", width-left))

	legend := principalStyle.Render("● ") +
		bg.Render(cli.FormatPercent(principal/total)+" principal   ") +
		interestStyle.Render("● ") +
		bg.Render(cli.FormatPercent(interest/total)+" interest")

	return bar + "\n" + legend
}

// chartSeries builds the payment/principal/interest lines against years.
func chartSeries(months []model.MonthRecord) []components.Series {
	paymentColor, principalColor, interestColor := theme.Active.SeriesColors()
	payment := components.Series{Name: "Payment", Color: paymentColor}
	principal := components.Series{Name: "Principal", Color: principalColor}
	interest := components.Series{Name: "Interest", Color: interestColor}

	for _, m := range months {
		x := float64(m.PaymentMonth) / 12
		payment.Points = append(payment.Points, components.Point{X: x, Y: m.Paid})
		principal.Points = append(principal.Points, components.Point{X: x, Y: m.PrincipalPaid})
		interest.Points = append(interest.Points, components.Point{X: x, Y: m.InterestPaid})
	}
	return []components.Series{payment, principal, interest}
}

func (a App) renderChart(cw, h int) string {
	inner := components.CardInnerWidth(cw)
	series := chartSeries(a.history.Months)

	xMax := a.params.TermYears()
	if xMax <= 0 {
		xMax = float64(a.history.MonthCount) / 12
	}

	return components.Legend(series) + "\n" + components.LineChart(series, xMax, inner, h)
}
