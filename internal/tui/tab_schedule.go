package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/model"
	"github.com/theirongolddev/payoff/internal/tui/components"
	"github.com/theirongolddev/payoff/internal/tui/theme"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Lines above and below the table inside the schedule tab.
const scheduleChrome = 6

func monthColumns() []table.Column {
	return []table.Column{
		{Title: "Month", Width: 6},
		{Title: "Date", Width: 9},
		{Title: "Paid", Width: 12},
		{Title: "Interest", Width: 12},
		{Title: "Principal", Width: 12},
		{Title: "Extra", Width: 10},
		{Title: "Remaining", Width: 14},
	}
}

func yearColumns() []table.Column {
	return []table.Column{
		{Title: "Year", Width: 6},
		{Title: "Months", Width: 7},
		{Title: "Paid", Width: 13},
		{Title: "Interest", Width: 13},
		{Title: "Principal", Width: 13},
		{Title: "Extra", Width: 11},
		{Title: "Remaining", Width: 14},
	}
}

func newScheduleTable() table.Model {
	tbl := table.New(
		table.WithColumns(monthColumns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	return tbl
}

func (a *App) applyTableStyles() {
	t := theme.Active
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Foreground(t.TextMuted).
		Bold(true)
	s.Cell = s.Cell.Foreground(t.TextPrimary)
	s.Selected = s.Selected.
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true)
	a.schedule.SetStyles(s)
}

func (a *App) resizeSchedule() {
	h := a.height - 2 - scheduleChrome
	if h < 3 {
		h = 3
	}
	a.schedule.SetHeight(h)
}

// refreshSchedule rebuilds the table rows from the current history.
func (a *App) refreshSchedule() {
	a.applyTableStyles()
	// Columns first: rows wider than the old columns would be cut.
	if a.yearly {
		a.schedule.SetRows(nil)
		a.schedule.SetColumns(yearColumns())
		a.schedule.SetRows(yearRows(a.history.Years()))
	} else {
		a.schedule.SetRows(nil)
		a.schedule.SetColumns(monthColumns())
		a.schedule.SetRows(monthRows(a.history.Months, a.now))
	}
	if a.schedule.Cursor() >= len(a.schedule.Rows()) {
		a.schedule.GotoTop()
	}
}

func monthRows(months []model.MonthRecord, now time.Time) []table.Row {
	rows := make([]table.Row, 0, len(months))
	for _, m := range months {
		year, month := ledger.StartDate(now, m.PaymentMonth-1)
		rows = append(rows, table.Row{
			strconv.Itoa(m.PaymentMonth),
			fmt.Sprintf("%s %d", month.String()[:3], year),
			cli.FormatCents(m.Paid),
			cli.FormatCents(m.InterestPaid),
			cli.FormatCents(m.PrincipalPaid),
			cli.FormatCents(m.ExtraPaid),
			cli.FormatCents(m.Remaining),
		})
	}
	return rows
}

func yearRows(years []model.YearStats) []table.Row {
	rows := make([]table.Row, 0, len(years))
	for _, y := range years {
		rows = append(rows, table.Row{
			strconv.Itoa(y.Year),
			strconv.Itoa(y.Months),
			cli.FormatCents(y.Paid),
			cli.FormatCents(y.Interest),
			cli.FormatCents(y.Principal),
			cli.FormatCents(y.Extra),
			cli.FormatCents(y.Remaining),
		})
	}
	return rows
}

func (a App) updateSchedule(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		a.yearly = !a.yearly
		a.refreshSchedule()
		a.schedule.GotoTop()
		return a, nil
	case "left":
		a.activeTab = (a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)
		return a, nil
	case "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	var cmd tea.Cmd
	a.schedule, cmd = a.schedule.Update(msg)
	return a, cmd
}

func (a App) renderScheduleTab(cw int) string {
	t := theme.Active
	h := a.history

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	if h.MonthCount == 0 {
		return components.ContentCard("Schedule", mutedStyle.Render("No payments to schedule."), cw)
	}

	view := "monthly"
	if a.yearly {
		view = "yearly"
	}

	balances := make([]float64, 0, len(h.Months))
	for _, m := range h.Months {
		balances = append(balances, m.Remaining)
	}
	sparkW := components.CardInnerWidth(cw) - 20
	if sparkW > 0 && len(balances) > sparkW {
		balances = downsample(balances, sparkW)
	}

	var b strings.Builder
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d payments, %s view  ", h.MonthCount, view)))
	b.WriteString(valueStyle.Render(cli.FormatCurrency(h.YouPaid())))
	b.WriteString(mutedStyle.Render(" paid in total"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Balance  "))
	b.WriteString(components.Sparkline(balances, t.Balance))
	b.WriteString("\n\n")
	b.WriteString(a.schedule.View())

	return components.ContentCard("Schedule  [y] toggle yearly", b.String(), cw)
}

// downsample keeps n evenly spaced samples of values.
func downsample(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = values[i*(len(values)-1)/max(1, n-1)]
	}
	return out
}
