package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorRed       = lipgloss.Color("#D14D41")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	principalStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	interestStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Separator is a row that renders as a horizontal rule across the table.
var Separator = []string{"---"}

// Table is a titled, bordered table for CLI output. The first column is
// left-aligned, the rest hold amounts and are right-aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderLines renders summary lines, muted except for the first.
func RenderLines(lines []string) string {
	var b strings.Builder
	for i, l := range lines {
		style := mutedStyle
		if i == 0 {
			style = valueStyle
		}
		b.WriteString("  " + style.Render(l) + "\n")
	}
	return b.String()
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == Separator[0]
}

// columnWidths sizes each column to its widest cell, ignoring separators.
func columnWidths(t Table) []int {
	n := len(t.Headers)
	for _, row := range t.Rows {
		if !isSeparator(row) {
			n = max(n, len(row))
		}
	}
	widths := make([]int, n)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		if isSeparator(row) {
			continue
		}
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	return widths
}

// RenderTable renders t with rounded borders. Separator rows become rules.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	widths := columnWidths(t)
	rows := make([][]string, 0, len(t.Rows))
	rules := make(map[int]bool)
	for _, row := range t.Rows {
		if isSeparator(row) {
			rule := make([]string, len(widths))
			for i, w := range widths {
				rule[i] = strings.Repeat("─", w)
			}
			rules[len(rows)] = true
			rows = append(rows, rule)
			continue
		}
		full := make([]string, len(widths))
		copy(full, row)
		rows = append(rows, full)
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(t.Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case rules[row]:
				style = dimStyle
			default:
				style = valueStyle
			}
			style = style.Padding(0, 1)
			if col > 0 && row != table.HeaderRow {
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}
	b.WriteString(tbl.String())
	b.WriteString("\n")
	return b.String()
}

// RenderProgressBar renders how much of total has been covered so far.
func RenderProgressBar(current, total float64, width int) string {
	if total <= 0 {
		return ""
	}

	pct := current / total
	if pct > 1 {
		pct = 1
	}
	if pct < 0 {
		pct = 0
	}

	filled := int(pct * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %s", principalStyle.Render(bar), FormatPercent(pct))
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// RenderSparkline draws values as block characters scaled to the largest
// value. Negative values sit on the baseline.
func RenderSparkline(values []float64) string {
	top := 0.0
	for _, v := range values {
		top = max(top, v)
	}
	if top == 0 {
		top = 1
	}

	last := len(sparkBlocks) - 1
	out := make([]rune, len(values))
	for i, v := range values {
		idx := min(max(int(v/top*float64(last)), 0), last)
		out[i] = sparkBlocks[idx]
	}
	return string(out)
}

// RenderSplitBar renders a two-part bar, the terminal stand-in for a pie:
// principal on the left in green, interest on the right in red.
func RenderSplitBar(principal, interest float64, width int) string {
	total := principal + interest
	if total <= 0 || width <= 0 {
		return ""
	}
	left := int(principal / total * float64(width))
	if left > width {
		left = width
	}
	bar := principalStyle.Render(strings.Repeat("█", left)) +
		interestStyle.Render(strings.Repeat("█", width-left))
	return fmt.Sprintf("%s  %s principal / %s interest",
		bar,
		FormatPercent(principal/total),
		FormatPercent(interest/total),
	)
}
