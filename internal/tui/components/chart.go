package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/payoff/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Point is one sample of a chart series.
type Point struct {
	X, Y float64
}

// Series is a named line plotted by LineChart. Points must be sorted by X.
type Series struct {
	Name   string
	Color  lipgloss.Color
	Points []Point
}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// LineChart plots series over the x domain [0, xMax] and the y domain
// [0, max of all points]. A series that ends early leaves the rest of its
// columns blank. Later series are drawn over earlier ones.
func LineChart(series []Series, xMax float64, width, height int) string {
	t := theme.Active

	if height < 3 {
		height = 3
	}
	if xMax <= 0 {
		xMax = 1
	}

	maxVal := 0.0
	for _, s := range series {
		for _, p := range s.Points {
			if p.Y > maxVal {
				maxVal = p.Y
			}
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	tickStep := chartTickStep(maxVal)
	maxIntervals := height / 2
	if maxIntervals < 2 {
		maxIntervals = 2
	}
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := int(math.Round(ceiling / tickStep))
	if numIntervals < 1 {
		numIntervals = 1
	}
	rowsPerTick := height / numIntervals
	if rowsPerTick < 1 {
		rowsPerTick = 1
	}
	chartH := rowsPerTick * numIntervals

	yLabelW := len(formatChartLabel(ceiling)) + 1
	if yLabelW < 4 {
		yLabelW = 4
	}
	tickLabels := make(map[int]string, numIntervals)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}

	// grid[row][col] holds the index of the series drawn there, or -1.
	grid := make([][]int, chartH+1)
	for r := range grid {
		grid[r] = make([]int, chartW)
		for c := range grid[r] {
			grid[r][c] = -1
		}
	}
	for si, s := range series {
		for c := 0; c < chartW; c++ {
			x := xMax * float64(c) / float64(max(1, chartW-1))
			y, ok := valueAt(s.Points, x)
			if !ok {
				continue
			}
			row := int(math.Round(y / ceiling * float64(chartH)))
			if row < 0 {
				row = 0
			}
			if row > chartH {
				row = chartH
			}
			grid[row][c] = si
		}
	}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)
	styles := make([]lipgloss.Style, len(series))
	for i, s := range series {
		styles[i] = lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface)
	}

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))
		writeGridRow(&b, grid[row], styles, blank)
		b.WriteString("\n")
	}

	// Row 0 doubles as the x axis.
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	for _, si := range grid[0] {
		if si >= 0 {
			b.WriteString(styles[si].Render("•"))
		} else {
			b.WriteString(axisStyle.Render("─"))
		}
	}

	b.WriteString("\n")
	b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
	b.WriteString(axisStyle.Render(xAxisLabels(xMax, chartW)))

	return b.String()
}

func writeGridRow(b *strings.Builder, cells []int, styles []lipgloss.Style, blank lipgloss.Style) {
	for _, si := range cells {
		if si >= 0 {
			b.WriteString(styles[si].Render("•"))
		} else {
			b.WriteString(blank.Render(" "))
		}
	}
}

// valueAt linearly interpolates points at x. It reports false outside the
// series' x range.
func valueAt(points []Point, x float64) (float64, bool) {
	if len(points) == 0 || x < points[0].X || x > points[len(points)-1].X {
		return 0, false
	}
	for i := 1; i < len(points); i++ {
		if x <= points[i].X {
			a, b := points[i-1], points[i]
			if b.X == a.X {
				return b.Y, true
			}
			return a.Y + (b.Y-a.Y)*(x-a.X)/(b.X-a.X), true
		}
	}
	return points[len(points)-1].Y, true
}

// xAxisLabels places whole-year labels under the axis without overlap.
func xAxisLabels(xMax float64, chartW int) string {
	buf := []byte(strings.Repeat(" ", chartW))
	step := chartTickStep(xMax)
	if step < 1 {
		step = 1
	}
	lastEnd := -1
	for v := 0.0; v <= xMax+1e-9; v += step {
		lbl := formatChartLabel(v)
		if v == 0 {
			lbl = "0"
		}
		pos := int(math.Round(v / xMax * float64(chartW-1)))
		if pos+len(lbl) > chartW {
			pos = chartW - len(lbl)
		}
		if pos <= lastEnd || pos < 0 {
			continue
		}
		copy(buf[pos:], lbl)
		lastEnd = pos + len(lbl)
	}
	return strings.TrimRight(string(buf), " ")
}

// Legend renders "● name" entries in each series' color.
func Legend(series []Series) string {
	t := theme.Active
	sep := lipgloss.NewStyle().Background(t.Surface).Render("   ")
	parts := make([]string, 0, len(series))
	for _, s := range series {
		dot := lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface).Render("●")
		name := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(" " + s.Name)
		parts = append(parts, dot+name)
	}
	return strings.Join(parts, sep)
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
