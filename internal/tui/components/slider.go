package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/payoff/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Slider renders one labeled horizontal slider:
//
//	▸ Label         ━━━━━━●─────────  value
//
// frac is the thumb position in [0,1].
func Slider(label, value string, frac float64, selected bool, labelW, trackW int) string {
	t := theme.Active

	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	if trackW < 3 {
		trackW = 3
	}

	thumb := int(frac*float64(trackW-1) + 0.5)

	markerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	fillStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	trackStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	thumbStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	marker := "  "
	if selected {
		marker = "▸ "
		labelStyle = labelStyle.Foreground(t.AccentBright).Bold(true)
		thumbStyle = thumbStyle.Foreground(t.AccentBright)
		valueStyle = valueStyle.Bold(true)
	}

	return markerStyle.Render(marker) +
		labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		fillStyle.Render(strings.Repeat("━", thumb)) +
		thumbStyle.Render("●") +
		trackStyle.Render(strings.Repeat("─", trackW-thumb-1)) +
		valueStyle.Render("  "+value)
}
