// Package theme defines color themes for the payoff TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps the color roles used throughout the TUI to concrete colors.
type Theme struct {
	Name         string
	Background   lipgloss.Color
	Surface      lipgloss.Color // cards and panels
	SurfaceHover lipgloss.Color // active tab, selected row
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // focused card
	TextDim      lipgloss.Color
	TextMuted    lipgloss.Color
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color
	AccentBright lipgloss.Color
	Key          lipgloss.Color // key names in help and hints

	Payment   lipgloss.Color
	Principal lipgloss.Color
	Interest  lipgloss.Color
	Balance   lipgloss.Color
	Extra     lipgloss.Color

	// Payoff ramp, worst to best.
	Owing   lipgloss.Color
	Started lipgloss.Color
	Halfway lipgloss.Color
	Mostly  lipgloss.Color
	PaidOff lipgloss.Color
}

// SeriesColors returns the chart line colors for payment, principal and
// interest.
func (t Theme) SeriesColors() (payment, principal, interest lipgloss.Color) {
	return t.Payment, t.Principal, t.Interest
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default warm dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   "#100F0F",
	Surface:      "#1C1B1A",
	SurfaceHover: "#282726",
	Border:       "#403E3C",
	BorderAccent: "#3AA99F",
	TextDim:      "#575653",
	TextMuted:    "#878580",
	TextPrimary:  "#FFFCF0",
	Accent:       "#3AA99F",
	AccentBright: "#5BC8BE",
	Key:          "#24837B",

	Payment:   "#4385BE",
	Principal: "#879A39",
	Interest:  "#D14D41",
	Balance:   "#3AA99F",
	Extra:     "#CE5D97",

	Owing:   "#D14D41",
	Started: "#DA702C",
	Halfway: "#D0A215",
	Mostly:  "#879A39",
	PaidOff: "#A3B859",
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   "#1E1E2E",
	Surface:      "#313244",
	SurfaceHover: "#45475A",
	Border:       "#585B70",
	BorderAccent: "#89B4FA",
	TextDim:      "#6C7086",
	TextMuted:    "#A6ADC8",
	TextPrimary:  "#CDD6F4",
	Accent:       "#89B4FA",
	AccentBright: "#B4BEFE",
	Key:          "#94E2D5",

	Payment:   "#89B4FA",
	Principal: "#A6E3A1",
	Interest:  "#F38BA8",
	Balance:   "#74C7EC",
	Extra:     "#CBA6F7",

	Owing:   "#F38BA8",
	Started: "#FAB387",
	Halfway: "#F9E2AF",
	Mostly:  "#A6E3A1",
	PaidOff: "#94E2D5",
}

// GruvboxDark is a retro high-contrast theme.
var GruvboxDark = Theme{
	Name:         "gruvbox-dark",
	Background:   "#1D2021",
	Surface:      "#282828",
	SurfaceHover: "#3C3836",
	Border:       "#504945",
	BorderAccent: "#D79921",
	TextDim:      "#665C54",
	TextMuted:    "#A89984",
	TextPrimary:  "#EBDBB2",
	Accent:       "#D79921",
	AccentBright: "#FABD2F",
	Key:          "#8EC07C",

	Payment:   "#83A598",
	Principal: "#B8BB26",
	Interest:  "#FB4934",
	Balance:   "#8EC07C",
	Extra:     "#D3869B",

	Owing:   "#FB4934",
	Started: "#FE8019",
	Halfway: "#FABD2F",
	Mostly:  "#98971A",
	PaidOff: "#B8BB26",
}

// Terminal sticks to the 16 ANSI colors.
var Terminal = Theme{
	Name:         "terminal",
	Background:   "0",
	Surface:      "0",
	SurfaceHover: "8",
	Border:       "8",
	BorderAccent: "6",
	TextDim:      "8",
	TextMuted:    "7",
	TextPrimary:  "15",
	Accent:       "6",
	AccentBright: "14",
	Key:          "6",

	Payment:   "4",
	Principal: "2",
	Interest:  "1",
	Balance:   "6",
	Extra:     "5",

	Owing:   "1",
	Started: "3",
	Halfway: "11",
	Mostly:  "2",
	PaidOff: "10",
}

// All available themes, in cycling order.
var All = []Theme{FlexokiDark, CatppuccinMocha, GruvboxDark, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Next returns the theme after name in All, wrapping around.
func Next(name string) Theme {
	for i, t := range All {
		if t.Name == name {
			return All[(i+1)%len(All)]
		}
	}
	return All[0]
}
