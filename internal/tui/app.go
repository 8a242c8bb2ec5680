// Package tui provides the interactive Bubble Tea calculator for payoff.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/payoff/internal/config"
	"github.com/theirongolddev/payoff/internal/input"
	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/model"
	"github.com/theirongolddev/payoff/internal/pipeline"
	"github.com/theirongolddev/payoff/internal/tui/components"
	"github.com/theirongolddev/payoff/internal/tui/theme"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabOutcome = iota
	tabSchedule
	tabExtras
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5
)

// configSavedMsg reports the result of a background config write.
type configSavedMsg struct {
	err error
}

// App is the root Bubble Tea model.
type App struct {
	cfg config.Config

	// Inputs
	knobs       input.Knobs
	ledger      ledger.Ledger
	applyExtras bool
	now         time.Time

	// Derived on every change
	params  model.LoanParameters
	history model.PaymentHistory

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	notice    string

	// Per-tab state
	selected     int // index into input.All
	schedule     table.Model
	yearly       bool
	extrasCursor int

	// Extra payment form (huh)
	form     *huh.Form
	formVals *paymentValues

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
}

// NewApp builds the calculator with the given starting inputs.
func NewApp(cfg config.Config, knobs input.Knobs, l ledger.Ledger, applyExtras bool) App {
	a := App{
		cfg:         cfg,
		knobs:       knobs,
		ledger:      l,
		applyExtras: applyExtras,
		now:         time.Now(),
		schedule:    newScheduleTable(),
	}
	a.recompute()
	return a
}

// WithSetup starts the app on the first-run setup form.
func (a App) WithSetup() App {
	a.setupVals = NewSetupValues(a.cfg)
	a.setupForm = NewSetupForm(a.setupVals)
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.setupForm != nil {
		return a.setupForm.Init()
	}
	return nil
}

// recompute re-runs the engine for the current knobs and ledger.
func (a *App) recompute() {
	req := pipeline.Request{
		Params:      a.knobs.Params(),
		Extras:      a.ledger.Payments(),
		ApplyExtras: a.applyExtras,
	}
	a.params = req.Params
	a.history = pipeline.Simulate(req)
	a.refreshSchedule()

	if n := a.ledger.Len(); a.extrasCursor >= n {
		a.extrasCursor = max(0, n-1)
	}
}

// Knobs returns the current slider state.
func (a App) Knobs() input.Knobs { return a.knobs }

// Ledger returns the current extra payments.
func (a App) Ledger() ledger.Ledger { return a.ledger }

// History returns the most recent simulation.
func (a App) History() model.PaymentHistory { return a.history }

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeSchedule()
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		return a, nil

	case configSavedMsg:
		if msg.err != nil {
			a.notice = "config not saved: " + msg.err.Error()
		} else {
			a.notice = ""
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.form != nil || a.setupForm != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if a.setupForm != nil {
			if key == "esc" {
				a.setupForm = nil
				a.setupVals = nil
				return a, nil
			}
			return a.updateSetupForm(msg)
		}

		if a.form != nil {
			if key == "esc" {
				a.form = nil
				a.formVals = nil
				return a, nil
			}
			return a.updateForm(msg)
		}

		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "?":
			a.showHelp = true
			return a, nil
		case "q":
			return a, tea.Quit
		case "x":
			a.applyExtras = !a.applyExtras
			a.recompute()
			return a, nil
		case "t":
			return a.cycleTheme()
		case "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		case "shift+tab":
			a.activeTab = (a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)
			return a, nil
		}

		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}

		switch a.activeTab {
		case tabOutcome:
			return a.updateOutcome(key)
		case tabSchedule:
			return a.updateSchedule(msg)
		case tabExtras:
			return a.updateExtras(key)
		}
		return a, nil
	}

	// Forward everything else (cursor blinks, etc.) to an open form.
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		switch a.activeTab {
		case tabOutcome:
			a.selectKnob(-1)
		case tabSchedule:
			a.schedule.MoveUp(1)
		case tabExtras:
			a.moveExtrasCursor(-1)
		}
		return a, nil

	case tea.MouseButtonWheelDown:
		switch a.activeTab {
		case tabOutcome:
			a.selectKnob(1)
		case tabSchedule:
			a.schedule.MoveDown(1)
		case tabExtras:
			a.moveExtrasCursor(1)
		}
		return a, nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		// Tab bar is the first line.
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
				a.activeTab = tab
			}
		}
		return a, nil
	}
	return a, nil
}

// cycleTheme switches to the next theme and persists it in the background.
func (a App) cycleTheme() (tea.Model, tea.Cmd) {
	next := theme.Next(theme.Active.Name)
	theme.Active = next
	a.cfg.Appearance.Theme = next.Name
	a.applyTableStyles()
	return a, saveConfigCmd(a.cfg)
}

func saveConfigCmd(cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		return configSavedMsg{err: config.Save(cfg)}
	}
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if err := a.setupVals.Apply(&a.cfg); err != nil {
			a.notice = "setup: " + err.Error()
			a.setupForm = nil
			return a, nil
		}
		theme.SetActive(a.cfg.Appearance.Theme)
		a.applyTableStyles()
		a.knobs = input.FromParams(a.cfg.Defaults.Params())
		a.applyExtras = a.cfg.Defaults.ApplyExtras
		a.recompute()
		a.setupForm = nil
		a.setupVals = nil
		return a, saveConfigCmd(a.cfg)
	case huh.StateAborted:
		a.setupForm = nil
		a.setupVals = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  payoff needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Key).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o s e", "Jump to tab"},
			{"tab", "Next tab"},
			{"← →", "Previous / Next tab (Schedule, Extras)"},
		}},
		{"Outcome", []struct{ key, desc string }{
			{"j k", "Select input"},
			{"h l", "Decrease / Increase"},
			{"H L", "Decrease / Increase by 10 steps"},
		}},
		{"Schedule", []struct{ key, desc string }{
			{"j k", "Scroll rows"},
			{"y", "Toggle yearly totals"},
		}},
		{"Extras", []struct{ key, desc string }{
			{"a", "Add extra payment"},
			{"Enter", "Edit selected payment"},
			{"d", "Remove selected payment"},
		}},
		{"General", []struct{ key, desc string }{
			{"x", "Apply extras to the schedule"},
			{"t", "Cycle theme"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	extras := "extras off"
	if a.applyExtras {
		extras = "extras on"
	}
	right := extras + " · " + t.Name
	if a.notice != "" {
		right = a.notice
	}
	statusBar := components.RenderStatusBar(w, "[?]help  [x]extras  [t]heme  [q]uit", right)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabOutcome:
		content = a.renderOutcomeTab(cw, contentH)
	case tabSchedule:
		content = a.renderScheduleTab(cw)
	case tabExtras:
		content = a.renderExtrasTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// tabAtX maps a click column on the tab bar to a tab index, or -1.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
