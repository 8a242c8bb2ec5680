// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/payoff/internal/model"
)

// FormatCurrency renders a dollar amount rounded to cents with thousands
// separators. Whole-dollar values drop the cents, so 1234.5 -> "$1,234.5"
// and 250000 -> "$250,000".
func FormatCurrency(x float64) string {
	d := decimal.NewFromFloat(x).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	whole := d.Truncate(0)
	frac := d.Sub(whole).Shift(2).IntPart()

	s := sign + "$" + FormatNumber(whole.IntPart())
	if frac == 0 {
		return s
	}
	cents := fmt.Sprintf("%02d", frac)
	return s + "." + strings.TrimRight(cents, "0")
}

// FormatCents always shows two decimals, for tables and exports.
func FormatCents(x float64) string {
	d := decimal.NewFromFloat(x).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole := d.Truncate(0)
	frac := d.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, FormatNumber(whole.IntPart()), frac)
}

// FormatCompact renders large amounts with K/M suffixes for chart axes.
// e.g., 1234 -> "$1.2K", 250000 -> "$250K"
func FormatCompact(x float64) string {
	abs := x
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("$%.1fM", x/1_000_000)
	case abs >= 10_000:
		return fmt.Sprintf("$%.0fK", x/1_000)
	case abs >= 1_000:
		return fmt.Sprintf("$%.1fK", x/1_000)
	default:
		return fmt.Sprintf("$%.0f", x)
	}
}

// FormatMonths renders a month count as years and months.
// e.g., 170 -> "14 years and 2 months", 12 -> "1 year", 1 -> "1 month"
func FormatMonths(n int) string {
	if n <= 0 {
		return ""
	}
	years, months := n/12, n%12

	var parts []string
	switch {
	case years == 1:
		parts = append(parts, "1 year")
	case years > 1:
		parts = append(parts, fmt.Sprintf("%d years", years))
	}
	switch {
	case months == 1:
		parts = append(parts, "1 month")
	case months > 1:
		parts = append(parts, fmt.Sprintf("%d months", months))
	}
	return strings.Join(parts, " and ")
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatRate formats an annual rate given in percent, trimming zeros.
// e.g., 6 -> "6%", 6.025 -> "6.025%"
func FormatRate(pct float64) string {
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}

// Summary is the one-paragraph outcome of a simulation. It is empty when
// nothing was simulated.
func Summary(p model.LoanParameters, h model.PaymentHistory) []string {
	if h.MonthCount == 0 || p.Principal <= 0 {
		return nil
	}
	lines := []string{fmt.Sprintf("After %s, you paid %s in principal, %s in interest, %s taxes & %s insurance",
		FormatMonths(h.MonthCount),
		FormatCurrency(h.Totals.Principal),
		FormatCurrency(h.Totals.Interest),
		FormatCurrency(h.Totals.Tax),
		FormatCurrency(h.Totals.Insurance),
	)}
	if h.Totals.Extra > 0 {
		lines = append(lines, fmt.Sprintf("Extra payments contributed %s", FormatCurrency(h.Totals.Extra)))
	}
	if h.Left > 0 {
		lines = append(lines, fmt.Sprintf("You still have %s to pay", FormatCurrency(h.Left)))
	}
	return lines
}
