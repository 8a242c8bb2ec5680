package cmd

import (
	"fmt"

	"github.com/theirongolddev/payoff/internal/cli"

	"github.com/spf13/cobra"
)

var flagChartWidth int

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Sparklines of payment, principal, interest and balance over time",
	RunE:  runChart,
}

func init() {
	chartCmd.Flags().IntVar(&flagChartWidth, "width", 60, "Chart width in columns")
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, _ []string) error {
	res, err := simulate(cmd)
	if err != nil {
		return err
	}
	h := res.History
	if h.MonthCount == 0 {
		fmt.Println("\n  Nothing to chart.")
		return nil
	}

	var payment, principal, interest, balance []float64
	for _, m := range h.Months {
		payment = append(payment, m.Paid)
		principal = append(principal, m.PrincipalPaid)
		interest = append(interest, m.InterestPaid)
		balance = append(balance, m.Remaining)
	}

	width := flagChartWidth
	if width < 10 {
		width = 10
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PAYOFF OVER %s", cli.FormatMonths(h.MonthCount))))
	fmt.Println()
	series := []struct {
		name   string
		values []float64
	}{
		{"Payment", payment},
		{"Principal", principal},
		{"Interest", interest},
		{"Balance", balance},
	}
	for _, s := range series {
		fmt.Printf("  %-10s %s  peak %s\n", s.name, cli.RenderSparkline(bucketMax(s.values, width)), cli.FormatCompact(peak(s.values)))
	}
	fmt.Println()
	fmt.Printf("  %s\n", cli.RenderSplitBar(h.Totals.Principal, h.Totals.Interest, width))
	return nil
}

// bucketMax shrinks values to at most n points, keeping each bucket's max.
func bucketMax(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	out := make([]float64, n)
	for i := range out {
		lo := i * len(values) / n
		hi := (i + 1) * len(values) / n
		m := values[lo]
		for _, v := range values[lo:hi] {
			m = max(m, v)
		}
		out[i] = m
	}
	return out
}

func peak(values []float64) float64 {
	p := 0.0
	for _, v := range values {
		p = max(p, v)
	}
	return p
}
