package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/ledger"

	"github.com/spf13/cobra"
)

var flagScheduleYearly bool

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Month-by-month amortization schedule",
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().BoolVar(&flagScheduleYearly, "yearly", false, "Aggregate by year")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	res, err := simulate(cmd)
	if err != nil {
		return err
	}
	h := res.History

	if h.MonthCount == 0 {
		fmt.Println("\n  No payments to schedule.")
		return nil
	}

	fmt.Println()
	if flagScheduleYearly {
		rows := make([][]string, 0, len(h.Years())+2)
		for _, y := range h.Years() {
			rows = append(rows, []string{
				strconv.Itoa(y.Year),
				strconv.Itoa(y.Months),
				cli.FormatCents(y.Paid),
				cli.FormatCents(y.Interest),
				cli.FormatCents(y.Principal),
				cli.FormatCents(y.Extra),
				cli.FormatCents(y.Remaining),
			})
		}
		rows = append(rows, cli.Separator, totalsRow(h.YouPaid(), h.Totals.Interest, h.Totals.Principal, h.Totals.Extra, h.Left))
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Yearly schedule",
			Headers: []string{"Year", "Months", "Paid", "Interest", "Principal", "Extra", "Remaining"},
			Rows:    rows,
		}))
		return nil
	}

	now := time.Now()
	rows := make([][]string, 0, len(h.Months)+2)
	for _, m := range h.Months {
		year, month := ledger.StartDate(now, m.PaymentMonth-1)
		rows = append(rows, []string{
			strconv.Itoa(m.PaymentMonth),
			fmt.Sprintf("%d-%02d", year, int(month)),
			cli.FormatCents(m.Paid),
			cli.FormatCents(m.InterestPaid),
			cli.FormatCents(m.PrincipalPaid),
			cli.FormatCents(m.ExtraPaid),
			cli.FormatCents(m.Remaining),
		})
	}
	rows = append(rows, cli.Separator, totalsRow(h.YouPaid(), h.Totals.Interest, h.Totals.Principal, h.Totals.Extra, h.Left))
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Monthly schedule",
		Headers: []string{"Month", "Date", "Paid", "Interest", "Principal", "Extra", "Remaining"},
		Rows:    rows,
	}))
	return nil
}

func totalsRow(paid, interest, principal, extra, left float64) []string {
	return []string{
		"Total", "",
		cli.FormatCents(paid),
		cli.FormatCents(interest),
		cli.FormatCents(principal),
		cli.FormatCents(extra),
		cli.FormatCents(left),
	}
}
