package cmd

import (
	"fmt"

	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/model"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Payoff summary for the current inputs",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	res, err := simulate(cmd)
	if err != nil {
		return err
	}
	p := res.Request.Params
	h := res.History

	fmt.Println()
	fmt.Println(cli.RenderTitle("MORTGAGE PAYOFF"))
	fmt.Println()

	fmt.Print(cli.RenderTable(inputsTable(p)))
	fmt.Println()

	if h.MonthCount == 0 {
		fmt.Println("  Nothing to simulate: the balance or the term is zero.")
		return nil
	}

	fmt.Print(cli.RenderTable(outcomeTable(h)))
	fmt.Println()
	fmt.Print(cli.RenderLines(cli.Summary(p, h)))

	fmt.Println()
	fmt.Printf("  %s\n", cli.RenderSplitBar(h.Totals.Principal, h.Totals.Interest, 30))
	if p.Principal > 0 {
		fmt.Printf("  Paid down %s\n", cli.RenderProgressBar(p.Principal-max(h.Left, 0), p.Principal, 30))
	}

	if n := len(res.Request.Extras); n > 0 {
		fmt.Println()
		state := "not applied (use --apply-extras)"
		if res.Request.ApplyExtras {
			state = "applied"
		}
		fmt.Printf("  %d extra payment(s), %s\n", n, state)
		for _, e := range ledger.Sorted(res.Request.Extras) {
			fmt.Printf("    %s starting at month %d, %s\n",
				cli.FormatCurrency(e.Amount), e.StartOffset+1, e.Repeat)
		}
	}

	if res.Cached {
		warnf("\n  (served from cache)\n")
	}
	return nil
}

func inputsTable(p model.LoanParameters) cli.Table {
	tax, ins := p.MonthlyEscrow()
	return cli.Table{
		Headers: []string{"Input", "Value"},
		Rows: [][]string{
			{"Remaining principal", cli.FormatCurrency(p.Principal)},
			{"Interest rate", cli.FormatRate(p.AnnualInterestRatePercent)},
			{"Monthly payment", cli.FormatCurrency(p.MonthlyPayment)},
			cli.Separator,
			{"Yearly tax", cli.FormatCurrency(p.YearlyTax)},
			{"Yearly insurance", cli.FormatCurrency(p.YearlyInsurance)},
			{"Escrow / month", cli.FormatCents(tax + ins)},
			cli.Separator,
			{"Term", cli.FormatMonths(p.TermMonths)},
		},
	}
}

func outcomeTable(h model.PaymentHistory) cli.Table {
	payoff := cli.FormatMonths(h.MonthCount)
	if !h.PaidOff() {
		payoff += " (not paid off)"
	}
	rows := [][]string{
		{"Payments", cli.FormatNumber(int64(h.MonthCount))},
		{"Duration", payoff},
		cli.Separator,
		{"Total paid", cli.FormatCents(h.YouPaid())},
		{"Principal", cli.FormatCents(h.Totals.Principal)},
		{"Interest", cli.FormatCents(h.Totals.Interest)},
		{"Tax", cli.FormatCents(h.Totals.Tax)},
		{"Insurance", cli.FormatCents(h.Totals.Insurance)},
	}
	if h.Totals.Extra > 0 {
		rows = append(rows, []string{"Extra payments", cli.FormatCents(h.Totals.Extra)})
	}
	rows = append(rows, cli.Separator, []string{"Still owed", cli.FormatCents(h.Left)})

	return cli.Table{Headers: []string{"Outcome", "Value"}, Rows: rows}
}
