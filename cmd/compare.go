package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/model"
	"github.com/theirongolddev/payoff/internal/pipeline"
	"github.com/theirongolddev/payoff/internal/scenario"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Simulate every scenario in --scenario side by side",
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	if flagScenario == "" {
		return errors.New("compare needs --scenario FILE")
	}
	f, err := scenario.Load(flagScenario)
	if err != nil {
		return err
	}
	reqs := f.RequestsOver(appConfig.Defaults.Params())
	if cmd.Flags().Changed("apply-extras") {
		for i := range reqs {
			reqs[i].ApplyExtras = flagApplyExtras
		}
	}

	ctx := cmd.Context()
	cache := openCache(ctx)
	if cache != nil {
		defer func() { _ = cache.Close() }()
	}

	progressFn := func(current, total int) {
		warnf("\r  Simulating [%d/%d]", current, total)
	}
	results, err := pipeline.RunBatch(ctx, cache, reqs, progressFn)
	warnf("\n")
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(results))
	cacheErrs := 0
	for _, r := range results {
		h := r.History
		rows = append(rows, []string{
			r.Request.Name,
			cli.FormatMonths(h.MonthCount),
			payoffState(h),
			cli.FormatCents(h.Totals.Interest),
			cli.FormatCents(h.Totals.Extra),
			cli.FormatCents(h.YouPaid()),
			cli.FormatCents(h.Left),
		})
		if r.CacheErr != nil {
			cacheErrs++
		}
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("%d scenarios from %s", len(results), flagScenario),
		Headers: []string{"Scenario", "Duration", "State", "Interest", "Extra", "Total paid", "Still owed"},
		Rows:    rows,
	}))
	if cacheErrs > 0 {
		warnf("  %d scenario(s) bypassed the cache after an error\n", cacheErrs)
	}
	return nil
}

func payoffState(h model.PaymentHistory) string {
	switch {
	case h.PaidOff():
		return "paid off"
	case h.MonthCount == 0:
		return "empty"
	default:
		return "open"
	}
}
