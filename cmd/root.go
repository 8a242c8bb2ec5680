package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/theirongolddev/payoff/internal/config"
	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/pipeline"
	"github.com/theirongolddev/payoff/internal/scenario"
	"github.com/theirongolddev/payoff/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagPrincipal   float64
	flagRate        float64
	flagPayment     float64
	flagTax         float64
	flagInsurance   float64
	flagYears       int
	flagMonths      int
	flagExtras      []string
	flagApplyExtras bool
	flagStrict      bool
	flagScenario    string
	flagNoCache     bool
	flagQuiet       bool
)

// appConfig is loaded once before any command runs.
var appConfig = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "payoff",
	Short: "Mortgage payoff calculator",
	Long:  "Simulate a mortgage month by month: see when it is paid off and where the money goes.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			warnf("  Config unreadable, using defaults: %v\n", err)
		}
		appConfig = cfg
		return nil
	},
	RunE:         runSummary,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&flagPrincipal, "principal", 0, "Remaining principal (default from config)")
	pf.Float64Var(&flagRate, "rate", 0, "Annual interest rate in percent")
	pf.Float64Var(&flagPayment, "payment", 0, "Monthly payment including escrow")
	pf.Float64Var(&flagTax, "tax", 0, "Yearly property tax")
	pf.Float64Var(&flagInsurance, "insurance", 0, "Yearly insurance")
	pf.IntVar(&flagYears, "years", 0, "Years left on the loan")
	pf.IntVar(&flagMonths, "months", 0, "Months left on the loan (overrides --years)")
	pf.StringArrayVar(&flagExtras, "extra", nil, "Extra payment as amount@offset[/repeat], e.g. 5000@12/yearly (repeatable)")
	pf.BoolVar(&flagApplyExtras, "apply-extras", false, "Apply extra payments to the schedule")
	pf.BoolVar(&flagStrict, "strict", false, "Reject negative or non-finite inputs")
	pf.StringVar(&flagScenario, "scenario", "", "Scenario file (YAML/JSON) or directory of them")
	pf.BoolVar(&flagNoCache, "no-cache", false, "Skip the result cache")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress notices on stderr")
}

func warnf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

// buildRequest layers the inputs: config defaults, then the scenario file,
// then any flag set on the command line. Loan fields a scenario leaves out
// keep their config values.
func buildRequest(cmd *cobra.Command) (pipeline.Request, error) {
	req := pipeline.Request{
		Params:      appConfig.Defaults.Params(),
		ApplyExtras: appConfig.Defaults.ApplyExtras,
		Strict:      appConfig.Defaults.StrictValidation,
	}

	if flagScenario != "" {
		f, err := scenario.Load(flagScenario)
		if err != nil {
			return req, err
		}
		req = f.All()[0].RequestOver(req.Params)
	}

	flags := cmd.Flags()
	if flags.Changed("principal") {
		req.Params.Principal = flagPrincipal
	}
	if flags.Changed("rate") {
		req.Params.AnnualInterestRatePercent = flagRate
	}
	if flags.Changed("payment") {
		req.Params.MonthlyPayment = flagPayment
	}
	if flags.Changed("tax") {
		req.Params.YearlyTax = flagTax
	}
	if flags.Changed("insurance") {
		req.Params.YearlyInsurance = flagInsurance
	}
	if flags.Changed("years") {
		req.Params.TermMonths = flagYears * 12
	}
	if flags.Changed("months") {
		req.Params.TermMonths = flagMonths
	}
	if flags.Changed("apply-extras") {
		req.ApplyExtras = flagApplyExtras
	}
	if flags.Changed("strict") {
		req.Strict = flagStrict
	}

	if len(flagExtras) > 0 {
		payments, err := parseExtras(flagExtras)
		if err != nil {
			return req, err
		}
		l := ledger.New(req.Extras)
		for _, p := range payments {
			l = l.Dispatch(ledger.Add(p))
		}
		req.Extras = l.Payments()
	}

	return req, nil
}

// openCache returns the configured result cache, or nil when caching is off
// or unavailable. Redis is preferred when an address is configured.
func openCache(ctx context.Context) store.ResultCache {
	if flagNoCache || !appConfig.Cache.Enabled {
		return nil
	}

	if addr := appConfig.RedisAddr(); addr != "" {
		rc, err := store.NewRedisCache(ctx, addr, appConfig.CacheTTL())
		if err == nil {
			return rc
		}
		warnf("  Redis unavailable (%v), using local cache\n", err)
	}

	c, err := store.Open(appConfig.CachePath())
	if err != nil {
		warnf("  Cache unavailable, simulating directly\n")
		return nil
	}
	return c
}

// simulate is the shared path used by the output commands.
func simulate(cmd *cobra.Command) (*pipeline.Result, error) {
	req, err := buildRequest(cmd)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	cache := openCache(ctx)
	if cache != nil {
		defer func() { _ = cache.Close() }()
	}

	res, err := pipeline.Run(ctx, cache, req)
	if err != nil {
		return nil, err
	}
	if res.CacheErr != nil {
		warnf("  %v\n", res.CacheErr)
	}
	return res, nil
}
