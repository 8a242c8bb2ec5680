// Package cmd implements the payoff CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appConfig

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	d := cfg.Defaults
	fmt.Println("  [Defaults]")
	fmt.Printf("    Principal:         %s\n", cli.FormatCurrency(d.Principal))
	fmt.Printf("    Interest rate:     %s\n", cli.FormatRate(d.InterestRate))
	fmt.Printf("    Monthly payment:   %s\n", cli.FormatCurrency(d.MonthlyPayment))
	fmt.Printf("    Yearly tax:        %s\n", cli.FormatCurrency(d.YearlyTax))
	fmt.Printf("    Yearly insurance:  %s\n", cli.FormatCurrency(d.YearlyInsurance))
	fmt.Printf("    Years left:        %d\n", d.YearsLeft)
	fmt.Printf("    Apply extras:      %v\n", d.ApplyExtras)
	fmt.Printf("    Strict validation: %v\n", d.StrictValidation)
	fmt.Println()

	fmt.Println("  [Cache]")
	fmt.Printf("    Enabled: %v\n", cfg.Cache.Enabled)
	fmt.Printf("    SQLite:  %s\n", cfg.CachePath())
	if addr := cfg.RedisAddr(); addr != "" {
		fmt.Printf("    Redis:   %s (ttl %s)\n", addr, cfg.CacheTTL())
	} else {
		fmt.Println("    Redis:   not configured")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:       %s\n", cfg.Server.Addr)
	fmt.Printf("    Events buffer: %d\n", cfg.Server.EventsBuffer)
	fmt.Println()

	fmt.Println("  Run `payoff setup` to reconfigure.")
	return nil
}
