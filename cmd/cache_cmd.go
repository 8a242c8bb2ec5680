package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/store"

	"github.com/spf13/cobra"
)

var flagPruneOlderThan time.Duration

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or prune the local result cache",
	RunE:  runCacheStats,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete cached results older than --older-than",
	RunE:  runCachePrune,
}

func init() {
	cachePruneCmd.Flags().DurationVar(&flagPruneOlderThan, "older-than", 30*24*time.Hour, "Age cutoff (0 clears everything)")
	cacheCmd.AddCommand(cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, _ []string) error {
	c, err := store.Open(appConfig.CachePath())
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	st, err := c.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading cache stats: %w", err)
	}

	fmt.Printf("  Cache: %s\n", appConfig.CachePath())
	fmt.Printf("  Entries: %s\n", cli.FormatNumber(int64(st.Entries)))
	fmt.Printf("  Hits:    %s\n", cli.FormatNumber(st.Hits))
	return nil
}

func runCachePrune(cmd *cobra.Command, _ []string) error {
	c, err := store.Open(appConfig.CachePath())
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	n, err := c.Prune(cmd.Context(), time.Now().Add(-flagPruneOlderThan))
	if err != nil {
		return fmt.Errorf("pruning cache: %w", err)
	}
	fmt.Printf("  Removed %d cached result(s)\n", n)
	return nil
}
