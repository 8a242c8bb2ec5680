package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theirongolddev/payoff/internal/server"
	"github.com/theirongolddev/payoff/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagServeAddr         string
	flagServeRedis        string
	flagServeEventsBuffer int
	flagServeVerbose      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve simulations over HTTP, SSE and WebSocket",
	RunE:  runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query a running server's status endpoint",
	RunE:  runServeStatus,
}

func init() {
	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().StringVar(&flagServeRedis, "redis", "", "Redis address for a shared result cache")
	serveCmd.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 0, "Max in-memory events retained (default from config)")
	serveCmd.Flags().BoolVarP(&flagServeVerbose, "verbose", "v", false, "Development logging")

	serveCmd.AddCommand(serveStatusCmd)
	rootCmd.AddCommand(serveCmd)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopmentConfig().Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func serveAddr() string {
	if flagServeAddr != "" {
		return flagServeAddr
	}
	return appConfig.Server.Addr
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(flagServeVerbose)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if flagServeRedis != "" {
		appConfig.Cache.RedisAddr = flagServeRedis
	}
	cache := serveCache(ctx, logger)
	if cache != nil {
		defer func() { _ = cache.Close() }()
	}

	buffer := flagServeEventsBuffer
	if buffer <= 0 {
		buffer = appConfig.Server.EventsBuffer
	}

	svc := server.New(server.Config{
		Addr:         serveAddr(),
		EventsBuffer: buffer,
		Cache:        cache,
		Logger:       logger,
	})

	fmt.Printf("  payoff listening on http://%s\n", serveAddr())
	fmt.Printf("  POST /v1/simulate, GET /v1/status, /v1/stream, /v1/live\n")

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// serveCache picks Redis, then SQLite, then an in-memory cache. A server
// always caches unless --no-cache is set.
func serveCache(ctx context.Context, logger *zap.Logger) store.ResultCache {
	if flagNoCache {
		logger.Info("result cache disabled")
		return nil
	}

	if addr := appConfig.RedisAddr(); addr != "" {
		rc, err := store.NewRedisCache(ctx, addr, appConfig.CacheTTL())
		if err == nil {
			logger.Info("using redis cache", zap.String("addr", addr))
			return rc
		}
		logger.Warn("redis unavailable", zap.String("addr", addr), zap.Error(err))
	}

	if appConfig.Cache.Enabled {
		c, err := store.Open(appConfig.CachePath())
		if err == nil {
			logger.Info("using sqlite cache", zap.String("path", appConfig.CachePath()))
			return c
		}
		logger.Warn("sqlite cache unavailable", zap.Error(err))
	}

	logger.Info("using in-memory cache")
	return store.NewMemoryCache()
}

func runServeStatus(_ *cobra.Command, _ []string) error {
	addr := serveAddr()
	fmt.Printf("  Address: http://%s\n", addr)

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/v1/status") //nolint:noctx // short status probe
	if err != nil {
		fmt.Printf("  API status: unreachable (%v)\n", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("  API status: HTTP %d\n", resp.StatusCode)
		return nil
	}

	var st server.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		fmt.Printf("  API status: malformed response (%v)\n", err)
		return nil
	}

	fmt.Printf("  Up since: %s\n", st.StartedAt.Local().Format(time.RFC3339))
	fmt.Printf("  Requests: %d (%d cache hits, %d cache errors)\n", st.Requests, st.CacheHits, st.CacheErrors)
	fmt.Printf("  Errors: %d\n", st.Errors)
	fmt.Printf("  Stream subscribers: %d, live connections: %d\n", st.SubscriberCount, st.LiveConnections)
	if st.Last != nil {
		fmt.Printf("  Last: %d months, $%.2f left (%s)\n",
			st.Last.MonthCount, st.Last.Left, st.Last.At.Local().Format(time.RFC3339))
	}
	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", st.LastError)
	}
	return nil
}
