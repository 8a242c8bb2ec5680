// Package store caches whole simulation results keyed by their inputs.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/payoff/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ResultCache stores complete payment histories by cache key.
type ResultCache interface {
	Get(ctx context.Context, key string) (model.PaymentHistory, bool, error)
	Put(ctx context.Context, key string, p model.LoanParameters, h model.PaymentHistory) error
	Close() error
}

// Cache provides SQLite-backed result caching.
type Cache struct {
	db *sql.DB
}

var _ ResultCache = (*Cache)(nil)

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached history for key, if present.
func (c *Cache) Get(ctx context.Context, key string) (model.PaymentHistory, bool, error) {
	var h model.PaymentHistory
	var payload []byte

	err := c.db.QueryRowContext(ctx, "SELECT payload FROM results WHERE cache_key = ?", key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return h, false, nil
	}
	if err != nil {
		return h, false, fmt.Errorf("reading cached result: %w", err)
	}

	if err := json.Unmarshal(payload, &h); err != nil {
		return h, false, fmt.Errorf("decoding cached result: %w", err)
	}

	_, _ = c.db.ExecContext(ctx, "UPDATE results SET hits = hits + 1 WHERE cache_key = ?", key)
	return h, true, nil
}

// Put stores h under key, replacing any earlier entry.
func (c *Cache) Put(ctx context.Context, key string, p model.LoanParameters, h model.PaymentHistory) error {
	payload, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `INSERT OR REPLACE INTO results
		(cache_key, principal, rate_percent, term_months, month_count, left_balance, total_paid, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		key, p.Principal, p.AnnualInterestRatePercent, p.TermMonths,
		h.MonthCount, h.Left, h.Totals.Paid, payload,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("storing result: %w", err)
	}
	return nil
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries int
	Hits    int64
}

// Stats returns the number of cached results and total hits.
func (c *Cache) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := c.db.QueryRowContext(ctx, "SELECT COUNT(*), COALESCE(SUM(hits), 0) FROM results").Scan(&s.Entries, &s.Hits)
	return s, err
}

// Prune deletes entries created before cutoff and reports how many went.
func (c *Cache) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := c.db.ExecContext(ctx, "DELETE FROM results WHERE created_at < ?", cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
