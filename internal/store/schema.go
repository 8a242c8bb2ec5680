package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS results (
    cache_key     TEXT PRIMARY KEY,
    principal     REAL NOT NULL,
    rate_percent  REAL NOT NULL,
    term_months   INTEGER NOT NULL,
    month_count   INTEGER NOT NULL,
    left_balance  REAL NOT NULL,
    total_paid    REAL NOT NULL,
    payload       BLOB NOT NULL,
    created_at    TEXT NOT NULL,
    hits          INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_results_created ON results(created_at);
`
