package sqlite

// SchemaStmts returns the DDL for the price-history tables (idempotent).
func SchemaStmts() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS stocks (
			ticker   TEXT PRIMARY KEY,
			name     TEXT NOT NULL,
			sector   TEXT NOT NULL DEFAULT '',
			industry TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS daily_prices (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			ticker TEXT NOT NULL,
			date   TEXT NOT NULL,
			open   REAL NOT NULL,
			high   REAL NOT NULL,
			low    REAL NOT NULL,
			close  REAL NOT NULL,
			volume INTEGER NOT NULL,
			UNIQUE (ticker, date)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_daily_prices_ticker_date
			ON daily_prices (ticker, date)`,
	}
}
