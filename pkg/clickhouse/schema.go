package clickhouse

// SchemaStmts returns the DDL for the price-history tables (idempotent).
// ReplacingMergeTree absorbs re-ingested rows: stocks dedupe by ticker,
// daily bars by (ticker, date).
func SchemaStmts() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS stocks (
			ticker   String,
			name     String,
			sector   String,
			industry String
		) ENGINE = ReplacingMergeTree
		ORDER BY ticker`,

		`CREATE TABLE IF NOT EXISTS daily_prices (
			ticker String,
			date   Date,
			open   Float64,
			high   Float64,
			low    Float64,
			close  Float64,
			volume Int64
		) ENGINE = ReplacingMergeTree
		PARTITION BY toYear(date)
		ORDER BY (ticker, date)`,
	}
}
