package repository

import (
	"context"
	"time"

	"StockScope/internal/domain/models"
)

// StockRepository provides read-only access to the price-history dataset.
type StockRepository interface {
	// Stocks returns the full reference list ordered by ticker.
	Stocks(ctx context.Context) ([]models.Stock, error)
	// StockByTicker returns one stock or models.ErrStockNotFound.
	StockByTicker(ctx context.Context, ticker string) (*models.Stock, error)
	// BarsSince returns the ticker's bars with date >= start, ascending by
	// date. A zero start returns the whole series.
	BarsSince(ctx context.Context, ticker string, start time.Time) ([]models.PriceBar, error)
	// LatestBarDate returns the max bar date for the ticker; ok is false when
	// the ticker has no bars at all.
	LatestBarDate(ctx context.Context, ticker string) (time.Time, bool, error)
	// Totals reports dataset-wide counts.
	Totals(ctx context.Context) (*models.DatasetTotals, error)
	Health(ctx context.Context) error
}

// MarketWriter is the ingest-side contract. Re-running an ingest must be
// idempotent: (ticker, date) uniqueness absorbs overlapping bars.
type MarketWriter interface {
	Init(ctx context.Context) error // ensure tables
	UpsertStocks(ctx context.Context, stocks []models.Stock) error
	StoreBars(ctx context.Context, bars []models.PriceBar) (int64, error)
	Close() error
}

// Store is a complete storage backend: the read side the API serves from and
// the write side the ingest command fills.
type Store interface {
	StockRepository
	MarketWriter
}

// MarketDataProvider returns the full daily-bar lookback for one ticker,
// ascending by date.
type MarketDataProvider interface {
	FetchDailyBars(ctx context.Context, ticker string) ([]models.PriceBar, error)
}

// ConstituentsProvider returns the current index membership.
type ConstituentsProvider interface {
	FetchConstituents(ctx context.Context) ([]models.Stock, error)
}

type Metrics interface {
	RecordQuery(op string)
	RecordError(kind string)
	RecordSearchResults(n int)
	RecordSeriesLength(n int)
	SetDatasetSize(stocks, priceRows int64)
	RecordLatency(op string, seconds float64)
}
