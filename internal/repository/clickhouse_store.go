package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"StockScope/internal/domain/models"
	pkgch "StockScope/pkg/clickhouse"
	applogger "StockScope/pkg/logger"
	"StockScope/pkg/util"
)

// ClickHouseStore serves the same contract as SQLiteStore from ClickHouse.
// Both tables use ReplacingMergeTree, so re-ingested rows collapse during
// merges; reads go through FINAL to hide not-yet-merged duplicates.
type ClickHouseStore struct {
	client *pkgch.Client
	db     *sql.DB
	l      *applogger.Logger
}

// NewClickHouseStore wraps an opened client.
func NewClickHouseStore(client *pkgch.Client) *ClickHouseStore {
	return &ClickHouseStore{client: client, db: client.DB()}
}

// SetLogger injects a structured logger for query errors.
func (s *ClickHouseStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *ClickHouseStore) Init(ctx context.Context) error {
	return s.client.InitSchema(ctx)
}

func (s *ClickHouseStore) Stocks(ctx context.Context) ([]models.Stock, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ticker, name, sector, industry FROM stocks FINAL ORDER BY ticker`)
	if err != nil {
		s.logError("stocks query", "", err)
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	defer rows.Close()

	var stocks []models.Stock
	for rows.Next() {
		var st models.Stock
		if err := rows.Scan(&st.Ticker, &st.Name, &st.Sector, &st.Industry); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		stocks = append(stocks, st)
	}
	return stocks, rows.Err()
}

func (s *ClickHouseStore) StockByTicker(ctx context.Context, ticker string) (*models.Stock, error) {
	var st models.Stock
	err := s.db.QueryRowContext(ctx,
		`SELECT ticker, name, sector, industry FROM stocks FINAL WHERE ticker = ?`, ticker).
		Scan(&st.Ticker, &st.Name, &st.Sector, &st.Industry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrStockNotFound, ticker)
	}
	if err != nil {
		s.logError("stock query", ticker, err)
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &st, nil
}

func (s *ClickHouseStore) BarsSince(ctx context.Context, ticker string, start time.Time) ([]models.PriceBar, error) {
	q := `SELECT ticker, date, open, high, low, close, volume
		FROM daily_prices FINAL WHERE ticker = ? ORDER BY date ASC`
	args := []interface{}{ticker}
	if !start.IsZero() {
		q = `SELECT ticker, date, open, high, low, close, volume
			FROM daily_prices FINAL WHERE ticker = ? AND date >= ? ORDER BY date ASC`
		args = append(args, start)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		s.logError("bars query", ticker, err)
		return nil, fmt.Errorf("get bars: %w", err)
	}
	defer rows.Close()

	bars := make([]models.PriceBar, 0, 256)
	for rows.Next() {
		var b models.PriceBar
		var d time.Time
		if err := rows.Scan(&b.Ticker, &d, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		b.Date = util.DateOnly(d)
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

func (s *ClickHouseStore) LatestBarDate(ctx context.Context, ticker string) (time.Time, bool, error) {
	var latest sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT maxOrNull(date) FROM daily_prices WHERE ticker = ?`, ticker).Scan(&latest)
	if err != nil {
		s.logError("latest date query", ticker, err)
		return time.Time{}, false, fmt.Errorf("latest bar date: %w", err)
	}
	if !latest.Valid {
		return time.Time{}, false, nil
	}
	return util.DateOnly(latest.Time), true, nil
}

func (s *ClickHouseStore) Totals(ctx context.Context) (*models.DatasetTotals, error) {
	t := &models.DatasetTotals{}
	if err := s.db.QueryRowContext(ctx, `SELECT count() FROM stocks FINAL`).Scan(&t.Stocks); err != nil {
		return nil, fmt.Errorf("count stocks: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT count() FROM daily_prices FINAL`).Scan(&t.PriceRows); err != nil {
		return nil, fmt.Errorf("count price rows: %w", err)
	}

	var latest sql.NullTime
	if err := s.db.QueryRowContext(ctx, `SELECT maxOrNull(date) FROM daily_prices`).Scan(&latest); err != nil {
		return nil, fmt.Errorf("latest date: %w", err)
	}
	if latest.Valid {
		d := util.DateOnly(latest.Time)
		t.LatestDate = &d
	}
	return t, nil
}

func (s *ClickHouseStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseStore) UpsertStocks(ctx context.Context, stocks []models.Stock) error {
	if len(stocks) == 0 {
		return nil
	}
	values := make([]string, 0, len(stocks))
	args := make([]interface{}, 0, len(stocks)*4)
	for _, st := range stocks {
		if st.Ticker == "" {
			continue
		}
		values = append(values, "(?, ?, ?, ?)")
		args = append(args, st.Ticker, st.Name, st.Sector, st.Industry)
	}
	if len(values) == 0 {
		return nil
	}
	q := "INSERT INTO stocks (ticker, name, sector, industry) VALUES " + strings.Join(values, ",")
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		s.logError("upsert stocks", "", err)
		return fmt.Errorf("upsert stocks: %w", err)
	}
	return nil
}

// StoreBars inserts bars in chunks of multi-row VALUES to cut round-trips.
// The returned count is rows written; ReplacingMergeTree collapses rows that
// duplicate an existing (ticker, date) during background merges.
func (s *ClickHouseStore) StoreBars(ctx context.Context, bars []models.PriceBar) (int64, error) {
	if len(bars) == 0 {
		return 0, nil
	}
	const chunkSize = 2000
	var written int64
	for startIdx := 0; startIdx < len(bars); startIdx += chunkSize {
		end := startIdx + chunkSize
		if end > len(bars) {
			end = len(bars)
		}

		values := make([]string, 0, end-startIdx)
		args := make([]interface{}, 0, (end-startIdx)*7)
		for _, b := range bars[startIdx:end] {
			if b.Ticker == "" || b.Date.IsZero() {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
			args = append(args, b.Ticker, b.Date, b.Open, b.High, b.Low, b.Close, b.Volume)
		}
		if len(values) == 0 {
			continue
		}
		q := "INSERT INTO daily_prices (ticker, date, open, high, low, close, volume) VALUES " + strings.Join(values, ",")
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			s.logError("store bars", "", err)
			return written, fmt.Errorf("store bars: %w", err)
		}
		written += int64(len(values))
	}
	return written, nil
}

func (s *ClickHouseStore) Close() error {
	return s.client.Close()
}

func (s *ClickHouseStore) logError(op, ticker string, err error) {
	if s.l == nil {
		return
	}
	fields := []applogger.Field{applogger.String("op", op), applogger.Error(err)}
	if ticker != "" {
		fields = append(fields, applogger.String("ticker", ticker))
	}
	s.l.Error("clickhouse "+op+" failed", fields...)
}
