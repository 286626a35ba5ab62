package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"StockScope/internal/domain/models"
	"StockScope/pkg/sqlite"
	"StockScope/pkg/util"
)

// SQLiteStore serves catalog reads and ingest writes from a local SQLite
// file. daily_prices carries a UNIQUE(ticker, date) constraint, so
// re-ingesting an overlapping window is idempotent.
type SQLiteStore struct {
	client *sqlite.Client
	db     *sql.DB
}

// NewSQLiteStore wraps an opened client.
func NewSQLiteStore(client *sqlite.Client) *SQLiteStore {
	return &SQLiteStore{client: client, db: client.DB()}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	return s.client.InitSchema(ctx)
}

func (s *SQLiteStore) Stocks(ctx context.Context) ([]models.Stock, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ticker, name, sector, industry FROM stocks ORDER BY ticker`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stocks []models.Stock
	for rows.Next() {
		var st models.Stock
		if err := rows.Scan(&st.Ticker, &st.Name, &st.Sector, &st.Industry); err != nil {
			return nil, err
		}
		stocks = append(stocks, st)
	}
	return stocks, rows.Err()
}

func (s *SQLiteStore) StockByTicker(ctx context.Context, ticker string) (*models.Stock, error) {
	var st models.Stock
	err := s.db.QueryRowContext(ctx,
		`SELECT ticker, name, sector, industry FROM stocks WHERE ticker = ?`, ticker).
		Scan(&st.Ticker, &st.Name, &st.Sector, &st.Industry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrStockNotFound, ticker)
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *SQLiteStore) BarsSince(ctx context.Context, ticker string, start time.Time) ([]models.PriceBar, error) {
	q := `SELECT ticker, date, open, high, low, close, volume
		FROM daily_prices WHERE ticker = ? ORDER BY date ASC`
	args := []interface{}{ticker}
	if !start.IsZero() {
		q = `SELECT ticker, date, open, high, low, close, volume
			FROM daily_prices WHERE ticker = ? AND date >= ? ORDER BY date ASC`
		args = append(args, util.FormatDate(start))
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bars []models.PriceBar
	for rows.Next() {
		var b models.PriceBar
		var day string
		if err := rows.Scan(&b.Ticker, &day, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, err
		}
		d, ok := util.ParseDate(day)
		if !ok {
			return nil, fmt.Errorf("bad date %q for %s", day, b.Ticker)
		}
		b.Date = d
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

func (s *SQLiteStore) LatestBarDate(ctx context.Context, ticker string) (time.Time, bool, error) {
	var latest sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(date) FROM daily_prices WHERE ticker = ?`, ticker).Scan(&latest)
	if err != nil {
		return time.Time{}, false, err
	}
	if !latest.Valid {
		return time.Time{}, false, nil
	}
	d, ok := util.ParseDate(latest.String)
	if !ok {
		return time.Time{}, false, fmt.Errorf("bad date %q for %s", latest.String, ticker)
	}
	return d, true, nil
}

func (s *SQLiteStore) Totals(ctx context.Context) (*models.DatasetTotals, error) {
	t := &models.DatasetTotals{}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stocks`).Scan(&t.Stocks); err != nil {
		return nil, fmt.Errorf("count stocks: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_prices`).Scan(&t.PriceRows); err != nil {
		return nil, fmt.Errorf("count price rows: %w", err)
	}

	var latest sql.NullString
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(date) FROM daily_prices`).Scan(&latest); err != nil {
		return nil, fmt.Errorf("latest date: %w", err)
	}
	if latest.Valid {
		if d, ok := util.ParseDate(latest.String); ok {
			t.LatestDate = &d
		}
	}
	return t, nil
}

func (s *SQLiteStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) UpsertStocks(ctx context.Context, stocks []models.Stock) error {
	if len(stocks) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO stocks (ticker, name, sector, industry) VALUES (?, ?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			name = excluded.name, sector = excluded.sector, industry = excluded.industry`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, st := range stocks {
		if st.Ticker == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, st.Ticker, st.Name, st.Sector, st.Industry); err != nil {
			return fmt.Errorf("upsert %s: %w", st.Ticker, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) StoreBars(ctx context.Context, bars []models.PriceBar) (int64, error) {
	if len(bars) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO daily_prices (ticker, date, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var inserted int64
	for _, b := range bars {
		if b.Ticker == "" || b.Date.IsZero() {
			continue
		}
		res, err := stmt.ExecContext(ctx,
			b.Ticker, util.FormatDate(b.Date), b.Open, b.High, b.Low, b.Close, b.Volume)
		if err != nil {
			return 0, fmt.Errorf("store bar %s %s: %w", b.Ticker, util.FormatDate(b.Date), err)
		}
		n, _ := res.RowsAffected()
		inserted += n
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (s *SQLiteStore) Close() error {
	return s.client.Close()
}
