package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"StockScope/internal/domain/models"
	"StockScope/pkg/sqlite"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	client, err := sqlite.NewClient(sqlite.WithPath(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)

	store := NewSQLiteStore(client)
	require.NoError(t, store.Init(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func testBar(ticker string, d int, close float64) models.PriceBar {
	return models.PriceBar{
		Ticker: ticker,
		Date:   day(d),
		Open:   close - 1,
		High:   close + 2,
		Low:    close - 2,
		Close:  close,
		Volume: 10000,
	}
}

func TestUpsertStocksAndRead(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.UpsertStocks(ctx, []models.Stock{
		{Ticker: "MSFT", Name: "Microsoft", Sector: "Information Technology", Industry: "Software"},
		{Ticker: "AAPL", Name: "Apple Inc.", Sector: "Information Technology", Industry: "Hardware"},
	})
	require.NoError(t, err)

	stocks, err := store.Stocks(ctx)
	require.NoError(t, err)
	require.Len(t, stocks, 2)
	require.Equal(t, "AAPL", stocks[0].Ticker, "catalog must come back in ticker order")
	require.Equal(t, "MSFT", stocks[1].Ticker)

	st, err := store.StockByTicker(ctx, "AAPL")
	require.NoError(t, err)
	require.Equal(t, "Apple Inc.", st.Name)

	_, err = store.StockByTicker(ctx, "NOPE")
	require.True(t, errors.Is(err, models.ErrStockNotFound), "got %v", err)
}

func TestUpsertStocksOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertStocks(ctx, []models.Stock{{Ticker: "META", Name: "Facebook"}}))
	require.NoError(t, store.UpsertStocks(ctx, []models.Stock{{Ticker: "META", Name: "Meta Platforms", Sector: "Communication Services"}}))

	st, err := store.StockByTicker(ctx, "META")
	require.NoError(t, err)
	require.Equal(t, "Meta Platforms", st.Name)
	require.Equal(t, "Communication Services", st.Sector)

	stocks, err := store.Stocks(ctx)
	require.NoError(t, err)
	require.Len(t, stocks, 1)
}

func TestStoreBarsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	bars := []models.PriceBar{testBar("AAPL", 4, 100), testBar("AAPL", 5, 110), testBar("AAPL", 6, 90)}

	inserted, err := store.StoreBars(ctx, bars)
	require.NoError(t, err)
	require.EqualValues(t, 3, inserted)

	inserted, err = store.StoreBars(ctx, bars)
	require.NoError(t, err)
	require.EqualValues(t, 0, inserted, "duplicate (ticker, date) rows must be ignored")

	got, err := store.BarsSince(ctx, "AAPL", time.Time{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, 100.0, got[0].Close)
	require.Equal(t, 90.0, got[2].Close)
	require.True(t, got[0].Date.Before(got[1].Date))
	require.True(t, got[1].Date.Before(got[2].Date))
}

func TestBarsSinceFiltersByStart(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.StoreBars(ctx, []models.PriceBar{
		testBar("MSFT", 4, 400), testBar("MSFT", 5, 410), testBar("MSFT", 6, 420),
	})
	require.NoError(t, err)

	got, err := store.BarsSince(ctx, "MSFT", day(5))
	require.NoError(t, err)
	require.Len(t, got, 2, "start date is inclusive")
	require.True(t, got[0].Date.Equal(day(5)))

	got, err = store.BarsSince(ctx, "MSFT", day(10))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestBarsSinceIsolatesTickers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.StoreBars(ctx, []models.PriceBar{testBar("AAPL", 4, 100), testBar("MSFT", 4, 400)})
	require.NoError(t, err)

	got, err := store.BarsSince(ctx, "AAPL", time.Time{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "AAPL", got[0].Ticker)
}

func TestLatestBarDate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, ok, err := store.LatestBarDate(ctx, "AAPL")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = store.StoreBars(ctx, []models.PriceBar{testBar("AAPL", 4, 100), testBar("AAPL", 8, 105)})
	require.NoError(t, err)

	latest, ok, err := store.LatestBarDate(ctx, "AAPL")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, latest.Equal(day(8)))
}

func TestTotals(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	totals, err := store.Totals(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, totals.Stocks)
	require.EqualValues(t, 0, totals.PriceRows)
	require.Nil(t, totals.LatestDate)

	require.NoError(t, store.UpsertStocks(ctx, []models.Stock{{Ticker: "AAPL", Name: "Apple Inc."}}))
	_, err = store.StoreBars(ctx, []models.PriceBar{testBar("AAPL", 4, 100), testBar("AAPL", 5, 101)})
	require.NoError(t, err)

	totals, err = store.Totals(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, totals.Stocks)
	require.EqualValues(t, 2, totals.PriceRows)
	require.NotNil(t, totals.LatestDate)
	require.True(t, totals.LatestDate.Equal(day(5)))
}
