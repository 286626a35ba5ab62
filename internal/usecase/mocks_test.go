package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"StockScope/internal/domain/models"
)

// stubRepo is an in-memory StockRepository for usecase tests. Bars must be
// provided pre-sorted ascending, the order real stores return them.
type stubRepo struct {
	stocks  []models.Stock
	bars    map[string][]models.PriceBar
	failAll error

	mu    sync.Mutex
	calls map[string]int
}

func newStubRepo(stocks []models.Stock, bars map[string][]models.PriceBar) *stubRepo {
	return &stubRepo{stocks: stocks, bars: bars, calls: map[string]int{}}
}

func (r *stubRepo) count(op string) {
	r.mu.Lock()
	r.calls[op]++
	r.mu.Unlock()
}

func (r *stubRepo) callCount(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[op]
}

func (r *stubRepo) Stocks(ctx context.Context) ([]models.Stock, error) {
	r.count("Stocks")
	if r.failAll != nil {
		return nil, r.failAll
	}
	return r.stocks, nil
}

func (r *stubRepo) StockByTicker(ctx context.Context, ticker string) (*models.Stock, error) {
	r.count("StockByTicker")
	if r.failAll != nil {
		return nil, r.failAll
	}
	for i := range r.stocks {
		if r.stocks[i].Ticker == ticker {
			return &r.stocks[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", models.ErrStockNotFound, ticker)
}

func (r *stubRepo) BarsSince(ctx context.Context, ticker string, start time.Time) ([]models.PriceBar, error) {
	r.count("BarsSince")
	if r.failAll != nil {
		return nil, r.failAll
	}
	var out []models.PriceBar
	for _, b := range r.bars[ticker] {
		if start.IsZero() || !b.Date.Before(start) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubRepo) LatestBarDate(ctx context.Context, ticker string) (time.Time, bool, error) {
	r.count("LatestBarDate")
	if r.failAll != nil {
		return time.Time{}, false, r.failAll
	}
	bars := r.bars[ticker]
	if len(bars) == 0 {
		return time.Time{}, false, nil
	}
	return bars[len(bars)-1].Date, true, nil
}

func (r *stubRepo) Totals(ctx context.Context) (*models.DatasetTotals, error) {
	r.count("Totals")
	if r.failAll != nil {
		return nil, r.failAll
	}
	t := &models.DatasetTotals{Stocks: int64(len(r.stocks))}
	for _, bars := range r.bars {
		t.PriceRows += int64(len(bars))
		for _, b := range bars {
			if t.LatestDate == nil || b.Date.After(*t.LatestDate) {
				d := b.Date
				t.LatestDate = &d
			}
		}
	}
	return t, nil
}

func (r *stubRepo) Health(ctx context.Context) error { return nil }

// stubWriter records everything handed to the ingest pipeline.
type stubWriter struct {
	mu       sync.Mutex
	inited   bool
	stocks   []models.Stock
	bars     []models.PriceBar
	storeErr map[string]error // per-ticker failures
}

func (w *stubWriter) Init(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inited = true
	return nil
}

func (w *stubWriter) UpsertStocks(ctx context.Context, stocks []models.Stock) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stocks = append(w.stocks, stocks...)
	return nil
}

func (w *stubWriter) StoreBars(ctx context.Context, bars []models.PriceBar) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(bars) > 0 {
		if err := w.storeErr[bars[0].Ticker]; err != nil {
			return 0, err
		}
	}
	w.bars = append(w.bars, bars...)
	return int64(len(bars)), nil
}

func (w *stubWriter) Close() error { return nil }

func (w *stubWriter) storedBars() []models.PriceBar {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.PriceBar(nil), w.bars...)
}

// stubConstituents returns a fixed membership list.
type stubConstituents struct {
	stocks []models.Stock
	err    error
}

func (s *stubConstituents) FetchConstituents(ctx context.Context) ([]models.Stock, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.stocks, nil
}

// stubProvider serves canned bars per ticker.
type stubProvider struct {
	bars map[string][]models.PriceBar
	errs map[string]error
}

func (p *stubProvider) FetchDailyBars(ctx context.Context, ticker string) ([]models.PriceBar, error) {
	if err := p.errs[ticker]; err != nil {
		return nil, err
	}
	return p.bars[ticker], nil
}

// nopMetrics satisfies the Metrics contract without recording anything.
type nopMetrics struct{}

func (nopMetrics) RecordQuery(string)            {}
func (nopMetrics) RecordError(string)            {}
func (nopMetrics) RecordSearchResults(int)       {}
func (nopMetrics) RecordSeriesLength(int)        {}
func (nopMetrics) SetDatasetSize(int64, int64)   {}
func (nopMetrics) RecordLatency(string, float64) {}

func priceBar(ticker string, date time.Time, close float64) models.PriceBar {
	return models.PriceBar{
		Ticker: ticker,
		Date:   date,
		Open:   close,
		High:   close,
		Low:    close,
		Close:  close,
		Volume: 1000,
	}
}

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
