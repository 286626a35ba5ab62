package usecase

import (
	"context"
	"fmt"
	"time"

	"StockScope/internal/domain/models"
	domrepo "StockScope/internal/domain/repository"
	"StockScope/internal/services/stats"
	"StockScope/pkg/cache"
)

// SeriesUseCase serves price series and period summaries. Results are cached
// per (ticker, period) because the dataset only moves on ingest; ingest runs
// invalidate the whole response cache.
type SeriesUseCase struct {
	repo    domrepo.StockRepository
	cache   cache.Service // nil disables response caching
	ttl     time.Duration
	metrics domrepo.Metrics
}

func NewSeriesUseCase(repo domrepo.StockRepository, cacheSvc cache.Service, ttl time.Duration, metrics domrepo.Metrics) *SeriesUseCase {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SeriesUseCase{repo: repo, cache: cacheSvc, ttl: ttl, metrics: metrics}
}

// GetSeries returns the ticker's daily bars within the period, ascending by
// date. The window ends at the ticker's own latest bar, not the wall clock,
// so a stale dataset still yields a full period. A known ticker with no bars
// returns an empty series; an unknown ticker fails with ErrStockNotFound.
func (uc *SeriesUseCase) GetSeries(ctx context.Context, ticker string, period domrepo.Period) ([]models.PriceBar, error) {
	if !domrepo.IsValidPeriod(period) {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidPeriod, period)
	}

	start := time.Now()
	key := cache.GenerateKeyWithParams("prices", ticker, string(period))
	if uc.cache != nil {
		var cached []models.PriceBar
		if err := uc.cache.Get(ctx, key, &cached); err == nil {
			uc.metrics.RecordQuery("prices_cached")
			return cached, nil
		}
	}

	bars, err := uc.loadBars(ctx, ticker, period)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, key, bars, uc.ttl)
	}
	uc.metrics.RecordQuery("prices")
	uc.metrics.RecordSeriesLength(len(bars))
	uc.metrics.RecordLatency("prices", time.Since(start).Seconds())
	return bars, nil
}

// GetSummary aggregates the period's closes. A known ticker whose period
// holds no bars fails with ErrNoPriceData; a first close of zero surfaces
// ErrZeroFirstClose untouched so the API can flag it separately.
func (uc *SeriesUseCase) GetSummary(ctx context.Context, ticker string, period domrepo.Period) (*models.PeriodStats, error) {
	if !domrepo.IsValidPeriod(period) {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidPeriod, period)
	}

	start := time.Now()
	key := cache.GenerateKeyWithParams("summary", ticker, string(period))
	if uc.cache != nil {
		var cached models.PeriodStats
		if err := uc.cache.Get(ctx, key, &cached); err == nil {
			uc.metrics.RecordQuery("summary_cached")
			return &cached, nil
		}
	}

	bars, err := uc.loadBars(ctx, ticker, period)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrNoPriceData, ticker)
	}

	st, err := stats.Aggregate(bars)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, key, st, uc.ttl)
	}
	uc.metrics.RecordQuery("summary")
	uc.metrics.RecordLatency("summary", time.Since(start).Seconds())
	return st, nil
}

// loadBars resolves the period window against the ticker's latest bar date
// and reads the series. Existence is checked first so unknown tickers fail
// with ErrStockNotFound rather than coming back empty.
func (uc *SeriesUseCase) loadBars(ctx context.Context, ticker string, period domrepo.Period) ([]models.PriceBar, error) {
	if _, err := uc.repo.StockByTicker(ctx, ticker); err != nil {
		return nil, err
	}

	asOf, ok, err := uc.repo.LatestBarDate(ctx, ticker)
	if err != nil {
		uc.metrics.RecordError("series")
		return nil, fmt.Errorf("latest bar date %s: %w", ticker, err)
	}
	if !ok {
		return []models.PriceBar{}, nil
	}

	bars, err := uc.repo.BarsSince(ctx, ticker, period.StartFrom(asOf))
	if err != nil {
		uc.metrics.RecordError("series")
		return nil, fmt.Errorf("load bars %s: %w", ticker, err)
	}
	if bars == nil {
		bars = []models.PriceBar{}
	}
	return bars, nil
}
