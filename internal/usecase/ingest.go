package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"StockScope/internal/domain/models"
	domrepo "StockScope/internal/domain/repository"
	"StockScope/internal/service/ratelimit"
	"StockScope/pkg/cache"
	applogger "StockScope/pkg/logger"
)

const (
	ingestLockKey = "ingest:lock"
	ingestLockTTL = 30 * time.Minute
	providerKey   = "marketdata"
)

// IngestUseCase refreshes the dataset: constituents from the index page,
// then the full bar lookback per ticker through a rate-limited worker pool.
// Re-runs are idempotent because the writer dedupes on (ticker, date).
type IngestUseCase struct {
	constituents domrepo.ConstituentsProvider
	provider     domrepo.MarketDataProvider
	writer       domrepo.MarketWriter
	cache        cache.Service // nil skips locking and invalidation
	limiter      *ratelimit.Limiter
	metrics      domrepo.Metrics
	logger       *applogger.Logger
	concurrency  int
	ratePerSec   float64
}

func NewIngestUseCase(
	constituents domrepo.ConstituentsProvider,
	provider domrepo.MarketDataProvider,
	writer domrepo.MarketWriter,
	cacheSvc cache.Service,
	limiter *ratelimit.Limiter,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
	concurrency int,
	ratePerSec float64,
) *IngestUseCase {
	if concurrency < 1 {
		concurrency = 1
	}
	if ratePerSec <= 0 {
		ratePerSec = 5
	}
	if logger == nil {
		logger = applogger.Nop()
	}
	return &IngestUseCase{
		constituents: constituents,
		provider:     provider,
		writer:       writer,
		cache:        cacheSvc,
		limiter:      limiter,
		metrics:      metrics,
		logger:       logger,
		concurrency:  concurrency,
		ratePerSec:   ratePerSec,
	}
}

// Run executes one full ingest cycle. Individual ticker failures are logged
// and counted but do not abort the run; the report carries the tally.
func (uc *IngestUseCase) Run(ctx context.Context) (*models.IngestReport, error) {
	if uc.cache != nil {
		ok, err := uc.cache.TryLock(ctx, ingestLockKey, ingestLockTTL)
		if err != nil {
			uc.logger.Warn("ingest lock unavailable, continuing without it", applogger.Error(err))
		} else if !ok {
			return nil, fmt.Errorf("ingest already running")
		} else {
			defer func() { _ = uc.cache.Unlock(context.Background(), ingestLockKey) }()
		}
	}

	start := time.Now()
	if err := uc.writer.Init(ctx); err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	stocks, err := uc.constituents.FetchConstituents(ctx)
	if err != nil {
		uc.metrics.RecordError("ingest_constituents")
		return nil, fmt.Errorf("fetch constituents: %w", err)
	}
	uc.logger.Info("constituents fetched", applogger.Int("stocks", len(stocks)))

	if err := uc.writer.UpsertStocks(ctx, stocks); err != nil {
		uc.metrics.RecordError("ingest_upsert")
		return nil, fmt.Errorf("upsert stocks: %w", err)
	}

	var fetched, failed, barsInserted int64

	jobs := make(chan models.Stock)
	var wg sync.WaitGroup
	for i := 0; i < uc.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for st := range jobs {
				if err := uc.ingestTicker(ctx, st.Ticker, &barsInserted); err != nil {
					atomic.AddInt64(&failed, 1)
					uc.metrics.RecordError("ingest_ticker")
					uc.logger.Warn("ticker ingest failed",
						applogger.String("ticker", st.Ticker),
						applogger.Error(err))
					continue
				}
				atomic.AddInt64(&fetched, 1)
			}
		}()
	}

feed:
	for _, st := range stocks {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- st:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ingest interrupted: %w", err)
	}

	if uc.cache != nil {
		// Series and summaries cached before this run are stale now.
		_ = uc.cache.DeleteByPattern(ctx, cache.BuildPattern("prices:"))
		_ = uc.cache.DeleteByPattern(ctx, cache.BuildPattern("summary:"))
	}

	report := &models.IngestReport{
		Stocks:         int64(len(stocks)),
		TickersFetched: fetched,
		TickersFailed:  failed,
		BarsInserted:   barsInserted,
		Duration:       time.Since(start),
	}
	uc.metrics.RecordLatency("ingest", report.Duration.Seconds())
	uc.logger.Info("ingest finished",
		applogger.Int64("stocks", report.Stocks),
		applogger.Int64("tickers_fetched", report.TickersFetched),
		applogger.Int64("tickers_failed", report.TickersFailed),
		applogger.Int64("bars_inserted", report.BarsInserted),
		applogger.Duration("duration_ms", report.Duration))
	return report, nil
}

func (uc *IngestUseCase) ingestTicker(ctx context.Context, ticker string, barsInserted *int64) error {
	if err := uc.limiter.Wait(ctx, providerKey, uc.ratePerSec, uc.ratePerSec); err != nil {
		return err
	}

	bars, err := uc.provider.FetchDailyBars(ctx, ticker)
	if err != nil {
		return err
	}

	n, err := uc.writer.StoreBars(ctx, bars)
	if err != nil {
		return err
	}
	atomic.AddInt64(barsInserted, n)
	return nil
}
