package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"StockScope/internal/domain/models"
	domrepo "StockScope/internal/domain/repository"
	"StockScope/internal/services/search"
)

// CatalogUseCase serves the stock reference list, single-stock lookups and
// name/ticker search. The search index is an in-memory snapshot of the
// catalog; the dataset only changes on ingest, so a startup build plus
// explicit refreshes keeps it current.
type CatalogUseCase struct {
	repo    domrepo.StockRepository
	metrics domrepo.Metrics

	mu    sync.RWMutex
	index *search.Index
}

func NewCatalogUseCase(repo domrepo.StockRepository, metrics domrepo.Metrics) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, metrics: metrics}
}

// ListStocks returns all stocks ordered by ticker.
func (uc *CatalogUseCase) ListStocks(ctx context.Context) ([]models.Stock, error) {
	start := time.Now()
	stocks, err := uc.repo.Stocks(ctx)
	if err != nil {
		uc.metrics.RecordError("list_stocks")
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	uc.metrics.RecordQuery("list_stocks")
	uc.metrics.RecordLatency("list_stocks", time.Since(start).Seconds())
	return stocks, nil
}

// GetStock returns one stock or models.ErrStockNotFound.
func (uc *CatalogUseCase) GetStock(ctx context.Context, ticker string) (*models.Stock, error) {
	start := time.Now()
	st, err := uc.repo.StockByTicker(ctx, ticker)
	if err != nil {
		uc.metrics.RecordError("stock_not_found")
		return nil, err
	}
	uc.metrics.RecordQuery("get_stock")
	uc.metrics.RecordLatency("get_stock", time.Since(start).Seconds())
	return st, nil
}

// Search returns ranked matches for q, capped at limit. An empty query
// yields an empty result set rather than an error.
func (uc *CatalogUseCase) Search(ctx context.Context, q string, limit int) ([]models.SearchResult, error) {
	start := time.Now()
	ix, err := uc.currentIndex(ctx)
	if err != nil {
		uc.metrics.RecordError("search")
		return nil, fmt.Errorf("search index: %w", err)
	}

	results := ix.Query(q, limit)
	uc.metrics.RecordQuery("search")
	uc.metrics.RecordSearchResults(len(results))
	uc.metrics.RecordLatency("search", time.Since(start).Seconds())
	return results, nil
}

// Totals reports dataset-wide counts and refreshes the size gauges.
func (uc *CatalogUseCase) Totals(ctx context.Context) (*models.DatasetTotals, error) {
	start := time.Now()
	totals, err := uc.repo.Totals(ctx)
	if err != nil {
		uc.metrics.RecordError("totals")
		return nil, fmt.Errorf("dataset totals: %w", err)
	}
	uc.metrics.SetDatasetSize(totals.Stocks, totals.PriceRows)
	uc.metrics.RecordQuery("totals")
	uc.metrics.RecordLatency("totals", time.Since(start).Seconds())
	return totals, nil
}

// Health reports storage liveness.
func (uc *CatalogUseCase) Health(ctx context.Context) error {
	return uc.repo.Health(ctx)
}

// RefreshIndex rebuilds the search index from the repository.
func (uc *CatalogUseCase) RefreshIndex(ctx context.Context) error {
	stocks, err := uc.repo.Stocks(ctx)
	if err != nil {
		return fmt.Errorf("refresh index: %w", err)
	}
	ix := search.NewIndex(stocks)

	uc.mu.Lock()
	uc.index = ix
	uc.mu.Unlock()
	return nil
}

func (uc *CatalogUseCase) currentIndex(ctx context.Context) (*search.Index, error) {
	uc.mu.RLock()
	ix := uc.index
	uc.mu.RUnlock()
	if ix != nil {
		return ix, nil
	}

	if err := uc.RefreshIndex(ctx); err != nil {
		return nil, err
	}
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.index, nil
}
