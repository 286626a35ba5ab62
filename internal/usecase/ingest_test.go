package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScope/internal/domain/models"
	"StockScope/internal/service/ratelimit"
	"StockScope/pkg/cache"
	applogger "StockScope/pkg/logger"
)

func ingestFixture() (*stubConstituents, *stubProvider, *stubWriter) {
	stocks := []models.Stock{
		{Ticker: "AAPL", Name: "Apple Inc."},
		{Ticker: "MSFT", Name: "Microsoft"},
		{Ticker: "AMZN", Name: "Amazon"},
	}
	provider := &stubProvider{
		bars: map[string][]models.PriceBar{
			"AAPL": {priceBar("AAPL", utcDate(2024, 6, 13), 100), priceBar("AAPL", utcDate(2024, 6, 14), 101)},
			"MSFT": {priceBar("MSFT", utcDate(2024, 6, 14), 400)},
			"AMZN": {priceBar("AMZN", utcDate(2024, 6, 14), 180)},
		},
		errs: map[string]error{},
	}
	return &stubConstituents{stocks: stocks}, provider, &stubWriter{storeErr: map[string]error{}}
}

func newIngest(c *stubConstituents, p *stubProvider, w *stubWriter, cacheSvc cache.Service) *IngestUseCase {
	return NewIngestUseCase(c, p, w, cacheSvc, ratelimit.New(), nopMetrics{}, applogger.Nop(), 2, 1000)
}

func TestIngestRun(t *testing.T) {
	consts, provider, writer := ingestFixture()
	uc := newIngest(consts, provider, writer, nil)

	report, err := uc.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, writer.inited)
	assert.Len(t, writer.stocks, 3)
	assert.Len(t, writer.storedBars(), 4)

	assert.EqualValues(t, 3, report.Stocks)
	assert.EqualValues(t, 3, report.TickersFetched)
	assert.EqualValues(t, 0, report.TickersFailed)
	assert.EqualValues(t, 4, report.BarsInserted)
	assert.Greater(t, report.Duration, time.Duration(0))
}

func TestIngestTickerFailureDoesNotAbort(t *testing.T) {
	consts, provider, writer := ingestFixture()
	provider.errs["MSFT"] = errors.New("upstream 429")
	uc := newIngest(consts, provider, writer, nil)

	report, err := uc.Run(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, report.TickersFetched)
	assert.EqualValues(t, 1, report.TickersFailed)
	assert.EqualValues(t, 3, report.BarsInserted, "the healthy tickers still land")
}

func TestIngestConstituentsFailureAborts(t *testing.T) {
	consts, provider, writer := ingestFixture()
	consts.err = errors.New("wikipedia unreachable")
	uc := newIngest(consts, provider, writer, nil)

	_, err := uc.Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, writer.stocks)
}

func TestIngestRefusesConcurrentRun(t *testing.T) {
	consts, provider, writer := ingestFixture()
	mem := cache.NewMemoryCache()
	defer mem.Close()

	held, err := mem.TryLock(context.Background(), "ingest:lock", time.Minute)
	require.NoError(t, err)
	require.True(t, held)

	uc := newIngest(consts, provider, writer, mem)
	_, err = uc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}

func TestIngestInvalidatesResponseCache(t *testing.T) {
	consts, provider, writer := ingestFixture()
	mem := cache.NewMemoryCache()
	defer mem.Close()

	require.NoError(t, mem.Set(context.Background(), "prices:AAPL:1y", []byte("stale"), time.Minute))

	uc := newIngest(consts, provider, writer, mem)
	_, err := uc.Run(context.Background())
	require.NoError(t, err)

	var out []byte
	err = mem.Get(context.Background(), "prices:AAPL:1y", &out)
	assert.True(t, errors.Is(err, cache.ErrCacheMiss), "stale series must be evicted, got %v", err)
}
