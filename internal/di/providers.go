package di

import (
	"context"
	"fmt"
	"time"

	"StockScope/internal/domain/repository"
	"StockScope/internal/handler/api"
	internalrepo "StockScope/internal/repository"
	"StockScope/internal/service/constituents"
	"StockScope/internal/service/marketdata"
	"StockScope/internal/service/ratelimit"
	"StockScope/internal/usecase"
	"StockScope/pkg/cache"
	pkgch "StockScope/pkg/clickhouse"
	"StockScope/pkg/config"
	xhttp "StockScope/pkg/http"
	applogger "StockScope/pkg/logger"
	"StockScope/pkg/metrics"
	"StockScope/pkg/server"
	pkgsqlite "StockScope/pkg/sqlite"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideStore selects the storage backend from config and initializes its
// schema. The sqlite driver is the default and needs no running server.
func ProvideStore(cfg *config.Config, logger *applogger.Logger) (repository.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch cfg.Storage.Driver {
	case "clickhouse":
		client, err := pkgch.NewClient(
			pkgch.WithHost(cfg.Storage.ClickHouse.Host),
			pkgch.WithPort(cfg.Storage.ClickHouse.Port),
			pkgch.WithDatabase(cfg.Storage.ClickHouse.Database),
			pkgch.WithCredentials(cfg.Storage.ClickHouse.User, cfg.Storage.ClickHouse.Password),
			pkgch.WithMaxConnections(10, 5),
			pkgch.WithHTTP(cfg.Storage.ClickHouse.UseHTTP),
			pkgch.WithAsyncInsert(cfg.Storage.ClickHouse.AsyncInsert, cfg.Storage.ClickHouse.WaitForAsync),
			pkgch.WithTimeouts(cfg.Storage.ClickHouse.DialTimeout, cfg.Storage.ClickHouse.ReadTimeout, cfg.Storage.ClickHouse.WriteTimeout),
			pkgch.WithMaxExecutionTime(cfg.Storage.ClickHouse.MaxExecutionTime),
		)
		if err != nil {
			return nil, fmt.Errorf("clickhouse client: %w", err)
		}
		store := internalrepo.NewClickHouseStore(client)
		store.SetLogger(logger)
		if err := store.Init(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("clickhouse schema: %w", err)
		}
		return store, nil

	default:
		client, err := pkgsqlite.NewClient(
			pkgsqlite.WithPath(cfg.Storage.SQLite.Path),
			pkgsqlite.WithBusyTimeout(cfg.Storage.SQLite.BusyTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("sqlite client: %w", err)
		}
		store := internalrepo.NewSQLiteStore(client)
		if err := store.Init(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("sqlite schema: %w", err)
		}
		return store, nil
	}
}

// ProvideStockRepository exposes the read side of the store.
func ProvideStockRepository(store repository.Store) repository.StockRepository {
	return store
}

// ProvideMarketWriter exposes the ingest side of the store.
func ProvideMarketWriter(store repository.Store) repository.MarketWriter {
	return store
}

// ProvideCacheService builds the response cache. Disabled cache yields nil,
// which the use cases treat as a pass-through.
func ProvideCacheService(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	if cfg.Cache.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Cache.Redis.Addr),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return cache.NewLayeredCache(redisCache,
			cache.WithLayeredMemorySize(cfg.Cache.MaxEntries),
		), nil
	}

	return cache.NewMemoryCache(
		cache.WithMemoryMaxSize(cfg.Cache.MaxEntries),
	), nil
}

// ProvideConstituentsProvider creates the index membership source.
func ProvideConstituentsProvider(cfg *config.Config) repository.ConstituentsProvider {
	return constituents.New(cfg)
}

// ProvideMarketDataProvider creates the daily bar source.
func ProvideMarketDataProvider(cfg *config.Config) repository.MarketDataProvider {
	return marketdata.New(cfg)
}

// ProvideRateLimiter creates the shared token bucket for outbound requests.
func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideCatalogUseCase creates the catalog use case.
func ProvideCatalogUseCase(repo repository.StockRepository, m repository.Metrics) *usecase.CatalogUseCase {
	return usecase.NewCatalogUseCase(repo, m)
}

// ProvideSeriesUseCase creates the price series use case.
func ProvideSeriesUseCase(
	cfg *config.Config,
	repo repository.StockRepository,
	cacheSvc cache.Service,
	m repository.Metrics,
) *usecase.SeriesUseCase {
	return usecase.NewSeriesUseCase(repo, cacheSvc, cfg.Cache.TTL, m)
}

// ProvideIngestUseCase creates the ingest pipeline use case.
func ProvideIngestUseCase(
	cfg *config.Config,
	cons repository.ConstituentsProvider,
	provider repository.MarketDataProvider,
	writer repository.MarketWriter,
	cacheSvc cache.Service,
	limiter *ratelimit.Limiter,
	m repository.Metrics,
	logger *applogger.Logger,
) *usecase.IngestUseCase {
	return usecase.NewIngestUseCase(
		cons,
		provider,
		writer,
		cacheSvc,
		limiter,
		m,
		logger,
		cfg.MarketData.Concurrency,
		cfg.MarketData.RatePerSec,
	)
}

// ProvideStocksHandler creates the HTTP handler.
func ProvideStocksHandler(
	logger *applogger.Logger,
	catalog *usecase.CatalogUseCase,
	series *usecase.SeriesUseCase,
) xhttp.Handler {
	return api.NewStocksHandler(logger, catalog, series)
}

// ProvideApp creates the API server application.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	catalog *usecase.CatalogUseCase,
	store repository.Store,
	cacheSvc cache.Service,
) *server.App {
	return server.New(cfg, logger, handler, catalog, store, cacheSvc)
}

// ProvideFetch creates the ingest application.
func ProvideFetch(
	cfg *config.Config,
	logger *applogger.Logger,
	ingest *usecase.IngestUseCase,
	store repository.Store,
	cacheSvc cache.Service,
) *server.Fetch {
	return server.NewFetch(cfg, logger, ingest, store, cacheSvc)
}
