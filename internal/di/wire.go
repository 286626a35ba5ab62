//go:build wireinject
// +build wireinject

package di

import (
	"StockScope/pkg/config"
	"StockScope/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up the API server and its dependencies.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Storage
		ProvideStore,
		ProvideStockRepository,
		ProvideCacheService,

		// Use cases
		ProvideCatalogUseCase,
		ProvideSeriesUseCase,

		// HTTP
		ProvideStocksHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}

// InitializeFetch wires up the data-ingest application.
func InitializeFetch(cfg *config.Config) (*server.Fetch, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Storage
		ProvideStore,
		ProvideMarketWriter,
		ProvideCacheService,

		// Upstream sources
		ProvideConstituentsProvider,
		ProvideMarketDataProvider,
		ProvideRateLimiter,

		// Use case
		ProvideIngestUseCase,

		// Application
		ProvideFetch,
	)
	return &server.Fetch{}, nil
}
