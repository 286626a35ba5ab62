package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	domrepo "StockScope/internal/domain/repository"
	"StockScope/internal/usecase"
	"StockScope/pkg/cache"
	"StockScope/pkg/config"
	xhttp "StockScope/pkg/http"
	applogger "StockScope/pkg/logger"
)

// App encapsulates the API server lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	catalog    *usecase.CatalogUseCase
	store      domrepo.Store
	cache      cache.Service
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	catalog *usecase.CatalogUseCase,
	store domrepo.Store,
	cacheSvc cache.Service,
) *App {
	return &App{
		cfg:     cfg,
		logger:  logger,
		handler: handler,
		catalog: catalog,
		store:   store,
		cache:   cacheSvc,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.warmup(ctx)

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithHost(a.cfg.Server.Host),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(a.cfg.Server.CORS.Enabled, a.cfg.Server.CORS.Origins),
		xhttp.WithMetrics(a.cfg.Metrics.Enabled, a.cfg.Metrics.Path),
		xhttp.WithStaticDir(a.cfg.Server.StaticDir),
		xhttp.WithLogger(a.logger),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("api server started",
		applogger.String("addr", a.cfg.Server.Host),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("storage", a.cfg.Storage.Driver),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// warmup builds the search index and primes the dataset gauges. A fresh
// database is not an error; the API serves an empty catalog until the
// fetch command has run.
func (a *App) warmup(ctx context.Context) {
	if err := a.catalog.RefreshIndex(ctx); err != nil {
		a.logger.Warn("search index warmup failed", applogger.Error(err))
		return
	}

	totals, err := a.catalog.Totals(ctx)
	if err != nil {
		a.logger.Warn("dataset totals unavailable", applogger.Error(err))
		return
	}
	a.logger.Info("dataset loaded",
		applogger.Int64("stocks", totals.Stocks),
		applogger.Int64("price_rows", totals.PriceRows),
	)
	if totals.Stocks == 0 {
		a.logger.Warn("no stocks loaded yet; run the fetch command to populate the database")
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	if err := a.store.Close(); err != nil {
		a.logger.Warn("storage close error", applogger.Error(err))
	}

	a.logger.Info("shutdown complete")
	return nil
}
