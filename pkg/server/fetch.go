package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	domrepo "StockScope/internal/domain/repository"
	"StockScope/internal/usecase"
	"StockScope/pkg/cache"
	"StockScope/pkg/config"
	applogger "StockScope/pkg/logger"
)

// runTimeout bounds a wedged ingest pass; a full S&P 500 refresh normally
// finishes in a few minutes.
const runTimeout = 2 * time.Hour

// Fetch drives the data-ingest pipeline, either once or on a cron schedule.
type Fetch struct {
	cfg    *config.Config
	logger *applogger.Logger
	ingest *usecase.IngestUseCase
	store  domrepo.Store
	cache  cache.Service
}

// NewFetch creates the ingest application.
func NewFetch(
	cfg *config.Config,
	logger *applogger.Logger,
	ingest *usecase.IngestUseCase,
	store domrepo.Store,
	cacheSvc cache.Service,
) *Fetch {
	return &Fetch{
		cfg:    cfg,
		logger: logger,
		ingest: ingest,
		store:  store,
		cache:  cacheSvc,
	}
}

// RunOnce executes a single ingest pass.
func (f *Fetch) RunOnce(ctx context.Context) error {
	_, err := f.ingest.Run(ctx)
	return err
}

// RunScheduled runs the ingest on the given cron spec (standard five-field
// syntax) until interrupted. With immediate set, one pass runs before the
// scheduler starts.
func (f *Fetch) RunScheduled(spec string, immediate bool) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, f.scheduledRun); err != nil {
		return fmt.Errorf("register schedule %q: %w", spec, err)
	}

	if immediate {
		f.scheduledRun()
	}

	c.Start()
	f.logger.Info("ingest scheduler started", applogger.String("schedule", spec))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	f.logger.Info("shutdown signal received")
	// Stop returns a context that closes once any in-flight run finishes.
	<-c.Stop().Done()
	return nil
}

func (f *Fetch) scheduledRun() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if err := f.RunOnce(ctx); err != nil {
		f.logger.Error("scheduled ingest failed", applogger.Error(err))
	}
}

// Close releases storage and cache resources.
func (f *Fetch) Close() {
	if f.cache != nil {
		if err := f.cache.Close(); err != nil {
			f.logger.Warn("cache close error", applogger.Error(err))
		}
	}
	if err := f.store.Close(); err != nil {
		f.logger.Warn("storage close error", applogger.Error(err))
	}
}
