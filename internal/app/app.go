package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/poultrypos/internal/config"
	"github.com/mamadbah2/poultrypos/internal/repository"
	"github.com/mamadbah2/poultrypos/internal/service/inventory"
	"github.com/mamadbah2/poultrypos/internal/service/pos"
	"github.com/mamadbah2/poultrypos/internal/service/sales"
)

// App bundles the wired application services behind a single handle. Handlers
// and the scheduler reach everything through here instead of holding their own
// references to individual services.
type App struct {
	Store    repository.Store
	POS      *pos.Engine
	Batches  *inventory.BatchManager
	Feed     *inventory.FeedManager
	Sales    *sales.Manager
	Notifier *Notifier

	seed   bool
	logger *zap.Logger
}

// New wires the domain services on top of an already constructed store. The
// store must not be open yet; Start opens it and warms the POS cart.
func New(cfg *config.Config, store repository.Store, ledger sales.Ledger, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	notifier := NewNotifier(logger)
	engine := pos.NewEngine(store, cfg.POS.TaxRate, logger.Named("svc.pos"))

	a := &App{
		Store:    store,
		POS:      engine,
		Batches:  inventory.NewBatchManager(store, logger.Named("svc.batches")),
		Feed:     inventory.NewFeedManager(store, logger.Named("svc.feed")),
		Sales:    sales.NewManager(store, ledger, logger.Named("svc.sales")),
		Notifier: notifier,
		seed:     cfg.Store.SeedCatalog,
		logger:   logger.Named("app"),
	}
	return a
}

// Start opens the store, seeds the sample catalog when enabled and the
// catalog is empty, and restores the in-memory cart mirror.
func (a *App) Start(ctx context.Context) error {
	if err := a.Store.Open(ctx); err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	if a.seed {
		if err := a.seedCatalog(ctx); err != nil {
			return err
		}
	}
	if err := a.POS.Load(ctx); err != nil {
		return fmt.Errorf("restoring cart: %w", err)
	}
	a.logger.Info("application started")
	return nil
}

// Stop closes the store.
func (a *App) Stop(ctx context.Context) error {
	if err := a.Store.Close(ctx); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}
	a.logger.Info("application stopped")
	return nil
}
