package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/poultrypos/internal/app"
	"github.com/mamadbah2/poultrypos/internal/assets"
	"github.com/mamadbah2/poultrypos/internal/config"
	"github.com/mamadbah2/poultrypos/internal/repository"
	"github.com/mamadbah2/poultrypos/internal/repository/memory"
	"github.com/mamadbah2/poultrypos/internal/repository/mongodb"
	"github.com/mamadbah2/poultrypos/internal/repository/sheets"
	"github.com/mamadbah2/poultrypos/internal/scheduler"
	"github.com/mamadbah2/poultrypos/internal/server/handlers"
	"github.com/mamadbah2/poultrypos/internal/server/router"
	"github.com/mamadbah2/poultrypos/internal/service/sales"
	"github.com/mamadbah2/poultrypos/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var store repository.Store
	switch cfg.Store.Backend {
	case config.BackendMemory:
		store = memory.NewStore()
		baseLogger.Info("using in-memory store")
	default:
		store = mongodb.NewStore(cfg.Store.URI, cfg.Store.DBName)
	}

	var ledger sales.Ledger
	if cfg.Sheets.Enabled() {
		sheetsLedger, err := sheets.NewLedger(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets ledger", zap.Error(err))
		}
		ledger = sheetsLedger
		baseLogger.Info("google sheets sales ledger enabled")
	} else {
		baseLogger.Warn("google sheets credentials missing, sales ledger disabled")
	}

	application := app.New(cfg, store, ledger, baseLogger)

	startCtx, startCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := application.Start(startCtx); err != nil {
		startCancel()
		baseLogger.Fatal("failed to start application", zap.Error(err))
	}
	startCancel()
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := application.Stop(closeCtx); err != nil {
			baseLogger.Error("failed to stop application", zap.Error(err))
		}
	}()

	var assetCache *assets.Cache
	if cfg.Assets.Enabled() {
		assetCache = assets.NewCache(cfg.Assets, baseLogger)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if err := assetCache.Precache(ctx); err != nil {
				baseLogger.Warn("asset precache incomplete", zap.Error(err))
			}
		}()
	}

	engine := router.New(router.Handlers{
		Products:  handlers.NewProductsHandler(store, application.POS, baseLogger.Named("handlers.products")),
		Batches:   handlers.NewBatchesHandler(store, application.Batches, baseLogger.Named("handlers.batches")),
		Feed:      handlers.NewFeedHandler(store, application.Feed, baseLogger.Named("handlers.feed")),
		Suppliers: handlers.NewSuppliersHandler(store, baseLogger.Named("handlers.suppliers")),
		Customers: handlers.NewCustomersHandler(store, baseLogger.Named("handlers.customers")),
		POS:       handlers.NewPOSHandler(application.POS, application.Sales, application.Notifier, baseLogger.Named("handlers.pos")),
		Sales:     handlers.NewSalesHandler(application.Sales, baseLogger.Named("handlers.sales")),
		System:    handlers.NewSystemHandler(application.Notifier, assetCache, baseLogger.Named("handlers.system")),
	}, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Digest, application, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
