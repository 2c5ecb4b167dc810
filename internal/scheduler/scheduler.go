package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultrypos/internal/app"
	"github.com/mamadbah2/poultrypos/internal/config"
)

// productLowStockUnits mirrors the threshold the shop floor uses to flag
// products on the sales grid.
const productLowStockUnits = 10

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron   *cron.Cron
	app    *app.App
	cfg    config.DigestConfig
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance running in the configured
// timezone.
func NewScheduler(cfg config.DigestConfig, application *app.App, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %s: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		app:    application,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Start registers the daily stock digest and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runStockDigest); err != nil {
		s.logger.Error("failed to schedule stock digest", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runStockDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	digest, err := s.BuildDigest(ctx)
	if err != nil {
		s.logger.Error("failed to build stock digest", zap.Error(err))
		return
	}

	if digest == "" {
		s.logger.Info("stock digest clean, nothing to report")
		return
	}

	s.app.Notifier.Warning(digest)
	s.logger.Info("stock digest published")
}

// BuildDigest summarizes feed lots needing attention and products running
// low. It returns an empty string when everything is healthy.
func (s *Scheduler) BuildDigest(ctx context.Context) (string, error) {
	var lines []string

	feedRows, err := s.app.Feed.AttentionItems(ctx)
	if err != nil {
		return "", fmt.Errorf("collecting feed attention items: %w", err)
	}
	for _, row := range feedRows {
		lines = append(lines, fmt.Sprintf("Feed %s (lot %s): %s, %.1f kg left",
			row.Type, row.Lot, row.Status, row.QuantityKg))
	}

	products, err := s.app.Store.Products().GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("collecting products: %w", err)
	}
	for _, p := range products {
		if p.Stock < productLowStockUnits {
			lines = append(lines, fmt.Sprintf("Product %s: %d %s left", p.Name, p.Stock, p.Unit))
		}
	}

	if len(lines) == 0 {
		return "", nil
	}
	return "Stock digest: " + strings.Join(lines, "; "), nil
}
