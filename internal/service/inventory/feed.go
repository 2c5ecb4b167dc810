package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/poultrypos/internal/domain/models"
	"github.com/mamadbah2/poultrypos/internal/repository"
)

// FeedStats summarizes the feed collection for the dashboard. AttentionCount
// covers low-stock, expiring-soon and expired lots.
type FeedStats struct {
	TotalKg        float64 `json:"totalKg"`
	DistinctTypes  int     `json:"distinctTypes"`
	AttentionCount int     `json:"attentionCount"`
}

// FeedRow pairs a feed record with its derived status for display.
type FeedRow struct {
	models.FeedItem
	Status models.FeedStatus `json:"status"`
}

// FeedManager loads feed lots and derives their display statistics.
type FeedManager struct {
	store  repository.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewFeedManager wires a feed manager.
func NewFeedManager(store repository.Store, logger *zap.Logger) *FeedManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedManager{store: store, logger: logger, now: time.Now}
}

// Load fetches the full feed collection with derived statuses attached.
func (m *FeedManager) Load(ctx context.Context) ([]FeedRow, error) {
	items, err := m.store.Feed().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}
	now := m.now()
	rows := make([]FeedRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, FeedRow{FeedItem: item, Status: item.StatusAt(now)})
	}
	m.logger.Debug("feed loaded", zap.Int("count", len(rows)))
	return rows, nil
}

// Stats computes the total quantity, the number of distinct feed types and
// the count of lots needing attention.
func (m *FeedManager) Stats(ctx context.Context) (FeedStats, error) {
	rows, err := m.Load(ctx)
	if err != nil {
		return FeedStats{}, err
	}

	var stats FeedStats
	types := map[string]bool{}
	for _, row := range rows {
		stats.TotalKg += row.QuantityKg
		types[row.Type] = true
		if row.Status != models.FeedStatusInStock {
			stats.AttentionCount++
		}
	}
	stats.DistinctTypes = len(types)
	return stats, nil
}

// Search filters feed lots by case-insensitive substring over type and lot
// code.
func (m *FeedManager) Search(ctx context.Context, query string) ([]FeedRow, error) {
	rows, err := m.Load(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return rows, nil
	}
	q := strings.ToLower(query)
	var out []FeedRow
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Type), q) ||
			strings.Contains(strings.ToLower(row.Lot), q) {
			out = append(out, row)
		}
	}
	return out, nil
}

// AttentionItems returns the lots that are expired, expiring soon or low on
// stock, for the daily digest.
func (m *FeedManager) AttentionItems(ctx context.Context) ([]FeedRow, error) {
	rows, err := m.Load(ctx)
	if err != nil {
		return nil, err
	}
	var out []FeedRow
	for _, row := range rows {
		if row.Status != models.FeedStatusInStock {
			out = append(out, row)
		}
	}
	return out, nil
}
