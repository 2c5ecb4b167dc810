// Package inventory holds the batch and feed managers: thin read models over
// their collections with display aggregates and search.
package inventory

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/poultrypos/internal/domain/models"
	"github.com/mamadbah2/poultrypos/internal/repository"
)

// BatchStats summarizes the batch collection for the dashboard.
type BatchStats struct {
	TotalBirds    int     `json:"totalBirds"`
	ActiveBatches int     `json:"activeBatches"`
	AvgWeightKg   float64 `json:"avgWeightKg"`
}

// BatchManager loads batches and derives their display statistics.
type BatchManager struct {
	store  repository.Store
	logger *zap.Logger
}

// NewBatchManager wires a batch manager.
func NewBatchManager(store repository.Store, logger *zap.Logger) *BatchManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchManager{store: store, logger: logger}
}

// Load fetches the full batch collection.
func (m *BatchManager) Load(ctx context.Context) ([]models.Batch, error) {
	batches, err := m.store.Batches().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load batches: %w", err)
	}
	m.logger.Debug("batches loaded", zap.Int("count", len(batches)))
	return batches, nil
}

// Stats computes totals, the active count and the average weight across
// batches.
func (m *BatchManager) Stats(ctx context.Context) (BatchStats, error) {
	batches, err := m.Load(ctx)
	if err != nil {
		return BatchStats{}, err
	}

	var stats BatchStats
	var totalWeight float64
	for _, b := range batches {
		stats.TotalBirds += b.Quantity
		totalWeight += b.WeightKg
		if b.Status == models.BatchStatusActive {
			stats.ActiveBatches++
		}
	}
	if len(batches) > 0 {
		stats.AvgWeightKg = totalWeight / float64(len(batches))
	}
	return stats, nil
}

// Search filters batches by case-insensitive substring over name, breed and
// status.
func (m *BatchManager) Search(ctx context.Context, query string) ([]models.Batch, error) {
	batches, err := m.Load(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return batches, nil
	}
	q := strings.ToLower(query)
	var out []models.Batch
	for _, b := range batches {
		if strings.Contains(strings.ToLower(b.Name), q) ||
			strings.Contains(strings.ToLower(b.Breed), q) ||
			strings.Contains(strings.ToLower(b.Status), q) {
			out = append(out, b)
		}
	}
	return out, nil
}
