package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/poultrypos/internal/domain/models"
	"github.com/mamadbah2/poultrypos/internal/repository/memory"
)

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	require.NoError(t, s.Open(context.Background()))
	return s
}

func TestBatchStats(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	mgr := NewBatchManager(store, nil)

	seed := []models.Batch{
		{Name: "June Broilers", Breed: "Cobb 500", Quantity: 120, WeightKg: 1.8, Status: models.BatchStatusActive},
		{Name: "May Layers", Breed: "ISA Brown", Quantity: 80, WeightKg: 1.4, Status: "Sold"},
		{Name: "April Broilers", Breed: "Ross 308", Quantity: 100, WeightKg: 2.2, Status: models.BatchStatusActive},
	}
	for i := range seed {
		_, err := store.Batches().Add(ctx, &seed[i])
		require.NoError(t, err)
	}

	stats, err := mgr.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 300, stats.TotalBirds)
	assert.Equal(t, 2, stats.ActiveBatches)
	assert.InDelta(t, 1.8, stats.AvgWeightKg, 1e-9)
}

func TestBatchStatsEmpty(t *testing.T) {
	store := newStore(t)
	mgr := NewBatchManager(store, nil)

	stats, err := mgr.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalBirds)
	assert.Zero(t, stats.AvgWeightKg)
}

func TestBatchSearch(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	mgr := NewBatchManager(store, nil)

	_, err := store.Batches().Add(ctx, &models.Batch{Name: "June Broilers", Breed: "Cobb 500", Status: models.BatchStatusActive})
	require.NoError(t, err)
	_, err = store.Batches().Add(ctx, &models.Batch{Name: "May Layers", Breed: "ISA Brown", Status: "Sold"})
	require.NoError(t, err)

	byBreed, err := mgr.Search(ctx, "cobb")
	require.NoError(t, err)
	require.Len(t, byBreed, 1)
	assert.Equal(t, "June Broilers", byBreed[0].Name)

	byStatus, err := mgr.Search(ctx, "sold")
	require.NoError(t, err)
	assert.Len(t, byStatus, 1)

	all, err := mgr.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFeedStatsAndAttention(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	mgr := NewFeedManager(store, nil)

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	mgr.now = func() time.Time { return now }

	seed := []models.FeedItem{
		{Type: "Starter Mash", QuantityKg: 500, Lot: "SM-01"},
		{Type: "Grower Pellets", QuantityKg: 20, Lot: "GP-02"},
		{Type: "Starter Mash", QuantityKg: 800, Lot: "SM-03", ExpiryDate: now.Add(-24 * time.Hour)},
		{Type: "Layer Feed", QuantityKg: 300, Lot: "LF-04", ExpiryDate: now.Add(3 * 24 * time.Hour)},
	}
	for i := range seed {
		_, err := store.Feed().Add(ctx, &seed[i])
		require.NoError(t, err)
	}

	stats, err := mgr.Stats(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 1620, stats.TotalKg, 1e-9)
	assert.Equal(t, 3, stats.DistinctTypes)
	assert.Equal(t, 3, stats.AttentionCount)

	attention, err := mgr.AttentionItems(ctx)
	require.NoError(t, err)
	require.Len(t, attention, 3)

	statuses := map[string]models.FeedStatus{}
	for _, row := range attention {
		statuses[row.Lot] = row.Status
	}
	assert.Equal(t, models.FeedStatusLowStock, statuses["GP-02"])
	assert.Equal(t, models.FeedStatusExpired, statuses["SM-03"])
	assert.Equal(t, models.FeedStatusExpiringSoon, statuses["LF-04"])
}

func TestFeedSearch(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	mgr := NewFeedManager(store, nil)

	_, err := store.Feed().Add(ctx, &models.FeedItem{Type: "Starter Mash", QuantityKg: 500, Lot: "SM-01"})
	require.NoError(t, err)
	_, err = store.Feed().Add(ctx, &models.FeedItem{Type: "Grower Pellets", QuantityKg: 400, Lot: "GP-02"})
	require.NoError(t, err)

	byType, err := mgr.Search(ctx, "starter")
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "SM-01", byType[0].Lot)

	byLot, err := mgr.Search(ctx, "gp-")
	require.NoError(t, err)
	assert.Len(t, byLot, 1)
}
