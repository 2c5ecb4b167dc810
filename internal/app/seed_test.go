package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/poultrypos/internal/config"
	"github.com/mamadbah2/poultrypos/internal/domain/models"
	"github.com/mamadbah2/poultrypos/internal/repository/memory"
)

func newSeedingApp(t *testing.T, seed bool) (*App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	cfg := &config.Config{
		Store: config.StoreConfig{Backend: config.BackendMemory, SeedCatalog: seed},
		POS:   config.POSConfig{TaxRate: 0.10},
	}
	a := New(cfg, store, nil, nil)
	t.Cleanup(func() { _ = a.Stop(context.Background()) })
	return a, store
}

func TestStartSeedsEmptyCatalog(t *testing.T) {
	a, store := newSeedingApp(t, true)
	ctx := context.Background()

	require.NoError(t, a.Start(ctx))

	products, err := store.Products().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 12)

	byName := make(map[string]models.Product, len(products))
	for _, p := range products {
		assert.NoError(t, p.Validate())
		assert.False(t, p.CreatedAt.IsZero())
		byName[p.Name] = p
	}

	chicken := byName["Whole Chicken"]
	assert.Equal(t, models.CategoryProcessed, chicken.Category)
	assert.Equal(t, 12.99, chicken.Price)
	assert.Equal(t, 50, chicken.Stock)

	eggs := byName["Fresh Eggs"]
	assert.Equal(t, models.CategoryEggs, eggs.Category)
	assert.Equal(t, "dozen", eggs.Unit)
	assert.Equal(t, 200, eggs.Stock)
}

func TestStartLeavesPopulatedCatalogAlone(t *testing.T) {
	a, store := newSeedingApp(t, true)
	ctx := context.Background()

	require.NoError(t, store.Open(ctx))
	_, err := store.Products().Add(ctx, &models.Product{
		Name: "House Special", Category: models.CategoryProcessed, Unit: "each", Price: 9.99, Stock: 5,
	})
	require.NoError(t, err)

	require.NoError(t, a.Start(ctx))

	products, err := store.Products().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "House Special", products[0].Name)
}

func TestStartSkipsSeedWhenDisabled(t *testing.T) {
	a, store := newSeedingApp(t, false)
	ctx := context.Background()

	require.NoError(t, a.Start(ctx))

	products, err := store.Products().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}
