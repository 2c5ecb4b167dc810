package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/poultrypos/internal/domain/models"
	"github.com/mamadbah2/poultrypos/internal/repository"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	require.NoError(t, s.Open(context.Background()))
	return s
}

func TestStoreUnavailableBeforeOpen(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.Products().GetAll(ctx)
	assert.ErrorIs(t, err, repository.ErrStoreUnavailable)

	_, err = s.Products().Add(ctx, &models.Product{Name: "Eggs"})
	assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
}

func TestStoreUnavailableAfterClose(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	_, err := s.Sales().GetAll(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Close(ctx))
	_, err = s.Sales().GetAll(ctx)
	assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
}

func TestProductCRUD(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	id, err := s.Products().Add(ctx, &models.Product{
		Name:     "Whole Chicken",
		Category: models.CategoryProcessed,
		Unit:     "kg",
		Price:    12.99,
		Stock:    50,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	id2, err := s.Products().Add(ctx, &models.Product{
		Name:     "Organic Eggs",
		Category: models.CategoryEggs,
		Unit:     "dozen",
		Price:    6.99,
		Stock:    100,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), id2, "ids must be sequential")

	all, err := s.Products().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Whole Chicken", all[0].Name)

	newPrice := 13.49
	require.NoError(t, s.Products().Update(ctx, id, models.ProductUpdate{Price: &newPrice}))

	got, err := s.Products().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 13.49, got.Price)
	assert.Equal(t, "Whole Chicken", got.Name, "untouched fields survive a partial update")
	assert.Equal(t, 50, got.Stock)

	require.NoError(t, s.Products().Delete(ctx, id))
	_, err = s.Products().Get(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, s.Products().Delete(ctx, id), repository.ErrNotFound)
	assert.ErrorIs(t, s.Products().Update(ctx, 99, models.ProductUpdate{}), repository.ErrNotFound)
}

func TestAdjustStockGuard(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	id, err := s.Products().Add(ctx, &models.Product{
		Name: "Drumsticks", Category: models.CategoryProcessed, Unit: "kg", Price: 8.5, Stock: 5,
	})
	require.NoError(t, err)

	require.NoError(t, s.Products().AdjustStock(ctx, id, -3))

	err = s.Products().AdjustStock(ctx, id, -3)
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)

	got, err := s.Products().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock, "a rejected adjustment leaves stock untouched")

	assert.ErrorIs(t, s.Products().AdjustStock(ctx, 99, -1), repository.ErrNotFound)
}

func TestCustomerAddSpent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	id, err := s.Customers().Add(ctx, &models.Customer{Name: "Mariama Diallo"})
	require.NoError(t, err)

	require.NoError(t, s.Customers().AddSpent(ctx, id, 42.87))
	require.NoError(t, s.Customers().AddSpent(ctx, id, 10))

	got, err := s.Customers().Get(ctx, id)
	require.NoError(t, err)
	assert.InDelta(t, 52.87, got.TotalSpent, 1e-9)

	assert.ErrorIs(t, s.Customers().AddSpent(ctx, 99, 5), repository.ErrNotFound)
}

func TestCartPutUpsertsByProductID(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	line := models.CartItem{ProductID: 7, Quantity: 2, Price: 6.99, Name: "Organic Eggs", Unit: "dozen"}
	require.NoError(t, s.Cart().Put(ctx, line))

	line.Quantity = 5
	require.NoError(t, s.Cart().Put(ctx, line))

	items, err := s.Cart().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1, "same product id replaces the line")
	assert.Equal(t, 5, items[0].Quantity)

	require.NoError(t, s.Cart().Remove(ctx, 7))
	items, err = s.Cart().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, s.Cart().Put(ctx, line))
	require.NoError(t, s.Cart().Put(ctx, models.CartItem{ProductID: 8, Quantity: 1, Price: 15.99, Name: "Live Broiler", Unit: "each"}))
	require.NoError(t, s.Cart().Clear(ctx))
	items, err = s.Cart().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSalesAppendOnly(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	sale := models.Sale{
		Items: []models.SaleItem{{ProductID: 1, Name: "Whole Chicken", Quantity: 2, Price: 12.99, Unit: "kg"}},
		Total: 28.58,
	}
	id, err := s.Sales().Add(ctx, &sale)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := s.Sales().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, sale.Total, got.Total)

	_, err = s.Sales().Get(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCountersArePerCollection(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	pid, err := s.Products().Add(ctx, &models.Product{Name: "Eggs", Category: models.CategoryEggs, Unit: "dozen"})
	require.NoError(t, err)
	bid, err := s.Batches().Add(ctx, &models.Batch{Name: "June Broilers"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), pid)
	assert.Equal(t, int64(1), bid, "each collection keeps its own sequence")
}
