package pos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/poultrypos/internal/domain/models"
	"github.com/mamadbah2/poultrypos/internal/repository/memory"
)

func newTestEngine(t *testing.T) (*Engine, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Open(context.Background()))
	engine := NewEngine(store, DefaultTaxRate, nil)
	return engine, store
}

func seedProduct(t *testing.T, store *memory.Store, name string, price float64, stock int) int64 {
	t.Helper()
	id, err := store.Products().Add(context.Background(), &models.Product{
		Name:     name,
		Category: models.CategoryProcessed,
		Unit:     "kg",
		Price:    price,
		Stock:    stock,
	})
	require.NoError(t, err)
	return id
}

func TestComputeTotals(t *testing.T) {
	items := []models.CartItem{
		{ProductID: 1, Quantity: 3, Price: 12.99},
	}

	totals := ComputeTotals(items, DefaultTaxRate)
	assert.InDelta(t, 38.97, totals.Subtotal, 1e-9)
	assert.InDelta(t, 3.897, totals.Tax, 1e-9)
	assert.InDelta(t, 42.867, totals.Total, 1e-9)

	assert.Equal(t, Totals{}, ComputeTotals(nil, DefaultTaxRate))
}

func TestAddToCartMergesLines(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	id := seedProduct(t, store, "Whole Chicken", 12.99, 50)

	require.NoError(t, engine.AddToCart(ctx, id, 2))
	require.NoError(t, engine.AddToCart(ctx, id, 3))

	cart := engine.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 5, cart[0].Quantity)
	assert.Equal(t, "Whole Chicken", cart[0].Name)
	assert.Equal(t, 12.99, cart[0].Price)

	persisted, err := store.Cart().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, 5, persisted[0].Quantity)
}

func TestAddToCartRejectsOverStock(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	id := seedProduct(t, store, "Drumsticks", 8.5, 4)

	require.NoError(t, engine.AddToCart(ctx, id, 3))

	err := engine.AddToCart(ctx, id, 2)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	cart := engine.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 3, cart[0].Quantity, "rejected add leaves the cart untouched")
}

func TestAddToCartUnknownProduct(t *testing.T) {
	engine, _ := newTestEngine(t)
	assert.ErrorIs(t, engine.AddToCart(context.Background(), 99, 1), ErrProductNotFound)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	id := seedProduct(t, store, "Wings", 9.99, 20)

	require.NoError(t, engine.AddToCart(ctx, id, 2))
	require.NoError(t, engine.UpdateQuantity(ctx, id, 0))

	assert.Empty(t, engine.Cart())
	persisted, err := store.Cart().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestCartSurvivesReload(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	id := seedProduct(t, store, "Organic Eggs", 6.99, 100)

	require.NoError(t, engine.AddToCart(ctx, id, 4))

	resumed := NewEngine(store, DefaultTaxRate, nil)
	require.NoError(t, resumed.Load(ctx))

	cart := resumed.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 4, cart[0].Quantity)
}

func TestCheckoutCash(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	id := seedProduct(t, store, "Whole Chicken", 12.99, 50)

	require.NoError(t, engine.AddToCart(ctx, id, 3))

	sale, err := engine.Checkout(ctx, CheckoutRequest{
		PaymentMethod:  models.PaymentCash,
		AmountReceived: 50,
	})
	require.NoError(t, err)

	assert.InDelta(t, 38.97, sale.Subtotal, 1e-9)
	assert.InDelta(t, 3.897, sale.Tax, 1e-9)
	assert.InDelta(t, 42.867, sale.Total, 1e-9)
	assert.InDelta(t, 7.133, sale.ChangeGiven, 1e-9)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 3, sale.Items[0].Quantity)

	product, err := store.Products().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 47, product.Stock)

	assert.Empty(t, engine.Cart())
	persisted, err := store.Cart().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, persisted)

	recorded, err := store.Sales().Get(ctx, sale.ID)
	require.NoError(t, err)
	assert.InDelta(t, sale.Total, recorded.Total, 1e-9)
}

func TestCheckoutUnderpaymentLeavesStateUntouched(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	id := seedProduct(t, store, "Whole Chicken", 12.99, 50)

	require.NoError(t, engine.AddToCart(ctx, id, 3))

	_, err := engine.Checkout(ctx, CheckoutRequest{
		PaymentMethod:  models.PaymentCash,
		AmountReceived: 40,
	})
	assert.ErrorIs(t, err, ErrInsufficientPayment)

	product, err := store.Products().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 50, product.Stock)

	assert.Len(t, engine.Cart(), 1, "cart stays intact after a rejected checkout")

	sales, err := store.Sales().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestCheckoutCardIgnoresAmountReceived(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	id := seedProduct(t, store, "Wings", 9.99, 10)

	require.NoError(t, engine.AddToCart(ctx, id, 1))

	sale, err := engine.Checkout(ctx, CheckoutRequest{PaymentMethod: models.PaymentCard})
	require.NoError(t, err)
	assert.Zero(t, sale.ChangeGiven)
}

func TestCheckoutRejectsUnknownPaymentMethod(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	id := seedProduct(t, store, "Whole Chicken", 12.99, 50)

	require.NoError(t, engine.AddToCart(ctx, id, 3))

	_, err := engine.Checkout(ctx, CheckoutRequest{PaymentMethod: "cheque", AmountReceived: 100})
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	product, err := store.Products().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 50, product.Stock)
	assert.Len(t, engine.Cart(), 1)

	history, err := store.Sales().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestCheckoutEmptyCart(t *testing.T) {
	engine, _ := newTestEngine(t)
	_, err := engine.Checkout(context.Background(), CheckoutRequest{PaymentMethod: models.PaymentCash, AmountReceived: 100})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutInsufficientStockCompensates(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	okID := seedProduct(t, store, "Wings", 9.99, 10)
	lowID := seedProduct(t, store, "Drumsticks", 8.5, 5)

	require.NoError(t, engine.AddToCart(ctx, okID, 2))
	require.NoError(t, engine.AddToCart(ctx, lowID, 5))

	// Stock drains behind the cart's back, so the cumulative validation at
	// add time no longer holds at checkout.
	require.NoError(t, store.Products().AdjustStock(ctx, lowID, -3))

	_, err := engine.Checkout(ctx, CheckoutRequest{PaymentMethod: models.PaymentCash, AmountReceived: 100})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	okProduct, err := store.Products().Get(ctx, okID)
	require.NoError(t, err)
	assert.Equal(t, 10, okProduct.Stock, "applied decrements are compensated")

	lowProduct, err := store.Products().Get(ctx, lowID)
	require.NoError(t, err)
	assert.Equal(t, 2, lowProduct.Stock)

	sales, err := store.Sales().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
	assert.Len(t, engine.Cart(), 2)
}

func TestCheckoutAttributesCustomer(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	id := seedProduct(t, store, "Organic Eggs", 6.99, 100)

	custID, err := store.Customers().Add(ctx, &models.Customer{Name: "Mariama Diallo"})
	require.NoError(t, err)

	require.NoError(t, engine.AddToCart(ctx, id, 2))

	sale, err := engine.Checkout(ctx, CheckoutRequest{
		PaymentMethod:  models.PaymentMobile,
		AmountReceived: 0,
		CustomerID:     custID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Mariama Diallo", sale.Customer)

	customer, err := store.Customers().Get(ctx, custID)
	require.NoError(t, err)
	assert.InDelta(t, sale.Total, customer.TotalSpent, 1e-9)
}

func TestSequentialSalesArithmetic(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	id := seedProduct(t, store, "Whole Chicken", 12.99, 10)

	require.NoError(t, engine.AddToCart(ctx, id, 4))
	first, err := engine.Checkout(ctx, CheckoutRequest{PaymentMethod: models.PaymentCard})
	require.NoError(t, err)

	require.NoError(t, engine.AddToCart(ctx, id, 6))
	second, err := engine.Checkout(ctx, CheckoutRequest{PaymentMethod: models.PaymentCard})
	require.NoError(t, err)
	assert.Equal(t, first.ID+1, second.ID)

	product, err := store.Products().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, product.Stock)

	err = engine.AddToCart(ctx, id, 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestSearchProducts(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	seedProduct(t, store, "Whole Chicken", 12.99, 10)
	eggsID, err := store.Products().Add(ctx, &models.Product{
		Name: "Organic Eggs", Category: models.CategoryEggs, Unit: "dozen", Price: 6.99, Stock: 100,
		Description: "Free-range",
	})
	require.NoError(t, err)

	found, err := engine.SearchProducts(ctx, "egg")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, eggsID, found[0].ID)

	found, err = engine.SearchProducts(ctx, "free-range")
	require.NoError(t, err)
	assert.Len(t, found, 1, "description matches too")

	all, err := engine.SearchProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byCat, err := engine.ProductsByCategory(ctx, models.CategoryEggs)
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	assert.Equal(t, eggsID, byCat[0].ID)
}

func TestEngineInjectableClock(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()
	id := seedProduct(t, store, "Wings", 9.99, 10)

	fixed := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	engine.now = func() time.Time { return fixed }

	require.NoError(t, engine.AddToCart(ctx, id, 1))
	sale, err := engine.Checkout(ctx, CheckoutRequest{PaymentMethod: models.PaymentCard})
	require.NoError(t, err)
	assert.Equal(t, fixed, sale.Date)
	assert.Equal(t, fixed, sale.CreatedAt)
}
