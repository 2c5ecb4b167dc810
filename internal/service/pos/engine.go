// Package pos implements the point-of-sale engine: an in-memory cart mirrored
// to the cart collection, pure totals arithmetic and the checkout transaction.
package pos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/poultrypos/internal/domain/models"
	"github.com/mamadbah2/poultrypos/internal/repository"
)

// DefaultTaxRate is the flat sales tax applied to every cart.
const DefaultTaxRate = 0.10

// ErrProductNotFound indicates a cart operation referenced an unknown product.
var ErrProductNotFound = errors.New("product not found")

// ErrInsufficientStock indicates the requested cumulative quantity exceeds the
// product's current stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrInsufficientPayment indicates a cash payment below the amount due.
var ErrInsufficientPayment = errors.New("insufficient payment")

// ErrEmptyCart indicates checkout was attempted with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// ErrInvalidPaymentMethod indicates a checkout named a payment method outside
// cash, card and mobile.
var ErrInvalidPaymentMethod = errors.New("invalid payment method")

// Totals is the monetary summary of a cart.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals is a pure function of the given cart lines.
func ComputeTotals(items []models.CartItem, taxRate float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	tax := subtotal * taxRate
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}

// CheckoutRequest carries the payment details for a checkout.
type CheckoutRequest struct {
	PaymentMethod  models.PaymentMethod `json:"paymentMethod"`
	AmountReceived float64              `json:"amountReceived"`
	// CustomerID optionally attributes the sale to a customer, growing their
	// cumulative spend. Zero means a walk-in sale.
	CustomerID int64 `json:"customerId"`
}

// Engine maintains the cart and commits sales. All cart mutations are mirrored
// to the persistent cart collection so an interrupted session resumes where it
// left off.
type Engine struct {
	store   repository.Store
	taxRate float64
	logger  *zap.Logger
	now     func() time.Time

	mu   sync.Mutex
	cart []models.CartItem
}

// NewEngine constructs the engine. A non-positive taxRate falls back to
// DefaultTaxRate.
func NewEngine(store repository.Store, taxRate float64, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if taxRate <= 0 {
		taxRate = DefaultTaxRate
	}
	return &Engine{
		store:   store,
		taxRate: taxRate,
		logger:  logger,
		now:     time.Now,
	}
}

// Load rebuilds the in-memory cart from the cart collection.
func (e *Engine) Load(ctx context.Context) error {
	items, err := e.store.Cart().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	e.mu.Lock()
	e.cart = items
	e.mu.Unlock()
	e.logger.Debug("cart loaded", zap.Int("lines", len(items)))
	return nil
}

// Cart returns a copy of the current cart lines.
func (e *Engine) Cart() []models.CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.CartItem(nil), e.cart...)
}

// Totals computes the monetary summary of the current cart.
func (e *Engine) Totals() Totals {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ComputeTotals(e.cart, e.taxRate)
}

// AddToCart merges quantity into an existing line for the product or appends a
// new line with a price/name/unit snapshot, then persists the line. The
// cumulative requested quantity is validated against current stock; a rejected
// add leaves the cart untouched.
func (e *Engine) AddToCart(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	product, err := e.store.Products().Get(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("look up product %d: %w", productID, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	requested := quantity
	idx := e.lineIndex(productID)
	if idx >= 0 {
		requested += e.cart[idx].Quantity
	}
	if requested > product.Stock {
		e.logger.Warn("cart add rejected",
			zap.Int64("product_id", productID),
			zap.Int("requested", requested),
			zap.Int("stock", product.Stock))
		return fmt.Errorf("%w: only %d of %s available", ErrInsufficientStock, product.Stock, product.Name)
	}

	var line models.CartItem
	if idx >= 0 {
		e.cart[idx].Quantity = requested
		line = e.cart[idx]
	} else {
		line = models.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			Price:     product.Price,
			Name:      product.Name,
			Unit:      product.Unit,
		}
		e.cart = append(e.cart, line)
	}

	if err := e.store.Cart().Put(ctx, line); err != nil {
		return fmt.Errorf("persist cart line: %w", err)
	}
	return nil
}

// UpdateQuantity sets the quantity of an existing line. A non-positive
// quantity removes the line instead.
func (e *Engine) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return e.RemoveFromCart(ctx, productID)
	}

	product, err := e.store.Products().Get(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("look up product %d: %w", productID, err)
	}
	if quantity > product.Stock {
		return fmt.Errorf("%w: only %d of %s available", ErrInsufficientStock, product.Stock, product.Name)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.lineIndex(productID)
	if idx < 0 {
		return ErrProductNotFound
	}
	e.cart[idx].Quantity = quantity
	if err := e.store.Cart().Put(ctx, e.cart[idx]); err != nil {
		return fmt.Errorf("persist cart line: %w", err)
	}
	return nil
}

// RemoveFromCart drops the line for the product, mirrored to storage.
func (e *Engine) RemoveFromCart(ctx context.Context, productID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.lineIndex(productID)
	if idx < 0 {
		return nil
	}
	e.cart = append(e.cart[:idx], e.cart[idx+1:]...)
	if err := e.store.Cart().Remove(ctx, productID); err != nil {
		return fmt.Errorf("remove cart line: %w", err)
	}
	return nil
}

// ClearCart drops every line, mirrored to storage.
func (e *Engine) ClearCart(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clearLocked(ctx)
}

func (e *Engine) clearLocked(ctx context.Context) error {
	e.cart = nil
	if err := e.store.Cart().Clear(ctx); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Checkout commits the current cart as a sale. The whole operation is atomic
// from the caller's perspective: stock is decremented line by line with a
// guard, and any failure unwinds the decrements already applied before a sale
// record exists. The sale is appended only once every decrement succeeded;
// the cart is cleared last.
func (e *Engine) Checkout(ctx context.Context, req CheckoutRequest) (*models.Sale, error) {
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.cart) == 0 {
		return nil, ErrEmptyCart
	}

	totals := ComputeTotals(e.cart, e.taxRate)
	if req.PaymentMethod == models.PaymentCash && req.AmountReceived < totals.Total {
		return nil, fmt.Errorf("%w: %.2f received, %.2f due", ErrInsufficientPayment, req.AmountReceived, totals.Total)
	}

	var customer *models.Customer
	if req.CustomerID > 0 {
		var err error
		customer, err = e.store.Customers().Get(ctx, req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("look up customer %d: %w", req.CustomerID, err)
		}
	}

	applied, err := e.decrementStock(ctx)
	if err != nil {
		return nil, err
	}

	now := e.now().UTC()
	sale := &models.Sale{
		Date:           now,
		Items:          saleItems(e.cart),
		Subtotal:       totals.Subtotal,
		Tax:            totals.Tax,
		Total:          totals.Total,
		PaymentMethod:  req.PaymentMethod,
		AmountReceived: req.AmountReceived,
		ChangeGiven:    changeGiven(req.AmountReceived, totals.Total),
		CreatedAt:      now,
	}
	if customer != nil {
		sale.Customer = customer.Name
	}

	if _, err := e.store.Sales().Add(ctx, sale); err != nil {
		e.compensate(ctx, applied)
		return nil, fmt.Errorf("record sale: %w", err)
	}

	if customer != nil {
		if err := e.store.Customers().AddSpent(ctx, customer.ID, totals.Total); err != nil {
			// Sale is already committed; the spend counter is advisory.
			e.logger.Error("failed to update customer spend",
				zap.Int64("customer_id", customer.ID), zap.Error(err))
		}
	}

	if err := e.clearLocked(ctx); err != nil {
		// Sale is committed; a stale persisted cart resolves on next clear.
		e.logger.Error("failed to clear cart after sale", zap.Error(err))
	}

	e.logger.Info("sale completed",
		zap.Int64("sale_id", sale.ID),
		zap.Float64("total", sale.Total),
		zap.String("payment_method", string(sale.PaymentMethod)))
	return sale, nil
}

// decrementStock applies a guarded stock decrement per cart line. On failure
// the decrements already applied are reverted and nothing has been written.
func (e *Engine) decrementStock(ctx context.Context) ([]models.CartItem, error) {
	applied := make([]models.CartItem, 0, len(e.cart))
	for _, line := range e.cart {
		if err := e.store.Products().AdjustStock(ctx, line.ProductID, -line.Quantity); err != nil {
			e.compensate(ctx, applied)
			switch {
			case errors.Is(err, repository.ErrInsufficientStock):
				return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, line.Name)
			case errors.Is(err, repository.ErrNotFound):
				return nil, fmt.Errorf("%w: %s", ErrProductNotFound, line.Name)
			default:
				return nil, fmt.Errorf("decrement stock for %s: %w", line.Name, err)
			}
		}
		applied = append(applied, line)
	}
	return applied, nil
}

// compensate restores stock for the lines whose decrement already went
// through.
func (e *Engine) compensate(ctx context.Context, applied []models.CartItem) {
	for _, line := range applied {
		if err := e.store.Products().AdjustStock(ctx, line.ProductID, line.Quantity); err != nil {
			e.logger.Error("stock compensation failed",
				zap.Int64("product_id", line.ProductID),
				zap.Int("quantity", line.Quantity),
				zap.Error(err))
		}
	}
}

func (e *Engine) lineIndex(productID int64) int {
	for i, item := range e.cart {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func saleItems(cart []models.CartItem) []models.SaleItem {
	items := make([]models.SaleItem, 0, len(cart))
	for _, line := range cart {
		items = append(items, models.SaleItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Unit:      line.Unit,
		})
	}
	return items
}

func changeGiven(received, total float64) float64 {
	if change := received - total; change > 0 {
		return change
	}
	return 0
}

// SearchProducts filters the catalog by case-insensitive substring over name,
// category and description, for the product grid.
func (e *Engine) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	products, err := e.store.Products().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	if query == "" {
		return products, nil
	}
	q := strings.ToLower(query)
	var out []models.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(string(p.Category)), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ProductsByCategory filters the catalog by exact category.
func (e *Engine) ProductsByCategory(ctx context.Context, category models.Category) ([]models.Product, error) {
	products, err := e.store.Products().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	var out []models.Product
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}
