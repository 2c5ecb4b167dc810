// Package repository defines the persistence contract of the application: a
// store with seven independent record collections and single-collection
// transaction semantics. Backends live in the mongodb and memory subpackages.
package repository

import (
	"context"
	"errors"

	"github.com/mamadbah2/poultrypos/internal/domain/models"
)

// ErrNotFound indicates an update or delete referenced a missing record id.
var ErrNotFound = errors.New("record not found")

// ErrStoreUnavailable indicates an operation was attempted before the store
// finished opening or after it was closed.
var ErrStoreUnavailable = errors.New("store not available")

// ErrInsufficientStock indicates a guarded stock adjustment would have driven
// a product's stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// Store aggregates the per-collection repositories. Open is idempotent:
// collections and indexes that already exist are left untouched. There is no
// cross-collection atomicity; sequences spanning collections are composed by
// the service layer.
type Store interface {
	Open(ctx context.Context) error
	Close(ctx context.Context) error

	Products() ProductRepository
	Batches() BatchRepository
	Feed() FeedRepository
	Suppliers() SupplierRepository
	Customers() CustomerRepository
	Sales() SaleRepository
	Cart() CartRepository
}

// ProductRepository persists catalog products.
type ProductRepository interface {
	Add(ctx context.Context, product *models.Product) (int64, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Update(ctx context.Context, id int64, update models.ProductUpdate) error
	Delete(ctx context.Context, id int64) error
	// AdjustStock changes stock by delta in a single guarded write. A negative
	// delta that would push stock below zero fails with ErrInsufficientStock
	// and leaves the record untouched.
	AdjustStock(ctx context.Context, id int64, delta int) error
}

// BatchRepository persists live-bird batches.
type BatchRepository interface {
	Add(ctx context.Context, batch *models.Batch) (int64, error)
	GetAll(ctx context.Context) ([]models.Batch, error)
	Get(ctx context.Context, id int64) (*models.Batch, error)
	Update(ctx context.Context, id int64, update models.BatchUpdate) error
	Delete(ctx context.Context, id int64) error
}

// FeedRepository persists feed supply lots.
type FeedRepository interface {
	Add(ctx context.Context, item *models.FeedItem) (int64, error)
	GetAll(ctx context.Context) ([]models.FeedItem, error)
	Get(ctx context.Context, id int64) (*models.FeedItem, error)
	Update(ctx context.Context, id int64, update models.FeedItemUpdate) error
	Delete(ctx context.Context, id int64) error
}

// SupplierRepository persists supplier contacts.
type SupplierRepository interface {
	Add(ctx context.Context, supplier *models.Supplier) (int64, error)
	GetAll(ctx context.Context) ([]models.Supplier, error)
	Get(ctx context.Context, id int64) (*models.Supplier, error)
	Update(ctx context.Context, id int64, update models.SupplierUpdate) error
	Delete(ctx context.Context, id int64) error
}

// CustomerRepository persists customers.
type CustomerRepository interface {
	Add(ctx context.Context, customer *models.Customer) (int64, error)
	GetAll(ctx context.Context) ([]models.Customer, error)
	Get(ctx context.Context, id int64) (*models.Customer, error)
	Update(ctx context.Context, id int64, update models.CustomerUpdate) error
	Delete(ctx context.Context, id int64) error
	// AddSpent grows the customer's cumulative total by amount.
	AddSpent(ctx context.Context, id int64, amount float64) error
}

// SaleRepository persists completed sales. The collection is append-only, so
// no update or delete is exposed.
type SaleRepository interface {
	Add(ctx context.Context, sale *models.Sale) (int64, error)
	GetAll(ctx context.Context) ([]models.Sale, error)
	Get(ctx context.Context, id int64) (*models.Sale, error)
}

// CartRepository persists the transient cart, keyed by product id.
type CartRepository interface {
	// Put upserts the line for its product id.
	Put(ctx context.Context, item models.CartItem) error
	GetAll(ctx context.Context) ([]models.CartItem, error)
	Remove(ctx context.Context, productID int64) error
	Clear(ctx context.Context) error
}
